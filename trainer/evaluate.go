package trainer

import (
	"github.com/rs/zerolog/log"

	"gomokuzero/game"
	"gomokuzero/nn"
	"gomokuzero/searcher"
	"gomokuzero/searcher/agent"
)

// EvalResult tallies one evaluation round from the learner's perspective.
type EvalResult struct {
	Wins     int
	Losses   int
	Draws    int
	WinRatio float64
}

// Evaluator measures the current learner against the pure-rollout baseline.
// It keeps no state between calls; best-ratio tracking belongs to the
// orchestrator.
type Evaluator struct {
	runner   *game.Runner
	eval     nn.Evaluator
	cPuct    float64
	playouts int
	games    int
}

func NewEvaluator(runner *game.Runner, eval nn.Evaluator, cPuct float64, playouts, games int) *Evaluator {
	if games <= 0 {
		panic("must evaluate over a positive number of games")
	}
	return &Evaluator{
		runner:   runner,
		eval:     eval,
		cPuct:    cPuct,
		playouts: playouts,
		games:    games,
	}
}

// Evaluate plays the configured number of games against a baseline at the
// given playout budget, alternating who moves first. The learner is a fresh
// greedy agent; no exploration noise.
func (e *Evaluator) Evaluate(baselinePlayouts int) EvalResult {
	learner := agent.NewEvaluation(searcher.NewMCTS(e.eval.PolicyValueFn,
		searcher.WithCPuct(e.cPuct), searcher.WithPlayouts(e.playouts)))
	baseline := agent.NewBaseline(searcher.DefaultCPuct, baselinePlayouts)

	var result EvalResult
	for i := 0; i < e.games; i++ {
		winner := e.runner.StartPlay(learner, baseline, i%2)
		switch game.OutcomeFor(winner, game.Black) {
		case game.Win:
			result.Wins++
		case game.Loss:
			result.Losses++
		case game.Draw:
			result.Draws++
		}
	}
	result.WinRatio = (float64(result.Wins) + 0.5*float64(result.Draws)) / float64(e.games)

	log.Info().
		Int("baseline_playouts", baselinePlayouts).
		Int("wins", result.Wins).
		Int("losses", result.Losses).
		Int("draws", result.Draws).
		Float64("win_ratio", result.WinRatio).
		Msg("evaluation finished")
	return result
}
