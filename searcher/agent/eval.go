package agent

import (
	"gomokuzero/game"
	"gomokuzero/searcher"
)

// Evaluation plays competitively: near-argmax move selection, no exploration
// noise, and a fresh tree every move.
type Evaluation struct {
	mcts *searcher.MCTS
}

// NewEvaluation returns a greedy agent for arena play during evaluation.
func NewEvaluation(mcts *searcher.MCTS) *Evaluation {
	return &Evaluation{mcts: mcts}
}

func (a *Evaluation) Move(b *game.Board) int {
	probs := a.mcts.GetMoveProbs(b, searcher.EvalTemp)
	a.mcts.UpdateWithMove(-1)
	return findMax(probs)
}

// Baseline is the fixed-strategy yardstick opponent backed by pure-rollout
// search.
type Baseline struct {
	pure *searcher.Pure
}

// NewBaseline returns a baseline agent at the given playout budget.
func NewBaseline(cPuct float64, playouts int) *Baseline {
	return &Baseline{pure: searcher.NewPure(cPuct, playouts)}
}

func (a *Baseline) Move(b *game.Board) int {
	return a.pure.GetMove(b)
}
