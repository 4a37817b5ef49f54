// Package trainer is the self-play reinforcement-learning loop: it collects
// search-guided self-play games, learns from the replayed experience, and
// periodically measures progress against an escalating baseline opponent.
package trainer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"gomokuzero/config"
	"gomokuzero/experiments/metrics"
	"gomokuzero/game"
	"gomokuzero/nn"
	"gomokuzero/searcher"
	"gomokuzero/searcher/agent"
)

// TrainingState is the cross-cycle mutable state of a run, owned by the
// pipeline and threaded through the components that adjust it.
type TrainingState struct {
	Cycle            int
	LRMultiplier     float64 // kept within (0.05, 20] by the update rule
	BaselinePlayouts int     // monotonically non-decreasing, capped at the ceiling
	BestWinRatio     float64
}

// Pipeline is the training orchestrator: a fixed-length sequence of
// collect / maybe-update / maybe-checkpoint cycles.
type Pipeline struct {
	cfg       config.Config
	eval      nn.Evaluator
	buffer    *ReplayBuffer
	collector *Collector
	trainer   *Trainer
	evaluator *Evaluator
	state     TrainingState

	cycleRecords []metrics.CycleRecord
	evalRecords  []metrics.EvalRecord
}

func NewPipeline(cfg config.Config, eval nn.Evaluator, pool *game.OpeningPool) *Pipeline {
	runner := game.NewRunner(cfg.BoardWidth, cfg.BoardHeight, cfg.NInRow)
	buffer := NewReplayBuffer(cfg.BufferSize)
	aug := NewAugmenter(cfg.BoardHeight, cfg.BoardWidth)

	newAgent := func() game.SelfPlayer {
		return agent.NewSelfPlay(searcher.NewMCTS(eval.PolicyValueFn,
			searcher.WithCPuct(cfg.CPuct), searcher.WithPlayouts(cfg.Playouts)))
	}

	return &Pipeline{
		cfg:       cfg,
		eval:      eval,
		buffer:    buffer,
		collector: NewCollector(runner, newAgent, pool, aug, buffer, cfg.Temperature, cfg.CollectWorkers),
		trainer:   NewTrainer(eval, buffer, cfg.BatchSize, cfg.Epochs, cfg.LearnRate, cfg.KLTarget),
		evaluator: NewEvaluator(runner, eval, cfg.CPuct, cfg.Playouts, cfg.EvalGames),
		state: TrainingState{
			LRMultiplier:     cfg.LRMultiplier,
			BaselinePlayouts: cfg.BaselinePlayouts,
		},
	}
}

// State returns a snapshot of the run's mutable training state.
func (p *Pipeline) State() TrainingState { return p.state }

// Run executes the training cycles until completion or ctx cancellation.
// Cancellation is observed between cycles and returns cleanly; the buffer
// and best-ratio state stay intact for resumption from checkpoints.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.cfg.ModelDir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	defer p.writeRecords()

	log.Info().Int("cycles", p.cfg.GameBatchNum).Msg("entering training")
	for i := 0; i < p.cfg.GameBatchNum; i++ {
		select {
		case <-ctx.Done():
			log.Info().Int("cycle", i).Msg("interrupted, stopping training")
			return nil
		default:
		}
		p.state.Cycle = i

		start := time.Now()
		p.collector.Collect(p.cfg.PlayBatchSize, i)
		log.Info().
			Int("cycle", i+1).
			Int("episode_len", p.collector.LastEpisodeLen()).
			Int("buffer_size", p.buffer.Size()).
			Dur("collect_time", time.Since(start)).
			Msg("collected self-play data")

		record := metrics.CycleRecord{
			Cycle:        i + 1,
			EpisodeLen:   p.collector.LastEpisodeLen(),
			BufferSize:   p.buffer.Size(),
			LRMultiplier: p.state.LRMultiplier,
		}
		if p.buffer.Size() > p.cfg.BatchSize {
			start = time.Now()
			metric, err := p.trainer.Update(&p.state)
			if err != nil {
				return fmt.Errorf("policy update failed at cycle %d: %w", i+1, err)
			}
			log.Info().Dur("update_time", time.Since(start)).Msg("updated policy")
			record.Updated = true
			record.Loss = metric.Loss
			record.Entropy = metric.Entropy
			record.KL = metric.KL
			record.Epochs = metric.Epochs
			record.LRMultiplier = metric.LRMultiplier
		}
		p.cycleRecords = append(p.cycleRecords, record)

		if (i+1)%p.cfg.SaveFreq == 0 {
			path := filepath.Join(p.cfg.ModelDir, "current_policy.model")
			if err := p.eval.Save(path); err != nil {
				return fmt.Errorf("failed to checkpoint at cycle %d: %w", i+1, err)
			}
		}
		if (i+1)%p.cfg.CheckFreq == 0 {
			if err := p.checkpoint(i + 1); err != nil {
				return err
			}
		}
	}
	log.Info().Msg("training complete")
	return nil
}

// checkpoint evaluates the current policy and applies the best-model and
// baseline-escalation rules.
func (p *Pipeline) checkpoint(cycle int) error {
	log.Info().Int("cycle", cycle).Msg("evaluating current policy")
	result := p.evaluator.Evaluate(p.state.BaselinePlayouts)
	improved, escalated := p.recordImprovement(result.WinRatio)

	p.evalRecords = append(p.evalRecords, metrics.EvalRecord{
		Cycle:            cycle,
		BaselinePlayouts: p.state.BaselinePlayouts,
		Wins:             result.Wins,
		Losses:           result.Losses,
		Draws:            result.Draws,
		WinRatio:         result.WinRatio,
		BestWinRatio:     p.state.BestWinRatio,
		Escalated:        escalated,
	})

	if improved {
		log.Info().Float64("win_ratio", result.WinRatio).Msg("new best policy")
		path := filepath.Join(p.cfg.ModelDir, fmt.Sprintf("best_policy_%d.model", cycle))
		if err := p.eval.Save(path); err != nil {
			return fmt.Errorf("failed to save best policy at cycle %d: %w", cycle, err)
		}
	}
	if escalated {
		log.Info().Int("baseline_playouts", p.state.BaselinePlayouts).
			Msg("baseline mastered, escalating its strength")
	}
	return nil
}

// recordImprovement updates the best win ratio and, once the learner has
// effectively mastered the current baseline, raises the baseline's playout
// budget and resets the bar. This keeps the yardstick ahead of the learner
// instead of declaring convergence early.
func (p *Pipeline) recordImprovement(ratio float64) (improved, escalated bool) {
	if ratio <= p.state.BestWinRatio {
		return false, false
	}
	p.state.BestWinRatio = ratio
	if ratio >= p.cfg.WinRatioToEscalate && p.state.BaselinePlayouts < p.cfg.BaselineCeiling {
		p.state.BaselinePlayouts = min(p.state.BaselinePlayouts+p.cfg.BaselineStep, p.cfg.BaselineCeiling)
		p.state.BestWinRatio = 0
		return true, true
	}
	return true, false
}

func (p *Pipeline) writeRecords() {
	writer, err := metrics.NewWriter(p.cfg.MetricsDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to create metrics writer")
		return
	}
	if err := writer.WriteCycleRecords(p.cycleRecords); err != nil {
		log.Error().Err(err).Msg("failed to write cycle records")
	}
	if err := writer.WriteEvalRecords(p.evalRecords); err != nil {
		log.Error().Err(err).Msg("failed to write eval records")
	}
}
