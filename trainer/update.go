package trainer

import (
	"math"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"gomokuzero/game"
	"gomokuzero/nn"
)

// klEps keeps the log terms of the KL divergence finite.
const klEps = 1e-10

// UpdateMetric summarises one policy update for logging and record keeping.
type UpdateMetric struct {
	Loss            float64
	Entropy         float64
	KL              float64
	Epochs          int
	LRMultiplier    float64
	ExplainedVarOld float64
	ExplainedVarNew float64
}

// Trainer performs the bounded-epoch policy update with the KL-driven
// adaptive learning rate.
type Trainer struct {
	eval      nn.Evaluator
	buffer    *ReplayBuffer
	batchSize int
	epochs    int
	learnRate float64
	klTarget  float64
}

func NewTrainer(eval nn.Evaluator, buffer *ReplayBuffer, batchSize, epochs int, learnRate, klTarget float64) *Trainer {
	if epochs <= 0 {
		panic("must specify a positive epoch budget")
	}
	if klTarget <= 0 {
		panic("KL target must be positive")
	}
	return &Trainer{
		eval:      eval,
		buffer:    buffer,
		batchSize: batchSize,
		epochs:    epochs,
		learnRate: learnRate,
		klTarget:  klTarget,
	}
}

// Update draws one mini-batch and runs up to the epoch budget of gradient
// steps, stopping early if the policy diverges past 4x the KL target. The KL
// is always measured against the pre-loop policy snapshot; the snapshot is
// deliberately never refreshed between epochs, so it tracks total drift from
// the pre-update policy. Afterwards the learning-rate multiplier is nudged to
// keep the realised KL near the target.
func (t *Trainer) Update(state *TrainingState) (UpdateMetric, error) {
	batch, err := t.buffer.Sample(t.batchSize)
	if err != nil {
		return UpdateMetric{}, err
	}
	states := lo.Map(batch, func(s game.Step, _ int) game.Tensor { return s.State })
	targets := lo.Map(batch, func(s game.Step, _ int) []float32 { return s.Probs })
	outcomes := lo.Map(batch, func(s game.Step, _ int) float32 { return s.Outcome })

	oldProbs, oldValues := t.eval.PolicyValue(states)

	var loss, entropy, kl float64
	var newValues []float32
	epochs := 0
	for i := 0; i < t.epochs; i++ {
		loss, entropy = t.eval.TrainStep(states, targets, outcomes, t.learnRate*state.LRMultiplier)
		var newProbs [][]float32
		newProbs, newValues = t.eval.PolicyValue(states)
		kl = meanKL(oldProbs, newProbs)
		epochs = i + 1
		if kl > t.klTarget*4 { // Early stopping if the policy diverges badly
			log.Info().Int("epoch", epochs).Float64("kl", kl).Msg("early stopping update")
			break
		}
	}

	if kl > t.klTarget*2 && state.LRMultiplier > 0.05 {
		state.LRMultiplier /= 1.5
	} else if kl < t.klTarget/2 && state.LRMultiplier < 20 {
		state.LRMultiplier *= 1.5
	}

	metric := UpdateMetric{
		Loss:            loss,
		Entropy:         entropy,
		KL:              kl,
		Epochs:          epochs,
		LRMultiplier:    state.LRMultiplier,
		ExplainedVarOld: explainedVariance(outcomes, oldValues),
		ExplainedVarNew: explainedVariance(outcomes, newValues),
	}
	log.Info().
		Float64("kl", metric.KL).
		Float64("lr", t.learnRate*state.LRMultiplier).
		Float64("loss", metric.Loss).
		Float64("entropy", metric.Entropy).
		Float64("explained_var_old", metric.ExplainedVarOld).
		Float64("explained_var_new", metric.ExplainedVarNew).
		Msg("policy update")
	return metric, nil
}

// meanKL is the batch mean of sum_a old_a * (log(old_a) - log(new_a)).
func meanKL(oldProbs, newProbs [][]float32) float64 {
	total := 0.0
	for i := range oldProbs {
		for a := range oldProbs[i] {
			old := float64(oldProbs[i][a])
			total += old * (math.Log(old+klEps) - math.Log(float64(newProbs[i][a])+klEps))
		}
	}
	return total / float64(len(oldProbs))
}

// explainedVariance is 1 - Var(target - pred) / Var(target), a diagnostic of
// how much of the outcome variance the value head captures.
func explainedVariance(targets, preds []float32) float64 {
	residuals := make([]float64, len(targets))
	values := make([]float64, len(targets))
	for i := range targets {
		values[i] = float64(targets[i])
		residuals[i] = float64(targets[i]) - float64(preds[i])
	}
	return 1 - stat.Variance(residuals, nil)/stat.Variance(values, nil)
}
