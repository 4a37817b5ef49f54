// Package nn defines the policy/value evaluator consumed by the search and
// the trainer, and ships a linear implementation of it.
package nn

import "gomokuzero/game"

// Evaluator is the trainable policy/value network. Implementations must be
// safe for the strictly sequential call pattern of the training pipeline;
// they are not required to be goroutine-safe.
type Evaluator interface {
	// PolicyValue evaluates a batch of encoded states, returning move
	// probabilities over all cells and a value in [-1, 1] per state.
	PolicyValue(states []game.Tensor) (probs [][]float32, values []float32)

	// TrainStep performs one gradient step towards the search
	// probabilities and game outcomes, returning the batch loss and the
	// policy entropy.
	TrainStep(states []game.Tensor, probs [][]float32, outcomes []float32, lr float64) (loss, entropy float64)

	// PolicyValueFn evaluates a single board position; the search agent
	// calls this at every expanded leaf.
	PolicyValueFn(b *game.Board) ([]float32, float32)

	// Save persists the model parameters to path.
	Save(path string) error
}
