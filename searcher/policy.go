package searcher

import "math"

// Hyperparameter defaults for tree search.

const (
	DefaultCPuct    = 5.0
	DefaultPlayouts = 400

	// EvalTemp drives the visit-count softmax towards argmax for
	// competitive (non-exploratory) play.
	EvalTemp = 1e-3
)

// visitEps keeps log(visits) finite for unvisited moves.
const visitEps = 1e-10

// visitProbs converts visit counts into a move distribution via
// softmax(log(visits)/temp).
func visitProbs(visits map[int]int, cells int, temp float64) []float32 {
	logits := make([]float64, 0, len(visits))
	moves := make([]int, 0, len(visits))
	for move, count := range visits {
		moves = append(moves, move)
		logits = append(logits, math.Log(float64(count)+visitEps)/temp)
	}
	probs := softmax(logits)

	full := make([]float32, cells)
	for i, move := range moves {
		full[move] = float32(probs[i])
	}
	return full
}

func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, l := range logits {
		maxLogit = math.Max(maxLogit, l)
	}
	out := make([]float64, len(logits))
	sum := 0.0
	for i, l := range logits {
		out[i] = math.Exp(l - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
