// Package agent wraps the searchers into game-playing agents: a noisy
// self-play agent that emits training targets, a greedy evaluation agent for
// arena games, and the pure-rollout baseline opponent.
package agent

import "lukechampine.com/frand"

func findMax(probs []float32) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}

// sampleIndex draws an index from an unnormalised weight vector.
func sampleIndex(weights []float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	sampled := frand.Float64() * sum
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if sampled < cumulative {
			return i
		}
	}
	return len(weights) - 1 // Fallback in case of rounding errors
}
