package agent

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"gomokuzero/game"
	"gomokuzero/searcher"
)

const (
	// Dirichlet exploration noise mixed into the root policy during
	// self-play only.
	noiseFraction = 0.25
	noiseAlpha    = 0.3
)

// SelfPlay plays both sides of a training game. Moves are sampled from the
// search policy blended with Dirichlet noise, and the subtree of the chosen
// move is reused for the next search.
type SelfPlay struct {
	mcts *searcher.MCTS
	src  rand.Source
}

func NewSelfPlay(mcts *searcher.MCTS) *SelfPlay {
	return &SelfPlay{
		mcts: mcts,
		src:  rand.NewSource(rand.Uint64()),
	}
}

// MoveProbs returns the sampled move and the raw (noise-free) search
// distribution, which is what the trainer learns to imitate.
func (a *SelfPlay) MoveProbs(b *game.Board, temp float64) (int, []float32) {
	probs := a.mcts.GetMoveProbs(b, temp)

	availables := b.Availables()
	alpha := make([]float64, len(availables))
	for i := range alpha {
		alpha[i] = noiseAlpha
	}
	noise := make([]float64, len(availables))
	distmv.NewDirichlet(alpha, a.src).Rand(noise)

	weights := make([]float64, len(availables))
	for i, move := range availables {
		weights[i] = (1-noiseFraction)*float64(probs[move]) + noiseFraction*noise[i]
	}
	move := availables[sampleIndex(weights)]

	a.mcts.UpdateWithMove(move)
	return move, probs
}

// Reset drops the search tree between episodes.
func (a *SelfPlay) Reset() {
	a.mcts.UpdateWithMove(-1)
}
