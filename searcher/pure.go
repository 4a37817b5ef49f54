package searcher

import (
	"golang.org/x/exp/rand"

	"gomokuzero/game"
)

// rolloutLimit caps a single random rollout; a gomoku game ends well before
// this on any practical board.
const rolloutLimit = 1000

// Pure is the baseline searcher: uniform priors and random rollouts instead
// of an evaluator. Its strength is tuned purely by the playout budget.
type Pure struct {
	cPuct    float64
	playouts int
	root     *node
	rng      *rand.Rand
}

func NewPure(cPuct float64, playouts int) *Pure {
	if playouts <= 0 {
		panic("must specify a positive playout budget")
	}
	return &Pure{
		cPuct:    cPuct,
		playouts: playouts,
		root:     newNode(nil, 1.0),
		rng:      rand.New(rand.NewSource(rand.Uint64())),
	}
}

// GetMove returns the most-visited move after running the playout budget.
// The tree is dropped afterwards; the baseline searches from scratch each turn.
func (p *Pure) GetMove(b *game.Board) int {
	for i := 0; i < p.playouts; i++ {
		p.playout(b.Clone())
	}

	bestMove := -1
	maxVisits := -1
	for move, child := range p.root.children {
		if child.visits > maxVisits {
			maxVisits = child.visits
			bestMove = move
		}
	}
	p.root = newNode(nil, 1.0)
	return bestMove
}

func (p *Pure) playout(b *game.Board) {
	n := p.root
	for !n.isLeaf() {
		var move int
		move, n = n.selectChild(p.cPuct)
		b.DoMove(move)
	}

	if over, _ := b.GameEnd(); !over {
		n.expand(b, uniformPriors(b))
	}
	n.updateRecursive(-p.rollout(b))
}

// rollout plays uniformly random moves to the end and scores the terminal
// state for the player to move at the rollout's start.
func (p *Pure) rollout(b *game.Board) float64 {
	player := b.CurrentPlayer()
	for i := 0; i < rolloutLimit; i++ {
		over, winner := b.GameEnd()
		if over {
			return float64(game.OutcomeFor(winner, player).Value())
		}
		moves := b.Availables()
		b.DoMove(moves[p.rng.Intn(len(moves))])
	}
	return 0
}

func uniformPriors(b *game.Board) []float32 {
	priors := make([]float32, b.CellCount())
	prior := float32(1) / float32(len(b.Availables()))
	for _, move := range b.Availables() {
		priors[move] = prior
	}
	return priors
}
