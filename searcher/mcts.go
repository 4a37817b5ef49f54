package searcher

import (
	"gomokuzero/game"
)

// PolicyValueFn returns move priors over all cells and a state value in
// [-1, 1] for the side to play.
type PolicyValueFn func(b *game.Board) ([]float32, float32)

type Option func(m *MCTS)

func WithCPuct(cPuct float64) Option {
	return func(m *MCTS) {
		if cPuct > 0 {
			m.cPuct = cPuct
		}
	}
}

func WithPlayouts(playouts int) Option {
	return func(m *MCTS) {
		if playouts > 0 {
			m.playouts = playouts
		}
	}
}

// MCTS is the evaluator-guided search. The tree is kept between moves; the
// agent shifts the root after each played move to reuse the relevant subtree.
type MCTS struct {
	policy   PolicyValueFn
	cPuct    float64
	playouts int
	root     *node
}

func NewMCTS(policy PolicyValueFn, options ...Option) *MCTS {
	if policy == nil {
		panic("MCTS requires a policy value function")
	}
	m := &MCTS{
		policy:   policy,
		cPuct:    DefaultCPuct,
		playouts: DefaultPlayouts,
		root:     newNode(nil, 1.0),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// GetMoveProbs runs the playout budget from the current position and returns
// the visit-count distribution over all cells at the given temperature.
func (m *MCTS) GetMoveProbs(b *game.Board, temp float64) []float32 {
	for i := 0; i < m.playouts; i++ {
		m.playout(b.Clone())
	}

	visits := make(map[int]int, len(m.root.children))
	for move, child := range m.root.children {
		if child.visits > 0 {
			visits[move] = child.visits
		}
	}
	return visitProbs(visits, b.CellCount(), temp)
}

// UpdateWithMove shifts the root to the played move's subtree, or resets the
// tree when move is -1.
func (m *MCTS) UpdateWithMove(move int) {
	if child, ok := m.root.children[move]; move >= 0 && ok {
		child.parent = nil
		m.root = child
		return
	}
	m.root = newNode(nil, 1.0)
}

// playout walks one selection path on a scratch board, expands the leaf with
// evaluator priors, and backs the leaf value up the path.
func (m *MCTS) playout(b *game.Board) {
	n := m.root
	for !n.isLeaf() {
		var move int
		move, n = n.selectChild(m.cPuct)
		b.DoMove(move)
	}

	priors, value := m.policy(b)
	leafValue := float64(value)
	if over, winner := b.GameEnd(); over {
		leafValue = float64(game.OutcomeFor(winner, b.CurrentPlayer()).Value())
	} else {
		n.expand(b, priors)
	}
	n.updateRecursive(-leafValue)
}
