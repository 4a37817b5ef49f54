package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gomokuzero/game"
)

// uniformPolicy evaluates every position with uniform priors and zero value.
func uniformPolicy(b *game.Board) ([]float32, float32) {
	priors := make([]float32, b.CellCount())
	uniform := float32(1) / float32(len(b.Availables()))
	for _, m := range b.Availables() {
		priors[m] = uniform
	}
	return priors, 0
}

func TestNewMCTS(t *testing.T) {
	t.Run("panics without a policy", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(nil) })
	})

	t.Run("applies options", func(t *testing.T) {
		m := NewMCTS(uniformPolicy, WithCPuct(3.0), WithPlayouts(16))
		require.Equal(t, 3.0, m.cPuct)
		require.Equal(t, 16, m.playouts)
	})
}

func TestGetMoveProbs(t *testing.T) {
	t.Run("returns a normalised distribution over legal moves", func(t *testing.T) {
		m := NewMCTS(uniformPolicy, WithPlayouts(50))
		b := game.NewBoard(3, 3, 3, game.Black)
		b.DoMove(4)

		probs := m.GetMoveProbs(b, 1.0)

		require.Len(t, probs, 9)
		require.Equal(t, float32(0), probs[4], "occupied cell must have zero probability")
		sum := float32(0)
		for _, p := range probs {
			require.GreaterOrEqual(t, p, float32(0))
			sum += p
		}
		require.InDelta(t, 1.0, float64(sum), 1e-4)
	})

	t.Run("near-zero temperature concentrates on the best move", func(t *testing.T) {
		// Black has 0,1 and wins at 2; the winning child collects +1 every
		// visit, so it dominates the visit counts.
		b := game.NewBoard(3, 3, 3, game.Black)
		for _, move := range []int{0, 3, 1, 4} {
			b.DoMove(move)
		}

		m := NewMCTS(uniformPolicy, WithPlayouts(200))
		probs := m.GetMoveProbs(b, EvalTemp)

		best := 0
		for i, p := range probs {
			if p > probs[best] {
				best = i
			}
		}
		require.Equal(t, 2, best)
	})
}

func TestUpdateWithMove(t *testing.T) {
	t.Run("reuses the chosen subtree", func(t *testing.T) {
		m := NewMCTS(uniformPolicy, WithPlayouts(30))
		b := game.NewBoard(3, 3, 3, game.Black)
		m.GetMoveProbs(b, 1.0)

		child, ok := m.root.children[4]
		require.True(t, ok)

		m.UpdateWithMove(4)
		require.Same(t, child, m.root)
		require.Nil(t, m.root.parent)
	})

	t.Run("resets the tree on -1", func(t *testing.T) {
		m := NewMCTS(uniformPolicy, WithPlayouts(30))
		b := game.NewBoard(3, 3, 3, game.Black)
		m.GetMoveProbs(b, 1.0)

		m.UpdateWithMove(-1)
		require.True(t, m.root.isLeaf())
	})
}

func TestPure(t *testing.T) {
	t.Run("panics without a playout budget", func(t *testing.T) {
		require.Panics(t, func() { NewPure(DefaultCPuct, 0) })
	})

	t.Run("finds an immediate winning move", func(t *testing.T) {
		// Black: 0,1. White: 3,4. Black to move wins at 2.
		b := game.NewBoard(3, 3, 3, game.Black)
		for _, move := range []int{0, 3, 1, 4} {
			b.DoMove(move)
		}

		p := NewPure(DefaultCPuct, 400)
		require.Equal(t, 2, p.GetMove(b))
	})

	t.Run("drops its tree between calls", func(t *testing.T) {
		b := game.NewBoard(3, 3, 3, game.Black)
		p := NewPure(DefaultCPuct, 50)

		p.GetMove(b)
		require.True(t, p.root.isLeaf())
	})
}
