package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gomokuzero/game"
)

func TestNodeUpdate(t *testing.T) {
	t.Run("update maintains a running mean", func(t *testing.T) {
		n := newNode(nil, 1.0)

		n.update(1.0)
		require.Equal(t, 1, n.visits)
		require.InDelta(t, 1.0, n.q, 1e-9)

		n.update(0.0)
		require.Equal(t, 2, n.visits)
		require.InDelta(t, 0.5, n.q, 1e-9)
	})

	t.Run("recursive update flips the sign each ply", func(t *testing.T) {
		root := newNode(nil, 1.0)
		child := newNode(root, 0.5)
		grandChild := newNode(child, 0.5)

		grandChild.updateRecursive(1.0)

		require.InDelta(t, 1.0, grandChild.q, 1e-9)
		require.InDelta(t, -1.0, child.q, 1e-9)
		require.InDelta(t, 1.0, root.q, 1e-9)
	})
}

func TestNodeSelect(t *testing.T) {
	t.Run("panics on a leaf", func(t *testing.T) {
		n := newNode(nil, 1.0)
		require.Panics(t, func() { n.selectChild(DefaultCPuct) })
	})

	t.Run("prefers the higher prior among unvisited children", func(t *testing.T) {
		b := game.NewBoard(3, 3, 3, game.Black)
		priors := make([]float32, b.CellCount())
		priors[4] = 0.9
		for _, m := range b.Availables() {
			if m != 4 {
				priors[m] = 0.1 / 8
			}
		}

		root := newNode(nil, 1.0)
		root.expand(b, priors)
		root.visits = 1

		move, child := root.selectChild(DefaultCPuct)
		require.Equal(t, 4, move)
		require.NotNil(t, child)
	})

	t.Run("prefers a proven child once priors wash out", func(t *testing.T) {
		b := game.NewBoard(2, 2, 2, game.Black)
		priors := []float32{0.25, 0.25, 0.25, 0.25}

		root := newNode(nil, 1.0)
		root.expand(b, priors)
		root.visits = 100
		for move, child := range root.children {
			child.visits = 25
			if move == 2 {
				child.q = 0.9
			}
		}

		move, _ := root.selectChild(DefaultCPuct)
		require.Equal(t, 2, move)
	})
}
