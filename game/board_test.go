package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardMoves(t *testing.T) {
	t.Run("placing a stone passes the turn", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)

		b.DoMove(4)

		require.Equal(t, White, b.CurrentPlayer())
		require.Equal(t, 4, b.LastMove())
		require.False(t, b.IsAvailable(4))
		require.Len(t, b.Availables(), 8)
	})

	t.Run("panics on an occupied cell", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		b.DoMove(4)

		require.Panics(t, func() { b.DoMove(4) })
	})

	t.Run("clone is independent of the original", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		b.DoMove(0)

		clone := b.Clone()
		clone.DoMove(1)

		require.True(t, b.IsAvailable(1))
		require.False(t, clone.IsAvailable(1))
		require.Equal(t, White, b.CurrentPlayer())
	})
}

func TestBoardWinner(t *testing.T) {
	play := func(b *Board, moves ...int) {
		for _, m := range moves {
			b.DoMove(m)
		}
	}

	t.Run("detects a horizontal line", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		// black: 0 1 2, white: 3 4
		play(b, 0, 3, 1, 4, 2)

		winner, ok := b.HasWinner()
		require.True(t, ok)
		require.Equal(t, Black, winner)
	})

	t.Run("detects a vertical line", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		// black: 1 4, white: 0 3 6
		play(b, 1, 0, 4, 3, 2, 6)

		winner, ok := b.HasWinner()
		require.True(t, ok)
		require.Equal(t, White, winner)
	})

	t.Run("detects both diagonals", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		play(b, 0, 1, 4, 2, 8)
		winner, ok := b.HasWinner()
		require.True(t, ok)
		require.Equal(t, Black, winner)

		b = NewBoard(3, 3, 3, Black)
		play(b, 2, 1, 4, 3, 6)
		winner, ok = b.HasWinner()
		require.True(t, ok)
		require.Equal(t, Black, winner)
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		// b w b / b w w / w b b leaves no three in a row
		play(b, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		over, winner := b.GameEnd()
		require.True(t, over)
		require.Equal(t, NoPlayer, winner)
	})

	t.Run("game is not over at the start", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)

		over, _ := b.GameEnd()
		require.False(t, over)
	})
}

func TestCurrentState(t *testing.T) {
	t.Run("encodes stones with vertically flipped rows", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		b.DoMove(0) // black, row 0 -> flipped row 2
		b.DoMove(8) // white, row 2 -> flipped row 0

		state := b.CurrentState() // black to move
		require.Len(t, state, PlaneCount)

		require.Equal(t, float32(1), state[0][6], "own stone at flipped cell")
		require.Equal(t, float32(1), state[1][2], "opponent stone at flipped cell")
		require.Equal(t, float32(1), state[2][2], "last move plane marks white's move")
	})

	t.Run("colour plane is set when an even number of stones is down", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		for _, v := range b.CurrentState()[3] {
			require.Equal(t, float32(1), v)
		}

		b.DoMove(0)
		for _, v := range b.CurrentState()[3] {
			require.Equal(t, float32(0), v)
		}
	})

	t.Run("perspective follows the side to play", func(t *testing.T) {
		b := NewBoard(3, 3, 3, Black)
		b.DoMove(0)

		state := b.CurrentState() // white to move: black stone is the opponent's
		require.Equal(t, float32(1), state[1][6])
		require.Equal(t, float32(0), state[0][6])
	})
}
