package trainer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gomokuzero/game"
)

// greedyPlayer is a deterministic stand-in for the search agent: it always
// takes the lowest free cell with full confidence.
type greedyPlayer struct{}

func (greedyPlayer) MoveProbs(b *game.Board, temp float64) (int, []float32) {
	move := b.Availables()[0]
	for _, m := range b.Availables() {
		if m < move {
			move = m
		}
	}
	probs := make([]float32, b.CellCount())
	probs[move] = 1
	return move, probs
}

func (greedyPlayer) Reset() {}

func TestCollector(t *testing.T) {
	newCollector := func(workers int) (*Collector, *ReplayBuffer) {
		runner := game.NewRunner(3, 3, 3)
		buffer := NewReplayBuffer(1000)
		pool, err := game.LoadOpeningPool("")
		require.NoError(t, err)
		newAgent := func() game.SelfPlayer { return greedyPlayer{} }
		return NewCollector(runner, newAgent, pool, NewAugmenter(3, 3), buffer, 1.0, workers), buffer
	}

	t.Run("each episode adds eight samples per move", func(t *testing.T) {
		c, buffer := newCollector(1)

		c.Collect(1, 0)

		// Greedy play gives Black 0,2,4,6: the 2-4-6 diagonal wins on move 7.
		require.Equal(t, 7, c.LastEpisodeLen())
		require.Equal(t, 56, buffer.Size())

		c.Collect(2, 1)
		require.Equal(t, 168, buffer.Size())
	})

	t.Run("parallel collection fills the buffer identically", func(t *testing.T) {
		c, buffer := newCollector(4)

		c.Collect(4, 0)

		require.Equal(t, 7, c.LastEpisodeLen())
		require.Equal(t, 224, buffer.Size())
	})
}
