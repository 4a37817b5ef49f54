package trainer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gomokuzero/game"
)

func numberedSteps(from, to int) []game.Step {
	steps := make([]game.Step, 0, to-from)
	for i := from; i < to; i++ {
		steps = append(steps, game.Step{Outcome: float32(i)})
	}
	return steps
}

func TestReplayBuffer(t *testing.T) {
	t.Run("panics on a non-positive capacity", func(t *testing.T) {
		require.Panics(t, func() { NewReplayBuffer(0) })
	})

	t.Run("size never exceeds capacity", func(t *testing.T) {
		b := NewReplayBuffer(5)

		b.Extend(numberedSteps(0, 3))
		require.Equal(t, 3, b.Size())

		b.Extend(numberedSteps(3, 9))
		require.Equal(t, 5, b.Size())
	})

	t.Run("eviction keeps the newest samples in insertion order", func(t *testing.T) {
		b := NewReplayBuffer(5)
		b.Extend(numberedSteps(0, 3))
		b.Extend(numberedSteps(3, 9))

		survivors, err := b.Sample(5)
		require.NoError(t, err)

		kept := map[float32]bool{}
		for _, s := range survivors {
			kept[s.Outcome] = true
		}
		for i := 4; i < 9; i++ {
			require.True(t, kept[float32(i)], "sample %d should have survived", i)
		}

		require.Equal(t, float32(4), b.samples[0].Outcome)
		require.Equal(t, float32(8), b.samples[4].Outcome)
	})

	t.Run("a single oversized extend keeps only the tail", func(t *testing.T) {
		b := NewReplayBuffer(3)

		b.Extend(numberedSteps(0, 10))

		require.Equal(t, 3, b.Size())
		require.Equal(t, float32(7), b.samples[0].Outcome)
		require.Equal(t, float32(9), b.samples[2].Outcome)
	})

	t.Run("sampling draws distinct elements from the buffer", func(t *testing.T) {
		b := NewReplayBuffer(10)
		b.Extend(numberedSteps(0, 10))

		for trial := 0; trial < 20; trial++ {
			batch, err := b.Sample(4)
			require.NoError(t, err)
			require.Len(t, batch, 4)

			seen := map[float32]bool{}
			for _, s := range batch {
				require.GreaterOrEqual(t, s.Outcome, float32(0))
				require.Less(t, s.Outcome, float32(10))
				require.False(t, seen[s.Outcome], "no duplicates within one draw")
				seen[s.Outcome] = true
			}
		}
	})

	t.Run("sampling more than the size fails", func(t *testing.T) {
		b := NewReplayBuffer(10)
		b.Extend(numberedSteps(0, 3))

		_, err := b.Sample(4)
		require.Error(t, err)

		_, err = b.Sample(3)
		require.NoError(t, err)
	})
}
