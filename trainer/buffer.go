package trainer

import (
	"fmt"
	"sync"

	"lukechampine.com/frand"

	"gomokuzero/game"
)

// ReplayBuffer is a bounded FIFO of augmented training samples. The mutex
// lets parallel self-play workers feed it; sampling and training stay on the
// orchestrator's single thread.
type ReplayBuffer struct {
	mu       sync.Mutex
	samples  []game.Step
	capacity int
}

func NewReplayBuffer(capacity int) *ReplayBuffer {
	if capacity <= 0 {
		panic("replay buffer capacity must be positive")
	}
	return &ReplayBuffer{
		samples:  make([]game.Step, 0, capacity),
		capacity: capacity,
	}
}

// Extend appends samples in order, evicting the oldest to respect capacity.
func (b *ReplayBuffer) Extend(samples []game.Step) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.samples = append(b.samples, samples...)
	if excess := len(b.samples) - b.capacity; excess > 0 {
		b.samples = append(b.samples[:0], b.samples[excess:]...)
	}
}

// Sample draws n distinct samples uniformly at random.
func (b *ReplayBuffer) Sample(n int) ([]game.Step, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.samples) {
		return nil, fmt.Errorf("not enough samples: have %d, want %d", len(b.samples), n)
	}
	batch := make([]game.Step, n)
	for i, idx := range frand.Perm(len(b.samples))[:n] {
		batch[i] = b.samples[idx]
	}
	return batch, nil
}

func (b *ReplayBuffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
