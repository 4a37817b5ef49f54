package trainer

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"gomokuzero/game"
)

// Collector drives self-play episodes with the current learner and feeds the
// augmented trajectories into the replay buffer.
type Collector struct {
	runner   *game.Runner
	newAgent func() game.SelfPlayer
	pool     *game.OpeningPool
	aug      Augmenter
	buffer   *ReplayBuffer
	temp     float64
	workers  int

	mu             sync.Mutex
	agent          game.SelfPlayer
	lastEpisodeLen int
}

// NewCollector builds a collector. newAgent must return a fresh learner
// agent; parallel collection constructs one per in-flight episode since a
// search tree cannot be shared.
func NewCollector(runner *game.Runner, newAgent func() game.SelfPlayer, pool *game.OpeningPool,
	aug Augmenter, buffer *ReplayBuffer, temp float64, workers int) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		runner:   runner,
		newAgent: newAgent,
		pool:     pool,
		aug:      aug,
		buffer:   buffer,
		temp:     temp,
		workers:  workers,
	}
}

// Collect plays n self-play games for the given cycle. The opening is picked
// once per cycle by index mod pool length, so the pool replays in the same
// shuffled order on every pass.
func (c *Collector) Collect(n, cycle int) {
	opening := c.pool.Get(cycle)

	if c.workers > 1 && n > 1 {
		g := new(errgroup.Group)
		g.SetLimit(c.workers)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				c.collectOne(c.newAgent(), cycle, opening)
				return nil
			})
		}
		g.Wait() //nolint:errcheck // workers never return errors
		return
	}

	if c.agent == nil {
		c.agent = c.newAgent()
	}
	for i := 0; i < n; i++ {
		c.collectOne(c.agent, cycle, opening)
	}
}

func (c *Collector) collectOne(agent game.SelfPlayer, cycle int, opening game.Opening) {
	warning, winner, rec := c.runner.StartSelfPlay(agent, c.temp, opening)
	if warning {
		log.Warn().Int("cycle", cycle).Str("opening", opening.Name).
			Msg("anomalous self-play termination")
	}
	log.Info().Int("cycle", cycle).Str("winner", winner.String()).
		Str("opening", opening.Name).Msg("self-play game finished")

	c.buffer.Extend(c.aug.Expand(rec))

	c.mu.Lock()
	c.lastEpisodeLen = len(rec)
	c.mu.Unlock()
}

// LastEpisodeLen reports the raw (pre-augmentation) length of the most
// recently collected episode.
func (c *Collector) LastEpisodeLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastEpisodeLen
}
