package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lukechampine.com/frand"
)

// Opening is a short pre-recorded sequence of moves replayed onto a fresh
// board before self-play starts. Files hold whitespace-separated cell
// indices, one opening per file.
type Opening struct {
	Name  string
	Moves []int
}

// OpeningPool serves openings cyclically in a fixed order: shuffled once at
// load time, then indexed by cycle mod pool length on every pass.
type OpeningPool struct {
	openings []Opening
}

// LoadOpeningPool reads every *.pos file under dir. A missing or empty
// directory yields an empty pool, which serves zero-move openings.
func LoadOpeningPool(dir string) (*OpeningPool, error) {
	pool := &OpeningPool{}
	if dir == "" {
		return pool, nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.pos"))
	if err != nil {
		return nil, fmt.Errorf("failed to list openings in %s: %w", dir, err)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read opening %s: %w", path, err)
		}
		opening := Opening{Name: filepath.Base(path)}
		for _, field := range strings.Fields(string(data)) {
			move, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("bad move %q in opening %s: %w", field, path, err)
			}
			opening.Moves = append(opening.Moves, move)
		}
		pool.openings = append(pool.openings, opening)
	}
	frand.Shuffle(len(pool.openings), func(i, j int) {
		pool.openings[i], pool.openings[j] = pool.openings[j], pool.openings[i]
	})
	return pool, nil
}

func (p *OpeningPool) Len() int { return len(p.openings) }

// Get returns the opening for a cycle index, wrapping around the pool.
func (p *OpeningPool) Get(cycle int) Opening {
	if len(p.openings) == 0 {
		return Opening{}
	}
	return p.openings[cycle%len(p.openings)]
}
