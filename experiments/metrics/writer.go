package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder for one training run's records.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, "training", timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteCycleRecords(records []CycleRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "cycle_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cycle records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"cycle", "episode_len", "buffer_size", "updated", "loss", "entropy", "kl", "epochs", "lr_multiplier"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write cycle records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Cycle),
			strconv.Itoa(record.EpisodeLen),
			strconv.Itoa(record.BufferSize),
			strconv.FormatBool(record.Updated),
			strconv.FormatFloat(record.Loss, 'g', -1, 64),
			strconv.FormatFloat(record.Entropy, 'g', -1, 64),
			strconv.FormatFloat(record.KL, 'g', -1, 64),
			strconv.Itoa(record.Epochs),
			strconv.FormatFloat(record.LRMultiplier, 'g', -1, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write cycle record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteEvalRecords(records []EvalRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "eval_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create eval records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"cycle", "baseline_playouts", "wins", "losses", "draws", "win_ratio", "best_win_ratio", "escalated"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write eval records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Cycle),
			strconv.Itoa(record.BaselinePlayouts),
			strconv.Itoa(record.Wins),
			strconv.Itoa(record.Losses),
			strconv.Itoa(record.Draws),
			strconv.FormatFloat(record.WinRatio, 'g', -1, 64),
			strconv.FormatFloat(record.BestWinRatio, 'g', -1, 64),
			strconv.FormatBool(record.Escalated),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write eval record row: %w", err)
		}
	}

	return nil
}
