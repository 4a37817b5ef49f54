package metrics

// CycleRecord captures one training cycle: the self-play episode and the
// policy update that followed it (update fields are zero when the update was
// skipped for lack of data).
type CycleRecord struct {
	Cycle        int
	EpisodeLen   int
	BufferSize   int
	Updated      bool
	Loss         float64
	Entropy      float64
	KL           float64
	Epochs       int
	LRMultiplier float64
}

// EvalRecord captures one evaluation round against the baseline.
type EvalRecord struct {
	Cycle            int
	BaselinePlayouts int
	Wins             int
	Losses           int
	Draws            int
	WinRatio         float64
	BestWinRatio     float64
	Escalated        bool
}
