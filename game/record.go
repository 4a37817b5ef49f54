package game

// Outcome is a game result seen from one player's perspective.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// OutcomeFor maps a terminal winner to player p's perspective.
func OutcomeFor(winner, p Player) Outcome {
	switch winner {
	case NoPlayer:
		return Draw
	case p:
		return Win
	default:
		return Loss
	}
}

// Value is the training target for an outcome: +1 win, -1 loss, 0 draw.
func (o Outcome) Value() float32 {
	switch o {
	case Win:
		return 1
	case Loss:
		return -1
	default:
		return 0
	}
}

// Step is one position of a self-play trajectory: the encoded state, the
// search probabilities over all cells, and the final outcome value from the
// perspective of the side to play at that state.
type Step struct {
	State   Tensor
	Probs   []float32
	Outcome float32
}

// Record is the full trajectory of one self-play episode.
type Record []Step
