package game

import (
	"github.com/rs/zerolog/log"
)

// Mover selects a move for the side to play on b.
type Mover interface {
	Move(b *Board) int
}

// SelfPlayer selects a move and reports the full search probability vector
// used to pick it. Reset drops any search tree carried between moves.
type SelfPlayer interface {
	MoveProbs(b *Board, temp float64) (move int, probs []float32)
	Reset()
}

// Runner hosts games on boards of a fixed geometry.
type Runner struct {
	width  int
	height int
	nInRow int
}

func NewRunner(width, height, nInRow int) *Runner {
	return &Runner{width: width, height: height, nInRow: nInRow}
}

// StartSelfPlay plays one full episode with p controlling both sides and
// returns the winner plus the trajectory with retroactively assigned
// outcomes. The warning flag marks anomalous termination; the episode is
// still usable.
func (r *Runner) StartSelfPlay(p SelfPlayer, temp float64, opening Opening) (warning bool, winner Player, rec Record) {
	board := NewBoard(r.width, r.height, r.nInRow, Black)
	defer p.Reset()

	for _, move := range opening.Moves {
		if !board.IsAvailable(move) {
			log.Warn().Str("opening", opening.Name).Int("move", move).
				Msg("opening replay hit an illegal move")
			warning = true
			break
		}
		board.DoMove(move)
		if over, _ := board.GameEnd(); over {
			log.Warn().Str("opening", opening.Name).Msg("opening replay reached a terminal position")
			warning = true
			break
		}
	}

	players := make([]Player, 0, board.CellCount())
	maxMoves := board.CellCount()
	for moves := 0; ; moves++ {
		if moves > maxMoves {
			// Unreachable on a well-formed board; a corrupt opening could get here.
			warning = true
			break
		}
		move, probs := p.MoveProbs(board, temp)
		rec = append(rec, Step{State: board.CurrentState(), Probs: probs})
		players = append(players, board.CurrentPlayer())
		board.DoMove(move)
		if over, w := board.GameEnd(); over {
			winner = w
			break
		}
	}

	for i := range rec {
		rec[i].Outcome = OutcomeFor(winner, players[i]).Value()
	}
	return warning, winner, rec
}

// StartPlay runs one evaluation game. a plays Black, b plays White;
// firstPlayer 0 gives Black the first move, 1 gives it to White.
func (r *Runner) StartPlay(a, b Mover, firstPlayer int) Player {
	start := Black
	if firstPlayer%2 == 1 {
		start = White
	}
	board := NewBoard(r.width, r.height, r.nInRow, start)
	movers := map[Player]Mover{Black: a, White: b}
	for {
		move := movers[board.CurrentPlayer()].Move(board)
		board.DoMove(move)
		if over, winner := board.GameEnd(); over {
			return winner
		}
	}
}
