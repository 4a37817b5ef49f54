package game

import (
	"fmt"
	"slices"
)

// Player identifies a side. NoPlayer doubles as the draw marker.
type Player int

const (
	NoPlayer Player = 0
	Black    Player = 1
	White    Player = 2
)

func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// PlaneCount is the number of channels in the board encoding fed to the
// evaluator: own stones, opponent stones, last move, colour to play.
const PlaneCount = 4

// Tensor is a multi-channel board encoding: PlaneCount flat H*W planes.
type Tensor [][]float32

// Board is a width x height gomoku position. Moves are flat cell indices
// (row*width + col). The side that first lines up nInRow stones wins.
type Board struct {
	width      int
	height     int
	nInRow     int
	states     map[int]Player
	availables []int
	current    Player
	lastMove   int
}

func NewBoard(width, height, nInRow int, start Player) *Board {
	if width < nInRow && height < nInRow {
		panic(fmt.Sprintf("board %dx%d cannot fit %d in a row", width, height, nInRow))
	}
	if start == NoPlayer {
		start = Black
	}
	availables := make([]int, width*height)
	for i := range availables {
		availables[i] = i
	}
	return &Board{
		width:      width,
		height:     height,
		nInRow:     nInRow,
		states:     make(map[int]Player),
		availables: availables,
		current:    start,
		lastMove:   -1,
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// CellCount is the length of a move probability vector for this board.
func (b *Board) CellCount() int { return b.width * b.height }

func (b *Board) CurrentPlayer() Player { return b.current }
func (b *Board) LastMove() int         { return b.lastMove }
func (b *Board) MoveCount() int        { return len(b.states) }

// Availables returns the empty cells. Callers must not mutate the slice.
func (b *Board) Availables() []int { return b.availables }

func (b *Board) IsAvailable(move int) bool {
	if move < 0 || move >= b.CellCount() {
		return false
	}
	_, taken := b.states[move]
	return !taken
}

func (b *Board) Clone() *Board {
	states := make(map[int]Player, len(b.states))
	for m, p := range b.states {
		states[m] = p
	}
	return &Board{
		width:      b.width,
		height:     b.height,
		nInRow:     b.nInRow,
		states:     states,
		availables: slices.Clone(b.availables),
		current:    b.current,
		lastMove:   b.lastMove,
	}
}

// DoMove places the current player's stone and passes the turn.
func (b *Board) DoMove(move int) {
	if !b.IsAvailable(move) {
		panic(fmt.Sprintf("illegal move %d", move))
	}
	b.states[move] = b.current
	i := slices.Index(b.availables, move)
	b.availables = slices.Delete(b.availables, i, i+1)
	b.lastMove = move
	b.current = b.current.Opponent()
}

// HasWinner scans the placed stones for an nInRow line.
func (b *Board) HasWinner() (Player, bool) {
	if len(b.states) < b.nInRow*2-1 {
		return NoPlayer, false
	}
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for move, player := range b.states {
		row, col := move/b.width, move%b.width
		for _, d := range dirs {
			count := 1
			for k := 1; k < b.nInRow; k++ {
				r, c := row+d[0]*k, col+d[1]*k
				if r < 0 || r >= b.height || c < 0 || c >= b.width {
					break
				}
				if b.states[r*b.width+c] != player {
					break
				}
				count++
			}
			if count >= b.nInRow {
				return player, true
			}
		}
	}
	return NoPlayer, false
}

// GameEnd reports whether the game is over and who won (NoPlayer for a draw).
func (b *Board) GameEnd() (bool, Player) {
	if winner, ok := b.HasWinner(); ok {
		return true, winner
	}
	if len(b.availables) == 0 {
		return true, NoPlayer
	}
	return false, NoPlayer
}

// CurrentState encodes the position from the side to play's perspective.
// Rows are vertically flipped; the symmetry augmentation's double-flip
// convention depends on this orientation.
func (b *Board) CurrentState() Tensor {
	planes := make(Tensor, PlaneCount)
	for i := range planes {
		planes[i] = make([]float32, b.CellCount())
	}
	for move, player := range b.states {
		idx := b.flip(move)
		if player == b.current {
			planes[0][idx] = 1
		} else {
			planes[1][idx] = 1
		}
	}
	if b.lastMove >= 0 {
		planes[2][b.flip(b.lastMove)] = 1
	}
	if len(b.states)%2 == 0 {
		for i := range planes[3] {
			planes[3][i] = 1
		}
	}
	return planes
}

// flip mirrors a cell index across the horizontal axis.
func (b *Board) flip(move int) int {
	row, col := move/b.width, move%b.width
	return (b.height-1-row)*b.width + col
}
