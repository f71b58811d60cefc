package othello

import (
	"fmt"
	"strings"

	"hybrid/game"
)

const Size = 8

type disc int8

const (
	empty disc = 0
	black disc = 1 // game.First
	white disc = -1
)

var directions = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// Move places a disc on the given square
type Move struct {
	Row, Col int
}

func (m Move) String() string {
	return fmt.Sprintf("%c%d", 'a'+m.Col, Size-m.Row)
}

// State is an Othello position. There is no pass move: the game ends as soon
// as the side to move has no legal placement.
type State struct {
	board [Size][Size]disc
	turn  disc

	// Derived values, computed at most once per position
	cached bool
	moves  []game.Move
	winner game.Player
}

// New returns the standard starting position with black to move
func New() *State {
	s := &State{turn: black}
	hi, lo := Size/2, (Size-1)/2
	s.board[hi][hi], s.board[lo][lo] = black, black
	s.board[hi][lo], s.board[lo][hi] = white, white
	return s
}

func (s *State) Copy() game.State {
	return &State{board: s.board, turn: s.turn}
}

func (s *State) Play(m game.Move) {
	move := m.(Move)
	opponent := -s.turn
	s.board[move.Row][move.Col] = s.turn
	for _, d := range directions {
		r, c := move.Row+d[0], move.Col+d[1]
		flips := 0
		for inside(r, c) && s.board[r][c] == opponent {
			r, c = r+d[0], c+d[1]
			flips++
		}
		if flips == 0 || !inside(r, c) || s.board[r][c] != s.turn {
			continue
		}
		for i := 1; i <= flips; i++ {
			s.board[move.Row+i*d[0]][move.Col+i*d[1]] = s.turn
		}
	}
	s.turn = opponent
	s.cached = false
}

func (s *State) Moves() []game.Move {
	s.derive()
	return s.moves
}

func (s *State) Winner() game.Player {
	s.derive()
	return s.winner
}

func (s *State) Player() game.Player {
	return toPlayer(s.turn)
}

func (s *State) Opponent() game.Player {
	return toPlayer(-s.turn)
}

// Count returns the number of discs of each colour
func (s *State) Count() (blacks, whites int) {
	for r := range s.board {
		for c := range s.board[r] {
			switch s.board[r][c] {
			case black:
				blacks++
			case white:
				whites++
			}
		}
	}
	return blacks, whites
}

func (s *State) derive() {
	if s.cached {
		return
	}
	s.cached = true

	s.moves = nil
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.isLegal(r, c) {
				s.moves = append(s.moves, Move{Row: r, Col: c})
			}
		}
	}

	s.winner = game.Undecided
	if len(s.moves) > 0 {
		return
	}
	blacks, whites := s.Count()
	switch {
	case blacks > whites:
		s.winner = game.First
	case whites > blacks:
		s.winner = game.Second
	default:
		s.winner = game.Draw
	}
}

func (s *State) isLegal(row, col int) bool {
	if s.board[row][col] != empty {
		return false
	}
	opponent := -s.turn
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		count := 0
		for inside(r, c) && s.board[r][c] == opponent {
			r, c = r+d[0], c+d[1]
			count++
		}
		if count > 0 && inside(r, c) && s.board[r][c] == s.turn {
			return true
		}
	}
	return false
}

func (s *State) String() string {
	var b strings.Builder
	for r := 0; r < Size; r++ {
		fmt.Fprintf(&b, "%d |", Size-r)
		for c := 0; c < Size; c++ {
			b.WriteString(" " + symbol(s.board[r][c]) + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("  |")
	for c := 0; c < Size; c++ {
		fmt.Fprintf(&b, " %c |", 'a'+c)
	}
	b.WriteString("\n")
	return b.String()
}

func inside(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

func toPlayer(d disc) game.Player {
	if d == black {
		return game.First
	}
	return game.Second
}

func symbol(d disc) string {
	switch d {
	case black:
		return string(game.First)
	case white:
		return string(game.Second)
	}
	return " "
}
