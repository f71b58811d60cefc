package connect4

import (
	"fmt"
	"strconv"
	"strings"

	"hybrid/game"
)

const (
	Cols = 7
	Rows = 6
	line = 4
)

// Move drops a disc into a column
type Move int

func (m Move) String() string {
	return strconv.Itoa(int(m) + 1)
}

// State is a Connect Four position. Row 0 is the top of the board.
type State struct {
	board [Cols][Rows]game.Player
	turn  game.Player

	cached bool
	moves  []game.Move
	winner game.Player
}

func New() *State {
	return &State{turn: game.First}
}

func (s *State) Copy() game.State {
	return &State{board: s.board, turn: s.turn}
}

func (s *State) Play(m game.Move) {
	col := int(m.(Move))
	for row := Rows - 1; row >= 0; row-- {
		if s.board[col][row] == game.Undecided {
			s.board[col][row] = s.turn
			break
		}
	}
	s.turn = game.Opponent(s.turn)
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
	return s.turn
}

func (s *State) Opponent() game.Player {
	return game.Opponent(s.turn)
}

func (s *State) derive() {
	if s.cached {
		return
	}
	s.cached = true
	s.moves = nil

	if s.winner = s.connected(); s.winner != game.Undecided {
		return
	}
	for col := 0; col < Cols; col++ {
		if s.board[col][0] == game.Undecided {
			s.moves = append(s.moves, Move(col))
		}
	}
	if len(s.moves) == 0 {
		s.winner = game.Draw
	}
}

// connected returns the owner of any four-in-a-row on the board
func (s *State) connected() game.Player {
	steps := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for col := 0; col < Cols; col++ {
		for row := 0; row < Rows; row++ {
			owner := s.board[col][row]
			if owner == game.Undecided {
				continue
			}
			for _, step := range steps {
				n := 1
				for c, r := col+step[0], row+step[1]; n < line && inside(c, r) && s.board[c][r] == owner; c, r = c+step[0], r+step[1] {
					n++
				}
				if n == line {
					return owner
				}
			}
		}
	}
	return game.Undecided
}

func (s *State) String() string {
	var b strings.Builder
	for row := 0; row < Rows; row++ {
		fmt.Fprintf(&b, "%d |", Rows-row)
		for col := 0; col < Cols; col++ {
			cell := string(s.board[col][row])
			if cell == "" {
				cell = " "
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("  |")
	for col := 0; col < Cols; col++ {
		fmt.Fprintf(&b, " %d |", col+1)
	}
	b.WriteString("\n")
	return b.String()
}

func inside(col, row int) bool {
	return col >= 0 && col < Cols && row >= 0 && row < Rows
}
