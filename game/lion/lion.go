package lion

import (
	"fmt"
	"strings"

	"hybrid/game"
)

const (
	Rows = 4
	Cols = 3
)

// Pieces are stored as letters: lowercase belongs to game.First (bottom),
// uppercase to game.Second (top).
const (
	none     = ' '
	lion     = 'l'
	giraffe  = 'g'
	elephant = 'e'
	chick    = 'c'
	hen      = 'h'
)

// Steps are written from the top player's point of view; the bottom player
// mirrors the row offset.
var steps = map[byte][][2]int{
	chick:    {{1, 0}},
	giraffe:  {{0, -1}, {0, 1}, {-1, 0}, {1, 0}},
	elephant: {{-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
	hen:      {{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {1, 1}, {1, -1}},
	lion:     {{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
}

// Droppable kinds in hand order
var droppable = [3]byte{chick, elephant, giraffe}

type Square struct {
	Row, Col int
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, Rows-s.Row)
}

// Move is either a board move From -> To, or, when Drop is set, the drop of
// a captured piece of that kind onto the empty square To.
type Move struct {
	From, To Square
	Drop     byte
}

func (m Move) String() string {
	if m.Drop != 0 {
		return fmt.Sprintf("%c*%s", m.Drop, m.To)
	}
	return m.From.String() + m.To.String()
}

// State is a Catch the Lion position. Capturing the opposing lion wins. A
// side left without any legal move loses.
type State struct {
	board [Rows][Cols]byte
	hands [2][len(droppable)]int8
	turn  game.Player

	cached bool
	moves  []game.Move
	winner game.Player
}

func New() *State {
	return &State{
		board: [Rows][Cols]byte{
			{'G', 'L', 'E'},
			{none, 'C', none},
			{none, 'c', none},
			{'e', 'l', 'g'},
		},
		turn: game.First,
	}
}

func (s *State) Copy() game.State {
	return &State{board: s.board, hands: s.hands, turn: s.turn}
}

func (s *State) Play(m game.Move) {
	move := m.(Move)
	if move.Drop != 0 {
		s.board[move.To.Row][move.To.Col] = s.own(move.Drop)
		s.hands[handIndex(s.turn)][kindIndex(move.Drop)]--
	} else {
		piece := s.board[move.From.Row][move.From.Col]
		if captured := s.board[move.To.Row][move.To.Col]; captured != none {
			s.capture(captured)
		}
		if kind(piece) == chick && move.To.Row == s.farRank() {
			piece = s.own(hen)
		}
		s.board[move.To.Row][move.To.Col] = piece
		s.board[move.From.Row][move.From.Col] = none
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

// Hand returns the number of captured pieces of a kind held by a player
func (s *State) Hand(p game.Player, kind byte) int {
	return int(s.hands[handIndex(p)][kindIndex(kind)])
}

func (s *State) derive() {
	if s.cached {
		return
	}
	s.cached = true
	s.moves = nil

	if s.winner = s.lionCaptured(); s.winner != game.Undecided {
		return
	}

	forward := 1
	if s.turn == game.First {
		forward = -1
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			piece := s.board[r][c]
			if !s.owns(s.turn, piece) {
				continue
			}
			for _, step := range steps[kind(piece)] {
				to := Square{Row: r + step[0]*forward, Col: c + step[1]}
				if inside(to) && !s.owns(s.turn, s.board[to.Row][to.Col]) {
					s.moves = append(s.moves, Move{From: Square{Row: r, Col: c}, To: to})
				}
			}
		}
	}

	hand := s.hands[handIndex(s.turn)]
	for i, k := range droppable {
		if hand[i] == 0 {
			continue
		}
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				if s.board[r][c] == none {
					s.moves = append(s.moves, Move{To: Square{Row: r, Col: c}, Drop: k})
				}
			}
		}
	}

	if len(s.moves) == 0 {
		s.winner = game.Opponent(s.turn)
	}
}

func (s *State) lionCaptured() game.Player {
	var first, second bool
	for r := range s.board {
		for c := range s.board[r] {
			switch s.board[r][c] {
			case lion:
				first = true
			case lion - 'a' + 'A':
				second = true
			}
		}
	}
	switch {
	case !second:
		return game.First
	case !first:
		return game.Second
	}
	return game.Undecided
}

func (s *State) capture(piece byte) {
	k := kind(piece)
	if k == hen {
		k = chick
	}
	if k == lion {
		return
	}
	s.hands[handIndex(s.turn)][kindIndex(k)]++
}

func (s *State) farRank() int {
	if s.turn == game.First {
		return 0
	}
	return Rows - 1
}

// own converts a lowercase kind to the side to move's piece
func (s *State) own(k byte) byte {
	if s.turn == game.First {
		return k
	}
	return k - 'a' + 'A'
}

func (s *State) owns(p game.Player, piece byte) bool {
	if piece == none {
		return false
	}
	lower := piece >= 'a' && piece <= 'z'
	return lower == (p == game.First)
}

func (s *State) String() string {
	var b strings.Builder
	for r := 0; r < Rows; r++ {
		row := make([]string, Cols)
		for c := 0; c < Cols; c++ {
			row[c] = string(s.board[r][c])
		}
		b.WriteString(strings.Join(row, " | ") + "\n")
	}
	return b.String()
}

func kind(piece byte) byte {
	if piece >= 'A' && piece <= 'Z' {
		return piece - 'A' + 'a'
	}
	return piece
}

func kindIndex(k byte) int {
	for i, d := range droppable {
		if d == k {
			return i
		}
	}
	panic(fmt.Sprintf("piece %q cannot be held in hand", k))
}

func handIndex(p game.Player) int {
	if p == game.First {
		return 0
	}
	return 1
}

func inside(s Square) bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Cols
}
