// Package toy implements "capture the marker", a 2x2 game small enough to be
// searched exhaustively. Each side has one token; a token steps to a
// horizontally or vertically adjacent cell not held by the other token, and
// the first token to step onto the marker wins. The game is drawn once the
// ply limit is reached.
package toy

import (
	"strconv"

	"hybrid/game"
)

// Cells are numbered row-major:
//
//	0 1
//	2 3
const Cells = 4

const DefaultLimit = 8

// Move is the destination cell of the side to move
type Move int

func (m Move) String() string {
	return "->" + strconv.Itoa(int(m))
}

type State struct {
	tokens [2]int
	marker int
	turn   game.Player
	plies  int
	limit  int
	taken  game.Player
}

// New returns a position with the first player's token on first, the second
// player's token on second and the marker on marker, first player to move.
func New(first, second, marker, limit int) *State {
	return &State{
		tokens: [2]int{first, second},
		marker: marker,
		turn:   game.First,
		limit:  limit,
	}
}

// OnePlyWin returns a position where the first player captures the marker
// with Move(1) and has the losing alternative Move(2).
func OnePlyWin() *State {
	return New(0, 3, 1, DefaultLimit)
}

func (s *State) Copy() game.State {
	c := *s
	return &c
}

func (s *State) Play(m game.Move) {
	to := int(m.(Move))
	s.tokens[index(s.turn)] = to
	if to == s.marker {
		s.taken = s.turn
	}
	s.turn = game.Opponent(s.turn)
	s.plies++
}

func (s *State) Moves() []game.Move {
	if s.Winner() != game.Undecided {
		return nil
	}
	from := s.tokens[index(s.turn)]
	blocked := s.tokens[index(game.Opponent(s.turn))]
	var moves []game.Move
	for _, to := range []int{from ^ 1, from ^ 2} {
		if to != blocked {
			moves = append(moves, Move(to))
		}
	}
	return moves
}

func (s *State) Winner() game.Player {
	if s.taken != game.Undecided {
		return s.taken
	}
	if s.plies >= s.limit {
		return game.Draw
	}
	return game.Undecided
}

func (s *State) Player() game.Player {
	return s.turn
}

func (s *State) Opponent() game.Player {
	return game.Opponent(s.turn)
}

func index(p game.Player) int {
	if p == game.First {
		return 0
	}
	return 1
}
