package minimax

import (
	"errors"
	"math"

	"hybrid/game"
)

var ErrNoMoves = errors.New("no legal moves")

var (
	Win  = math.Inf(1)
	Loss = math.Inf(-1)
)

// Search runs a depth-bounded alpha-beta search from the point of view of the
// side to move in state. It returns Win when that side can force a win within
// depth plies, Loss when the opponent can, and 0 otherwise. A 0 does not
// distinguish a proven draw from an unresolved cutoff.
func Search(state game.State, depth int) float64 {
	s := newSolver(state, true)
	return s.search(state, depth, Loss, Win, true)
}

// Full is Search without pruning
func Full(state game.State, depth int) float64 {
	s := newSolver(state, false)
	return s.search(state, depth, Loss, Win, true)
}

// BestMove returns the first move with the best value for the side to move
// together with that value.
func BestMove(state game.State, depth int) (game.Move, float64, error) {
	moves := state.Moves()
	if len(moves) == 0 {
		return nil, 0, ErrNoMoves
	}

	s := newSolver(state, true)
	var best game.Move
	bestValue, alpha := Loss, Loss
	for _, move := range moves {
		child := state.Copy()
		child.Play(move)
		value := s.search(child, max(depth-1, 0), alpha, Win, false)
		if best == nil || value > bestValue {
			best, bestValue = move, value
		}
		alpha = max(alpha, value)
	}
	return best, bestValue, nil
}

type solver struct {
	player   game.Player
	opponent game.Player
	prune    bool
}

func newSolver(root game.State, prune bool) *solver {
	return &solver{
		player:   root.Player(),
		opponent: root.Opponent(),
		prune:    prune,
	}
}

func (s *solver) evaluate(state game.State) float64 {
	switch state.Winner() {
	case s.player:
		return Win
	case s.opponent:
		return Loss
	}
	return 0
}

func (s *solver) search(state game.State, depth int, alpha, beta float64, maximizing bool) float64 {
	if depth <= 0 || state.Winner() != game.Undecided {
		return s.evaluate(state)
	}

	if maximizing {
		best := Loss
		for _, move := range state.Moves() {
			child := state.Copy()
			child.Play(move)
			value := s.search(child, depth-1, alpha, beta, false)
			best = max(best, value)
			alpha = max(alpha, value)
			if s.prune && beta <= alpha {
				break // Beta cutoff
			}
		}
		return best
	}

	best := Win
	for _, move := range state.Moves() {
		child := state.Copy()
		child.Play(move)
		value := s.search(child, depth-1, alpha, beta, true)
		best = min(best, value)
		beta = min(beta, value)
		if s.prune && beta <= alpha {
			break // Alpha cutoff
		}
	}
	return best
}
