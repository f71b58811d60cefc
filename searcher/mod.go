package searcher

import (
	"errors"
	"fmt"
	"strings"

	"hybrid/game"
)

var (
	ErrNoMoves        = errors.New("no move available")
	ErrUnknownVariant = errors.New("unknown search variant")
)

// Variant selects when the search consults minimax
type Variant int

const (
	// Plain is MCTS with random rollouts
	Plain Variant = iota
	// MinimaxRollout tries to solve every newly expanded node before its rollout
	MinimaxRollout
	// MinimaxSelection stops descent at a node with a threshold visit count
	// and tries to solve it there
	MinimaxSelection
	// MinimaxBackup tries to solve nodes during backpropagation
	MinimaxBackup
)

var variantNames = [...]string{
	Plain:            "mcts",
	MinimaxRollout:   "mcts-mr",
	MinimaxSelection: "mcts-ms",
	MinimaxBackup:    "mcts-mb",
}

func (v Variant) valid() bool {
	return v >= 0 && int(v) < len(variantNames)
}

func (v Variant) String() string {
	if !v.valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant maps a variant name (e.g. "mcts-mr") to its Variant
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if strings.EqualFold(n, name) {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

type Searcher interface {
	FindNextMove(state game.State) (game.Move, error)
}
