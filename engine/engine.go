package engine

import (
	"errors"

	"hybrid/experiments/metrics"
)

// MaxMoves bounds games that can cycle, e.g. Catch the Lion. A game reaching
// it is scored as a draw.
const MaxMoves = 10000

// Draw labels a game won by neither agent
const Draw = "Draw"

var ErrIllegalMove = errors.New("illegal move")

type Engine interface {
	// Run plays a game till it's over or MaxMoves is reached and returns the
	// winning agent's label or Draw
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
