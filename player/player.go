// Package player builds the agents that take turns in a game
package player

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hybrid/experiments/metrics"
	"hybrid/game"
	"hybrid/minimax"
	"hybrid/searcher"

	"golang.org/x/exp/rand"
)

const (
	Random  = "random"
	Minimax = "minimax"
)

var ErrUnknownAgent = errors.New("unknown agent")

type Agent interface {
	Name() string
	// FindMove returns the move to play and the metrics of the search behind it
	FindMove(state game.State) (game.Move, metrics.SearchMetric, error)
}

// New builds the agent named by config: "random", "minimax" or a search
// variant name such as "mcts-mr"
func New(config metrics.AgentConfig) (Agent, error) {
	return NewSeeded(config, uint64(time.Now().UnixNano()))
}

// NewSeeded is New with a fixed random source
func NewSeeded(config metrics.AgentConfig, seed uint64) (Agent, error) {
	switch strings.ToLower(config.Name) {
	case Random:
		return &randomAgent{rand: rand.New(rand.NewSource(seed))}, nil
	case Minimax:
		return &minimaxAgent{depth: config.Depth}, nil
	}

	variant, err := searcher.ParseVariant(config.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, config.Name)
	}

	options := []searcher.Option{
		searcher.WithVariant(variant),
		searcher.WithDuration(config.Duration),
		searcher.WithExploration(config.C),
		searcher.WithDepth(config.Depth),
		searcher.WithVisits(config.Visits),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	return &searchAgent{mcts: searcher.NewMCTS(options...)}, nil
}

type randomAgent struct {
	rand *rand.Rand
}

func (a *randomAgent) Name() string {
	return Random
}

func (a *randomAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	moves := state.Moves()
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}, searcher.ErrNoMoves
	}
	return moves[a.rand.Intn(len(moves))], metrics.SearchMetric{Variant: Random}, nil
}

type minimaxAgent struct {
	depth int
}

func (a *minimaxAgent) Name() string {
	return Minimax
}

func (a *minimaxAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	move, value, err := minimax.BestMove(state, a.depth)
	if err != nil {
		return nil, metrics.SearchMetric{}, searcher.ErrNoMoves
	}
	return move, metrics.SearchMetric{
		Variant:       Minimax,
		Duration:      time.Since(start),
		MinimaxCalls:  1,
		MinimaxSolved: solved(value),
		RootSolved:    solved(value) == 1,
	}, nil
}

func solved(value float64) int {
	if value == minimax.Win || value == minimax.Loss {
		return 1
	}
	return 0
}

type searchAgent struct {
	mcts *searcher.MCTS
}

func (a *searchAgent) Name() string {
	return a.mcts.Variant().String()
}

func (a *searchAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	return a.mcts.Simulate(state)
}
