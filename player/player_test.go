package player

import (
	"testing"
	"time"

	"hybrid/experiments/metrics"
	"hybrid/game/connect4"
	"hybrid/game/toy"
	"hybrid/searcher"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "random", want: Random},
		{name: "minimax", want: Minimax},
		{name: "mcts", want: "mcts"},
		{name: "mcts-mr", want: "mcts-mr"},
		{name: "MCTS-MS", want: "mcts-ms"},
		{name: "mcts-mb", want: "mcts-mb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := New(metrics.NewAgentConfig(tt.name))
			require.NoError(t, err)
			require.Equal(t, tt.want, agent.Name())
		})
	}

	t.Run("unknown agent", func(t *testing.T) {
		_, err := New(metrics.NewAgentConfig("alphazero"))
		require.ErrorIs(t, err, ErrUnknownAgent)
	})
}

func TestFindMove(t *testing.T) {
	t.Run("random agent plays legal moves", func(t *testing.T) {
		agent, err := NewSeeded(metrics.NewAgentConfig(Random), 1)
		require.NoError(t, err)
		state := connect4.New()

		for i := 0; i < 20; i++ {
			move, _, err := agent.FindMove(state)
			require.NoError(t, err)
			require.Contains(t, state.Moves(), move)
		}
	})

	t.Run("minimax agent captures the marker", func(t *testing.T) {
		agent, err := New(metrics.NewAgentConfig(Minimax))
		require.NoError(t, err)

		move, metric, err := agent.FindMove(toy.OnePlyWin())

		require.NoError(t, err)
		require.Equal(t, toy.Move(1), move)
		require.True(t, metric.RootSolved)
	})

	t.Run("search agent honours its config", func(t *testing.T) {
		config := metrics.NewAgentConfig("mcts-mr")
		config.Episodes = 25
		config.Depth = 1
		agent, err := NewSeeded(config, 3)
		require.NoError(t, err)

		move, metric, err := agent.FindMove(toy.OnePlyWin())

		require.NoError(t, err)
		require.Equal(t, toy.Move(1), move)
		require.Equal(t, 25, metric.Episodes)
		require.Equal(t, "mcts-mr", metric.Variant)
		require.Equal(t, time.Second, metric.Budget)
	})

	t.Run("finished game has no move", func(t *testing.T) {
		state := toy.OnePlyWin()
		state.Play(toy.Move(1))

		for _, name := range []string{Random, Minimax, "mcts"} {
			config := metrics.NewAgentConfig(name)
			config.Episodes = 1
			agent, err := New(config)
			require.NoError(t, err)

			_, _, err = agent.FindMove(state)
			require.ErrorIs(t, err, searcher.ErrNoMoves, name)
		}
	})
}
