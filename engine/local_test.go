package engine

import (
	"testing"

	"hybrid/experiments/metrics"
	"hybrid/game"
	"hybrid/game/connect4"
	"hybrid/game/toy"
	"hybrid/player"

	"github.com/stretchr/testify/require"
)

// scripted plays a fixed sequence of moves
type scripted struct {
	moves []game.Move
}

func (a *scripted) Name() string {
	return "scripted"
}

func (a *scripted) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	move := a.moves[0]
	a.moves = a.moves[1:]
	return move, metrics.SearchMetric{}, nil
}

func seat(t *testing.T, label, name string) Seat {
	config := metrics.NewAgentConfig(name)
	config.Episodes = 20
	agent, err := player.NewSeeded(config, 11)
	require.NoError(t, err)
	return Seat{Label: label, Agent: agent}
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("first seat wins", func(t *testing.T) {
		first := Seat{Label: "a", Agent: &scripted{moves: []game.Move{toy.Move(1)}}}
		second := Seat{Label: "b", Agent: &scripted{}}

		winner, gameMetric, moveMetrics, err := LocalEngine(toy.OnePlyWin(), first, second).Run()

		require.NoError(t, err)
		require.Equal(t, "a", winner)
		require.Equal(t, "a", gameMetric.Winner)
		require.Equal(t, "a", gameMetric.StartingAgent)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 1)
		require.Equal(t, "->1", moveMetrics[0].Move)
	})

	t.Run("second seat wins", func(t *testing.T) {
		first := Seat{Label: "a", Agent: &scripted{moves: []game.Move{toy.Move(2)}}}
		second := Seat{Label: "b", Agent: &scripted{moves: []game.Move{toy.Move(1)}}}

		winner, _, moveMetrics, err := LocalEngine(toy.OnePlyWin(), first, second).Run()

		require.NoError(t, err)
		require.Equal(t, "b", winner)
		require.Equal(t, []string{"a", "b"}, []string{moveMetrics[0].Player, moveMetrics[1].Player})
	})

	t.Run("draw at the ply limit", func(t *testing.T) {
		first := Seat{Label: "a", Agent: &scripted{moves: []game.Move{toy.Move(2)}}}
		second := Seat{Label: "b", Agent: &scripted{}}

		winner, gameMetric, _, err := LocalEngine(toy.New(0, 3, 1, 1), first, second).Run()

		require.NoError(t, err)
		require.Equal(t, Draw, winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
	})

	t.Run("illegal move is rejected", func(t *testing.T) {
		first := Seat{Label: "a", Agent: &scripted{moves: []game.Move{toy.Move(3)}}}
		second := Seat{Label: "b", Agent: &scripted{}}
		state := toy.OnePlyWin()

		_, _, _, err := LocalEngine(state, first, second).Run()

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, game.First, state.Player(), "Illegal move should not be played")
	})

	t.Run("search agents play a full game", func(t *testing.T) {
		winner, gameMetric, moveMetrics, err := LocalEngine(connect4.New(), seat(t, "mcts", "mcts"), seat(t, "random", player.Random)).Run()

		require.NoError(t, err)
		require.Contains(t, []string{"mcts", "random", Draw}, winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.GreaterOrEqual(t, gameMetric.TotalMoves, 7, "Shortest connect four game")
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
		}
		require.Equal(t, 20, moveMetrics[0].Episodes)
	})

	t.Run("panics without two agents", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(connect4.New(), Seat{Label: "a"}, seat(t, "b", player.Random))
		})
	})
}
