package minimax

import (
	"testing"

	"hybrid/game"
	"hybrid/game/connect4"
	"hybrid/game/lion"
	"hybrid/game/toy"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSearch(t *testing.T) {
	t.Run("depth 0 is neutral", func(t *testing.T) {
		require.Equal(t, 0.0, Search(toy.OnePlyWin(), 0))
	})

	t.Run("one ply from a forced win", func(t *testing.T) {
		require.Equal(t, Win, Search(toy.OnePlyWin(), 1))
	})

	t.Run("finished game is evaluated from the searching side", func(t *testing.T) {
		state := toy.OnePlyWin()
		state.Play(toy.Move(1)) // First captures, Second to move
		require.Equal(t, Loss, Search(state, 3), "Side to move has already lost")
	})

	t.Run("blunder is punished on the next ply", func(t *testing.T) {
		// First steps away from the marker instead of onto it
		state := toy.New(0, 3, 1, toy.DefaultLimit)
		state.Play(toy.Move(2)) // Second to move from 3 with the marker on 1
		require.Equal(t, Win, Search(state, 1), "Second reaches the marker next")
	})

	t.Run("draw by ply limit is neutral", func(t *testing.T) {
		state := toy.New(0, 3, 1, 0)
		require.Equal(t, game.Draw, state.Winner())
		require.Equal(t, 0.0, Search(state, 4))
	})
}

func TestSearchMatchesFullMinimax(t *testing.T) {
	t.Run("toy positions", func(t *testing.T) {
		for first := 0; first < toy.Cells; first++ {
			for second := 0; second < toy.Cells; second++ {
				for marker := 0; marker < toy.Cells; marker++ {
					if first == second || marker == first || marker == second {
						continue
					}
					for depth := 0; depth <= 6; depth++ {
						state := toy.New(first, second, marker, toy.DefaultLimit)
						require.Equal(t, Full(state, depth), Search(state, depth),
							"tokens=(%d,%d) marker=%d depth=%d", first, second, marker, depth)
					}
				}
			}
		}
	})

	t.Run("random connect four positions", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			state := randomPosition(r, connect4.New(), 6+r.Intn(14))
			require.Equal(t, Full(state, 4), Search(state, 4), "position %d", i)
		}
	})

	t.Run("random catch the lion positions", func(t *testing.T) {
		r := rand.New(rand.NewSource(11))
		for i := 0; i < 20; i++ {
			state := randomPosition(r, lion.New(), 2+r.Intn(10))
			require.Equal(t, Full(state, 3), Search(state, 3), "position %d", i)
		}
	})
}

func TestBestMove(t *testing.T) {
	t.Run("finds the capturing move", func(t *testing.T) {
		for depth := 1; depth <= 4; depth++ {
			move, value, err := BestMove(toy.OnePlyWin(), depth)
			require.NoError(t, err)
			require.Equal(t, toy.Move(1), move, "depth %d", depth)
			require.Equal(t, Win, value)
		}
	})

	t.Run("finished game has no move", func(t *testing.T) {
		state := toy.OnePlyWin()
		state.Play(toy.Move(1))

		_, _, err := BestMove(state, 2)
		require.ErrorIs(t, err, ErrNoMoves)
	})

	t.Run("does not mutate the searched state", func(t *testing.T) {
		state := connect4.New()
		state.Play(connect4.Move(3))
		before := state.Copy()

		_, _, err := BestMove(state, 3)
		require.NoError(t, err)
		require.Equal(t, before, state.Copy())
	})
}

// randomPosition plays up to plies random moves, stopping early at game end
func randomPosition(r *rand.Rand, state game.State, plies int) game.State {
	for i := 0; i < plies; i++ {
		moves := state.Moves()
		if len(moves) == 0 {
			break
		}
		state.Play(moves[r.Intn(len(moves))])
	}
	return state
}
