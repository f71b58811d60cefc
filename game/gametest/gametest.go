// Package gametest checks the game.State contract on random playouts
package gametest

import (
	"testing"

	"hybrid/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// MaxPlies bounds playouts of games that can cycle
const MaxPlies = 500

// Conformance plays n random games from create(). Every position must have
// no moves iff it is decided, and playing on a copy must leave it untouched.
func Conformance(t *testing.T, create func() game.State, n int) {
	t.Helper()
	r := rand.New(rand.NewSource(uint64(n)))

	for i := 0; i < n; i++ {
		state := create()
		require.Equal(t, game.First, state.Player(), "First player starts")

		for ply := 0; ply < MaxPlies; ply++ {
			moves := state.Moves()
			winner := state.Winner()
			require.Equal(t, len(moves) == 0, winner != game.Undecided,
				"Moves should be empty iff the game is decided")
			require.Equal(t, game.Opponent(state.Player()), state.Opponent())
			if len(moves) == 0 {
				break
			}

			move := moves[r.Intn(len(moves))]
			player := state.Player()

			copied := state.Copy()
			copied.Play(move)
			require.Equal(t, player, state.Player(), "Playing on a copy should not change the original")
			require.Len(t, state.Moves(), len(moves), "Playing on a copy should not change the original")

			state.Play(move)
			require.Equal(t, game.Opponent(player), state.Player(), "Side to move should alternate")
			require.Equal(t, copied.Winner(), state.Winner(), "Copy should play out the same")
		}
	}
}
