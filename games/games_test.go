package games

import (
	"testing"

	"hybrid/game"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range []string{Othello, Connect4, CatchTheLion} {
		t.Run(name, func(t *testing.T) {
			state, err := New(name)

			require.NoError(t, err)
			require.Equal(t, game.First, state.Player())
			require.NotEmpty(t, state.Moves())
		})
	}

	t.Run("fresh position every call", func(t *testing.T) {
		create, err := Lookup(Connect4)
		require.NoError(t, err)

		a := create()
		a.Play(a.Moves()[0])

		require.Equal(t, game.First, create().Player())
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := New("chess")
		require.ErrorIs(t, err, ErrUnknownGame)
	})
}
