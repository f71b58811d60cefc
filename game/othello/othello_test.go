package othello

import (
	"testing"

	"hybrid/game"
	"hybrid/game/gametest"

	"github.com/stretchr/testify/require"
)

func TestConformance(t *testing.T) {
	gametest.Conformance(t, func() game.State { return New() }, 20)
}

func TestNew(t *testing.T) {
	s := New()

	blacks, whites := s.Count()
	require.Equal(t, 2, blacks)
	require.Equal(t, 2, whites)
	require.Equal(t, game.First, s.Player())
	require.Equal(t, []game.Move{
		Move{Row: 2, Col: 4},
		Move{Row: 3, Col: 5},
		Move{Row: 4, Col: 2},
		Move{Row: 5, Col: 3},
	}, s.Moves())
}

func TestPlay(t *testing.T) {
	t.Run("flipping a line", func(t *testing.T) {
		s := New()
		s.Play(Move{Row: 2, Col: 4})

		blacks, whites := s.Count()
		require.Equal(t, 4, blacks)
		require.Equal(t, 1, whites)
		require.Equal(t, black, s.board[3][4])
		require.Equal(t, game.Second, s.Player())
	})

	t.Run("flipping several directions", func(t *testing.T) {
		s := &State{turn: black}
		s.board[0][0] = black
		s.board[0][2] = black
		s.board[2][2] = black
		s.board[0][1] = white
		s.board[1][1] = white
		s.board[1][2] = white
		s.board[1][0] = white
		s.board[2][1] = white

		require.Contains(t, s.Moves(), Move{Row: 2, Col: 0})
		s.Play(Move{Row: 2, Col: 0})

		require.Equal(t, black, s.board[1][0], "Vertical flipped")
		require.Equal(t, black, s.board[1][1], "Diagonal flipped")
		require.Equal(t, black, s.board[2][1], "Horizontal flipped")
		require.Equal(t, white, s.board[0][1], "Unrelated disc kept")
		require.Equal(t, white, s.board[1][2], "Unrelated disc kept")
	})

	t.Run("no flip beyond an empty square", func(t *testing.T) {
		s := &State{turn: black}
		s.board[0][1] = white
		s.board[0][3] = black
		s.board[3][3] = white
		s.board[4][3] = black

		require.NotContains(t, s.Moves(), Move{Row: 0, Col: 0}, "Gap at col 2 breaks the line")
		require.Contains(t, s.Moves(), Move{Row: 2, Col: 3})
	})
}

func TestWinner(t *testing.T) {
	t.Run("in progress", func(t *testing.T) {
		require.Equal(t, game.Undecided, New().Winner())
	})

	t.Run("more discs wins when the side to move is stuck", func(t *testing.T) {
		s := &State{turn: white}
		s.board[0][0] = black
		s.board[0][1] = black
		s.board[7][7] = white

		require.Empty(t, s.Moves())
		require.Equal(t, game.First, s.Winner())
	})

	t.Run("no pass: stuck side ends the game even if the other could move", func(t *testing.T) {
		s := &State{turn: white}
		s.board[0][0] = black
		s.board[0][1] = white
		s.board[5][5] = white

		require.Empty(t, s.Moves(), "White has no placement")
		require.Equal(t, game.Second, s.Winner())
	})

	t.Run("equal discs is a draw", func(t *testing.T) {
		s := &State{turn: black}
		s.board[0][0] = black
		s.board[7][7] = white

		require.Equal(t, game.Draw, s.Winner())
	})
}

func TestString(t *testing.T) {
	require.Equal(t, "e6", Move{Row: 2, Col: 4}.String())
	require.Contains(t, New().String(), "5 |   |   |   | X | O |")
}
