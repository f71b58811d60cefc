package games

import (
	"errors"
	"fmt"

	"hybrid/game"
	"hybrid/game/connect4"
	"hybrid/game/lion"
	"hybrid/game/othello"
)

var ErrUnknownGame = errors.New("unknown game")

const (
	Othello      = "othello"
	Connect4     = "connect4"
	CatchTheLion = "lion"
)

// Creator returns a fresh starting position
type Creator func() game.State

var creators = map[string]Creator{
	Othello:      func() game.State { return othello.New() },
	Connect4:     func() game.State { return connect4.New() },
	CatchTheLion: func() game.State { return lion.New() },
}

// Lookup returns the creator of a game by name
func Lookup(name string) (Creator, error) {
	create, ok := creators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return create, nil
}

// New returns the starting position of a game by name
func New(name string) (game.State, error) {
	create, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return create(), nil
}
