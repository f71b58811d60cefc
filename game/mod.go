package game

// Player identifies a side of a two-player game. The same identifiers are
// used for the side to move and for the winner of a finished game.
type Player string

const (
	First  Player = "X" // Moves first
	Second Player = "O"

	Draw      Player = "draw" // Game over without a winner
	Undecided Player = ""     // Game still in progress
)

// Opponent returns the other side of a two-player game
func Opponent(p Player) Player {
	if p == First {
		return Second
	}
	return First
}

// IsDecisive reports whether the outcome names an actual winning side
func (p Player) IsDecisive() bool {
	return p == First || p == Second
}

// Move is opaque to the searcher. Concrete games use comparable value types
// so moves can be compared with == and used as map keys.
type Move interface {
	String() string
}

// State is a mutable game position. Play mutates the receiver in place and
// switches the side to move; Copy returns a clone that shares no mutable
// state with the original.
type State interface {
	Copy() State
	// Moves returns the legal moves of the side to move. It is empty iff the
	// game is over, i.e. iff Winner() != Undecided.
	Moves() []Move
	Play(Move)
	Winner() Player
	// Player returns the side to move in this exact position
	Player() Player
	// Opponent returns the side that moved into this position
	Opponent() Player
}
