package engine

import (
	"fmt"
	"time"

	"hybrid/experiments/metrics"
	"hybrid/game"
	"hybrid/player"
	"hybrid/utils"

	"github.com/rs/zerolog/log"
)

// Seat is an agent together with the label its wins are tallied under
type Seat struct {
	Label string
	Agent player.Agent
}

// Local plays two in-process agents against each other on one state. The
// first seat moves for game.First.
type Local struct {
	State game.State
	Seats [2]Seat
}

func LocalEngine(state game.State, first, second Seat) *Local {
	if first.Agent == nil || second.Agent == nil {
		panic("need two agents")
	}
	return &Local{
		State: state,
		Seats: [2]Seat{first, second},
	}
}

// Run executes the entire game loop until the game is over
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	log.Debug().Msgf("%s is starting", e.Seats[0].Label)

	gameMetric := metrics.GameMetric{
		StartingAgent: e.Seats[0].Label,
		StartTime:     time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	for step := 1; step <= MaxMoves; step++ {
		moves := e.State.Moves()
		if len(moves) == 0 {
			break
		}

		seat := e.seat(e.State.Player())
		move, searchMetric, err := seat.Agent.FindMove(e.State)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("%s failed to move at step %d: %w", seat.Label, step, err)
		}
		if utils.FindIndex(moves, move) < 0 {
			return "", gameMetric, moveMetrics, fmt.Errorf("%w %v by %s at step %d", ErrIllegalMove, move, seat.Label, step)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       seat.Label,
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		e.State.Play(move)
	}

	winner := e.winner()
	if e.State.Winner() == game.Undecided {
		log.Warn().Msgf("stopped after %d moves without a result", MaxMoves)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return winner, gameMetric, moveMetrics, nil
}

func (e *Local) seat(p game.Player) Seat {
	if p == game.First {
		return e.Seats[0]
	}
	return e.Seats[1]
}

func (e *Local) winner() string {
	switch e.State.Winner() {
	case game.First:
		return e.Seats[0].Label
	case game.Second:
		return e.Seats[1].Label
	default:
		return Draw
	}
}
