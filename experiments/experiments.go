package experiments

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"hybrid/engine"
	"hybrid/experiments/metrics"
	"hybrid/games"
	"hybrid/player"
	"hybrid/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidExperiment = errors.New("invalid experiment")

// Experiment is a series of games between two agents. Seats are shuffled
// before every game.
type Experiment struct {
	Name   string
	Game   string // Registered game name
	Games  int
	Agents [2]metrics.AgentConfig
}

func (e Experiment) validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidExperiment)
	}
	if e.Games <= 0 {
		return fmt.Errorf("%w: %s needs a positive number of games", ErrInvalidExperiment, e.Name)
	}
	if _, err := games.Lookup(e.Game); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidExperiment, e.Name, err)
	}
	for _, config := range e.Agents {
		if _, err := player.New(config); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidExperiment, e.Name, err)
		}
	}
	return nil
}

// Result maps outcome labels, an agent label or "Draw", to game counts
type Result struct {
	Experiment
	Tally       map[string]int
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Tally aggregates outcomes outside of the process, e.g. across machines
type Tally interface {
	Add(ctx context.Context, experiment, label string) error
}

type Option func(r *Runner)

// Runner plays independent series concurrently. Every series owns its
// agents, states and search trees.
type Runner struct {
	workers int
	seed    uint64
	writer  *metrics.Writer
	tally   Tally
}

func WithWorkers(workers int) Option {
	return func(r *Runner) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithWriter stores every finished series under the writer's directory
func WithWriter(writer *metrics.Writer) Option {
	return func(r *Runner) {
		r.writer = writer
	}
}

// WithTally reports every finished game to tally
func WithTally(tally Tally) Option {
	return func(r *Runner) {
		r.tally = tally
	}
}

func NewRunner(options ...Option) *Runner {
	r := &Runner{
		workers: runtime.NumCPU(),
		seed:    uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run plays every experiment and returns the results in the same order. The
// first failing series cancels the rest.
func (r *Runner) Run(ctx context.Context, experiments []Experiment) ([]Result, error) {
	for _, e := range experiments {
		if err := e.validate(); err != nil {
			return nil, err
		}
	}

	log.Info().Msgf("starting %d experiments on %d workers...", len(experiments), r.workers)

	results := make([]Result, len(experiments))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, e := range experiments {
		i, e := i, e
		seed := r.seed + uint64(i)
		g.Go(func() error {
			result, err := r.series(ctx, e, seed)
			if err != nil {
				return fmt.Errorf("experiment %s: %w", e.Name, err)
			}
			if r.writer != nil {
				if err := r.writer.WriteResult(e.Name, e.Agents[:], result.Tally, result.GameRecords, result.MoveRecords); err != nil {
					return fmt.Errorf("experiment %s: %w", e.Name, err)
				}
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %d experiments", len(experiments))
	return results, nil
}

// series plays e.Games games, shuffling the seats before each one
func (r *Runner) series(ctx context.Context, e Experiment, seed uint64) (Result, error) {
	log.Info().Msgf("starting %s", e.Name)

	rng := rand.New(rand.NewSource(seed))
	var seats [2]engine.Seat
	for i, config := range e.Agents {
		agent, err := player.NewSeeded(config, rng.Uint64())
		if err != nil {
			return Result{}, err
		}
		seats[i] = engine.Seat{Label: config.Label(), Agent: agent}
	}

	result := Result{Experiment: e, Tally: map[string]int{}}
	for i := 0; i < e.Games; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		rng.Shuffle(len(seats), func(a, b int) {
			seats[a], seats[b] = seats[b], seats[a]
		})

		state, err := games.New(e.Game)
		if err != nil {
			return Result{}, err
		}
		winner, gameMetric, moveMetrics, err := engine.LocalEngine(state, seats[0], seats[1]).Run()
		if err != nil {
			return Result{}, fmt.Errorf("game %d: %w", i+1, err)
		}

		result.Tally[winner]++
		result.GameRecords = append(result.GameRecords, metrics.GameRecord{
			ID:         i + 1,
			Agent1:     e.Agents[0].ID,
			Agent2:     e.Agents[1].ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			result.MoveRecords = append(result.MoveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}
		if r.tally != nil {
			if err := r.tally.Add(ctx, e.Name, winner); err != nil {
				return Result{}, err
			}
		}

		log.Debug().Msgf("%s game %d of %d won by %s", e.Name, i+1, e.Games, winner)
	}

	log.Info().Msgf("finished %s after %d games with result: %s", e.Name, utils.Sum(result.Tally), metrics.FormatTally(result.Tally))
	return result, nil
}
