// Package store keeps experiment tallies in Redis so that series played by
// separate processes add up to one result
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var ErrExperimentNotFound = errors.New("experiment not found")

const keyPrefix = "experiment:"

type Tally struct {
	logger zerolog.Logger
	client *redis.Client
}

// Connect opens a tally on the Redis server at addr
func Connect(ctx context.Context, addr string, logger zerolog.Logger) (*Tally, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewTally(client, logger), nil
}

func NewTally(client *redis.Client, logger zerolog.Logger) *Tally {
	return &Tally{logger: logger, client: client}
}

// Add counts one game of experiment won by label, or drawn when label is "Draw"
func (that *Tally) Add(ctx context.Context, experiment, label string) error {
	count, err := that.client.HIncrBy(ctx, keyPrefix+experiment, label, 1).Result()
	if err != nil {
		return fmt.Errorf("failed to add %s to %s: %w", label, experiment, err)
	}
	that.logger.Debug().Str("experiment", experiment).Str("label", label).Int64("count", count).Msg("game tallied")
	return nil
}

// Get returns the outcome counts of experiment
func (that *Tally) Get(ctx context.Context, experiment string) (map[string]int, error) {
	fields, err := that.client.HGetAll(ctx, keyPrefix+experiment).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", experiment, err)
	}
	if len(fields) == 0 {
		return nil, ErrExperimentNotFound
	}

	tally := make(map[string]int, len(fields))
	for label, value := range fields {
		count, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid count for %s in %s: %w", label, experiment, err)
		}
		tally[label] = count
	}
	return tally, nil
}

// Reset forgets every outcome of experiment
func (that *Tally) Reset(ctx context.Context, experiment string) error {
	if err := that.client.Del(ctx, keyPrefix+experiment).Err(); err != nil {
		return fmt.Errorf("failed to reset %s: %w", experiment, err)
	}
	that.logger.Info().Str("experiment", experiment).Msg("tally reset")
	return nil
}

func (that *Tally) Close() error {
	return that.client.Close()
}
