package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"hybrid/config"
	"hybrid/experiments"
	"hybrid/experiments/metrics"
	"hybrid/experiments/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to the config file, empty to read the environment only")
	match := flag.String("match", "", "Only run experiments whose name contains this text")
	list := flag.Bool("list", false, "List the experiments and exit")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	initLogger(conf)

	plan, err := conf.Experiments()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid experiment plan")
	}
	plan = filter(plan, *match)

	if *list {
		for _, e := range plan {
			fmt.Println(e.Name)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, conf, plan); err != nil {
		log.Fatal().Err(err).Msg("experiments failed")
	}
}

func run(ctx context.Context, conf *config.Config, plan []experiments.Experiment) error {
	writer, err := metrics.NewWriter(conf.ResultsDir)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	options := []experiments.Option{
		experiments.WithWorkers(conf.Workers),
		experiments.WithWriter(writer),
	}

	if conf.Redis.Enabled {
		tally, err := store.Connect(ctx, conf.Redis.Addr, log.Logger)
		if err != nil {
			return err
		}
		defer tally.Close()
		options = append(options, experiments.WithTally(tally))
	}

	log.Info().Str("results", writer.Dir()).Msgf("running %d experiments", len(plan))
	_, err = experiments.NewRunner(options...).Run(ctx, plan)
	return err
}

func initLogger(conf *config.Config) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func filter(plan []experiments.Experiment, match string) []experiments.Experiment {
	if match == "" {
		return plan
	}
	var selected []experiments.Experiment
	for _, e := range plan {
		if strings.Contains(e.Name, match) {
			selected = append(selected, e)
		}
	}
	return selected
}
