package config

import (
	"fmt"
	"time"

	"hybrid/experiments"
	"hybrid/experiments/metrics"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string       `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	ResultsDir string       `yaml:"results-dir" env:"RESULTS_DIR" env-default:"results"`
	Workers    int          `yaml:"workers" env:"WORKERS" env-default:"0"` // 0 uses every CPU
	Games      int          `yaml:"games" env:"GAMES" env-default:"100"`   // Per experiment of the default plan
	Redis      Redis        `yaml:"redis"`
	Plan       []Experiment `yaml:"experiments"` // Replaces the default plan when set
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr    string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Experiment struct {
	Name   string                `yaml:"name"`
	Game   string                `yaml:"game"`
	Games  int                   `yaml:"games"`
	Agents []Agent `yaml:"agents"`
}

// Agent is one side of a configured matchup. Unset search parameters take
// the metrics.NewAgentConfig defaults.
type Agent struct {
	ID       int           `yaml:"id"`
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	Episodes int           `yaml:"episodes"`
	C        float64       `yaml:"c"`
	Depth    int           `yaml:"depth"`
	Visits   *int          `yaml:"visits"` // An explicit 0 is meaningful for mcts-ms
}

// MustLoad - load all configurations in config.yml file, then the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

// Load reads path, or only the environment when path is empty
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// Experiments returns the configured plan, or the default plan with Games
// games per series
func (c *Config) Experiments() ([]experiments.Experiment, error) {
	if len(c.Plan) == 0 {
		return experiments.DefaultPlan(c.Games), nil
	}

	plan := make([]experiments.Experiment, 0, len(c.Plan))
	for _, e := range c.Plan {
		if len(e.Agents) != 2 {
			return nil, fmt.Errorf("%w: %s needs exactly two agents", experiments.ErrInvalidExperiment, e.Name)
		}
		games := e.Games
		if games == 0 {
			games = c.Games
		}
		plan = append(plan, experiments.Experiment{
			Name:   e.Name,
			Game:   e.Game,
			Games:  games,
			Agents: [2]metrics.AgentConfig{e.Agents[0].config(), e.Agents[1].config()},
		})
	}
	return plan, nil
}

func (a Agent) config() metrics.AgentConfig {
	config := metrics.NewAgentConfig(a.Name)
	config.ID = a.ID
	if a.Duration != 0 || a.Episodes != 0 {
		config.Duration = a.Duration
		config.Episodes = a.Episodes
	}
	if a.C != 0 {
		config.C = a.C
	}
	if a.Depth != 0 {
		config.Depth = a.Depth
	}
	if a.Visits != nil {
		config.Visits = *a.Visits
	}
	return config
}
