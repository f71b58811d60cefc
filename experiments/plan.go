package experiments

import (
	"fmt"
	"strconv"
	"time"

	"hybrid/experiments/metrics"
	"hybrid/games"
)

const planExploration = 0.7

var (
	othelloVisits = []int{0, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000}
	lionVisits    = []int{0, 1, 2, 5, 10, 20, 50, 100}
	budgets       = []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, time.Second, 2500 * time.Millisecond, 5 * time.Second}
)

// DefaultPlan pits plain MCTS against each hybrid on Othello and Catch the
// Lion, sweeping minimax depth, visit threshold and time budget. Every series
// plays n games.
func DefaultPlan(n int) []Experiment {
	var plan []Experiment
	plan = append(plan, othelloPlan(n)...)
	plan = append(plan, lionPlan(n)...)
	return plan
}

func othelloPlan(n int) []Experiment {
	var plan []Experiment
	for depth := 1; depth <= 4; depth++ {
		plan = append(plan, matchup("Othello", games.Othello, n, hybrid("mcts-mr", time.Second, depth, 0), ""))
	}
	for depth := 1; depth <= 6; depth++ {
		plan = append(plan, matchup("Othello", games.Othello, n, hybrid("mcts-mb", time.Second, depth, 0), ""))
	}
	for _, visits := range othelloVisits {
		for _, depth := range []int{2, 4} {
			plan = append(plan, matchup("Othello", games.Othello, n, hybrid("mcts-ms", time.Second, depth, visits), ""))
		}
	}
	for _, budget := range budgets {
		for _, config := range []metrics.AgentConfig{
			hybrid("mcts-mr", budget, 1, 0),
			hybrid("mcts-ms", budget, 2, 50),
			hybrid("mcts-mb", budget, 2, 0),
		} {
			plan = append(plan, matchup("Othello", games.Othello, n, config, withDuration(budget)))
		}
	}
	return plan
}

func lionPlan(n int) []Experiment {
	var plan []Experiment
	for depth := 1; depth <= 4; depth++ {
		plan = append(plan, matchup("CatchTheLion", games.CatchTheLion, n, hybrid("mcts-mr", time.Second, depth, 0), ""))
	}
	for depth := 1; depth <= 6; depth++ {
		plan = append(plan, matchup("CatchTheLion", games.CatchTheLion, n, hybrid("mcts-mb", time.Second, depth, 0), ""))
	}
	for _, visits := range lionVisits {
		for _, depth := range []int{2, 4, 6} {
			plan = append(plan, matchup("CatchTheLion", games.CatchTheLion, n, hybrid("mcts-ms", time.Second, depth, visits), ""))
		}
	}
	for _, budget := range budgets {
		for _, config := range []metrics.AgentConfig{
			hybrid("mcts-mr", budget, 1, 0),
			hybrid("mcts-ms", budget, 4, 2),
			hybrid("mcts-mb", budget, 4, 0),
		} {
			plan = append(plan, matchup("CatchTheLion", games.CatchTheLion, n, config, withDuration(budget)))
		}
	}
	return plan
}

// matchup names the series after the challenger, e.g.
// "Othello - mcts vs mcts-ms-2-visits-50 with duration 1"
func matchup(title, game string, n int, challenger metrics.AgentConfig, suffix string) Experiment {
	baseline := metrics.NewAgentConfig("mcts")
	baseline.ID = 1
	baseline.Duration = challenger.Duration
	baseline.C = planExploration
	challenger.ID = 2

	return Experiment{
		Name:   fmt.Sprintf("%s - mcts vs %s%s", title, describe(challenger), suffix),
		Game:   game,
		Games:  n,
		Agents: [2]metrics.AgentConfig{baseline, challenger},
	}
}

func hybrid(name string, budget time.Duration, depth, visits int) metrics.AgentConfig {
	config := metrics.NewAgentConfig(name)
	config.Duration = budget
	config.C = planExploration
	config.Depth = depth
	if name == "mcts-ms" {
		config.Visits = visits
	}
	return config
}

func describe(config metrics.AgentConfig) string {
	if config.Name == "mcts-ms" {
		return fmt.Sprintf("%s-%d-visits-%d", config.Name, config.Depth, config.Visits)
	}
	return fmt.Sprintf("%s-%d", config.Name, config.Depth)
}

// withDuration renders the budget in seconds, e.g. " with duration 0.25"
func withDuration(budget time.Duration) string {
	return " with duration " + strconv.FormatFloat(budget.Seconds(), 'g', -1, 64)
}
