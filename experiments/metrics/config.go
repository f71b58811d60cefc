package metrics

import "time"

// AgentConfig describes one side of a matchup. Name is an agent name
// understood by player.New.
type AgentConfig struct {
	ID       int           `yaml:"id"`
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	Episodes int           `yaml:"episodes"` // Fixed iteration count instead of Duration when > 0
	C        float64       `yaml:"c"`
	Depth    int           `yaml:"depth"`
	Visits   int           `yaml:"visits"`
}

// NewAgentConfig returns a config for the named agent with the default
// search parameters
func NewAgentConfig(name string) AgentConfig {
	return AgentConfig{
		Name:     name,
		Duration: time.Second,
		C:        1.3,
		Depth:    2,
		Visits:   100,
	}
}

// Label names the agent in outcome tallies
func (c AgentConfig) Label() string {
	return c.Name
}
