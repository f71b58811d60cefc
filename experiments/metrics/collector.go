package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Variant       string
	Budget        time.Duration
	Duration      time.Duration
	Episodes      int
	FullPlayouts  int
	MinimaxCalls  int
	MinimaxSolved int
	RootSolved    bool
}

type MoveMetric struct {
	Step   int
	Player string // Agent name
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingAgent string
	Winner        string // Agent name or Draw
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

type Collector interface {
	Start(variant string, budget time.Duration)
	AddEpisode()
	AddFullPlayout()
	AddMinimax(solved bool)
	SetRootSolved(value bool)
	Complete() SearchMetric
}

type collector struct {
	variant       string
	budget        time.Duration
	startTime     time.Time
	episodes      atomic.Int32
	fullPlayouts  atomic.Int32
	minimaxCalls  atomic.Int32
	minimaxSolved atomic.Int32
	rootSolved    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(variant string, budget time.Duration) {
	m.startTime = time.Now()
	m.variant = variant
	m.budget = budget
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.minimaxCalls.Store(0)
	m.minimaxSolved.Store(0)
	m.rootSolved.Store(false)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddMinimax(solved bool) {
	m.minimaxCalls.Add(1)
	if solved {
		m.minimaxSolved.Add(1)
	}
}

func (m *collector) SetRootSolved(value bool) {
	m.rootSolved.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Variant:       m.variant,
		Budget:        m.budget,
		Duration:      time.Since(m.startTime),
		Episodes:      int(m.episodes.Load()),
		FullPlayouts:  int(m.fullPlayouts.Load()),
		MinimaxCalls:  int(m.minimaxCalls.Load()),
		MinimaxSolved: int(m.minimaxSolved.Load()),
		RootSolved:    m.rootSolved.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(variant string, budget time.Duration) {}
func (m *dummyCollector) AddEpisode()                                {}
func (m *dummyCollector) AddFullPlayout()                            {}
func (m *dummyCollector) AddMinimax(solved bool)                     {}
func (m *dummyCollector) SetRootSolved(value bool)                   {}
func (m *dummyCollector) Complete() SearchMetric                     { return SearchMetric{} }
