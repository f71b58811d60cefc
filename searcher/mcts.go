package searcher

import (
	"fmt"
	"time"

	"hybrid/experiments/metrics"
	"hybrid/game"
	"hybrid/minimax"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS builds a fresh tree for every move decision and discards it after.
// It is not safe for concurrent use; run one MCTS per goroutine.
type MCTS struct {
	variant     Variant
	duration    time.Duration
	episodes    int
	exploration float64
	depth       int
	visits      int
	rand        *rand.Rand
	metrics     metrics.Collector
}

func WithVariant(variant Variant) Option {
	return func(m *MCTS) {
		m.variant = variant
	}
}

// WithDuration sets the wall-clock budget per move. The clock is checked
// after each full iteration, so a zero budget still runs one iteration.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration >= 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes runs a fixed number of iterations instead of a timed search
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.exploration = c
	}
}

// WithDepth sets the minimax ply bound of the minimax variants
func WithDepth(depth int) Option {
	return func(m *MCTS) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

// WithVisits sets the visit count at which MinimaxSelection stops descending
func WithVisits(visits int) Option {
	return func(m *MCTS) {
		if visits >= 0 {
			m.visits = visits
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rand = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		variant:     Plain,
		duration:    time.Second,
		exploration: DefaultExploration,
		depth:       2,
		visits:      100,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

func (m *MCTS) Variant() Variant {
	return m.variant
}

func (m *MCTS) FindNextMove(state game.State) (game.Move, error) {
	move, _, err := m.Simulate(state)
	return move, err
}

// Simulate searches from state until the budget is spent and returns the
// move to the root child with max weight
func (m *MCTS) Simulate(state game.State) (game.Move, metrics.SearchMetric, error) {
	if !m.variant.valid() {
		return nil, metrics.SearchMetric{}, fmt.Errorf("%w: %s", ErrUnknownVariant, m.variant)
	}
	if len(state.Moves()) == 0 {
		return nil, metrics.SearchMetric{}, ErrNoMoves
	}

	root := newNode(nil, nil, state.Copy())
	m.metrics.Start(m.variant.String(), m.duration)

	start := time.Now()
	for episode := 1; ; episode++ {
		m.iterate(root)
		m.metrics.AddEpisode()
		if m.done(start, episode) {
			break
		}
	}
	m.metrics.SetRootSolved(root.terminal)
	metric := m.metrics.Complete()

	move, err := m.decide(root)
	if err != nil {
		return nil, metric, err
	}

	log.Debug().
		Str("variant", m.variant.String()).
		Int("visits", root.visits).
		Bool("solved", root.terminal).
		Stringer("move", move).
		Msg("search complete")
	return move, metric, nil
}

func (m *MCTS) done(start time.Time, episode int) bool {
	if m.episodes > 0 {
		return episode >= m.episodes
	}
	return time.Since(start) >= m.duration
}

// decide picks the root child with max weight. A root solved by minimax
// before it was ever expanded has no children; its move comes from minimax.
func (m *MCTS) decide(root *node) (game.Move, error) {
	if len(root.children) > 0 {
		return root.bestMove(m.exploration), nil
	}
	move, _, err := minimax.BestMove(root.state, m.depth)
	if err != nil {
		return nil, ErrNoMoves
	}
	return move, nil
}

// iterate runs one select, expand, evaluate and backpropagate pass
func (m *MCTS) iterate(root *node) {
	switch m.variant {
	case Plain:
		leaf := selectLeaf(root, m.exploration, -1).expand(m.rand)
		backup(leaf, m.rollout(leaf))

	case MinimaxRollout:
		leaf := selectLeaf(root, m.exploration, -1).expand(m.rand)
		winner := m.solve(leaf)
		if !winner.IsDecisive() {
			winner = m.rollout(leaf)
		}
		backup(leaf, winner)

	case MinimaxSelection:
		leaf := selectLeaf(root, m.exploration, m.visits)
		if leaf.visits == m.visits {
			if winner := m.solve(leaf); winner.IsDecisive() {
				backup(leaf, winner)
				return
			}
		}
		leaf = leaf.expand(m.rand)
		backup(leaf, m.rollout(leaf))

	case MinimaxBackup:
		leaf := selectLeaf(root, m.exploration, -1).expand(m.rand)
		m.backupWithMinimax(leaf, m.rollout(leaf))

	default:
		panic("unexpected search variant " + m.variant.String())
	}
}

func (m *MCTS) rollout(leaf *node) game.Player {
	m.metrics.AddFullPlayout()
	return leaf.simulate(m.rand)
}

func (m *MCTS) solve(leaf *node) game.Player {
	tested := leaf.minimaxTested
	winner := leaf.solve(m.depth)
	if !tested {
		m.metrics.AddMinimax(winner.IsDecisive())
	}
	return winner
}

// selectLeaf descends through unsolved children with max weight until a node
// has none left. A non-negative threshold also stops the descent at the
// first node whose visit count equals it.
func selectLeaf(root *node, c float64, threshold int) *node {
	n := root
	for {
		child := n.selectChild(c)
		if child == nil {
			return n
		}
		n = child
		if n.visits == threshold {
			return n
		}
	}
}

func backup(leaf *node, winner game.Player) {
	node := leaf
	for node != nil {
		parent := node.backup(winner)
		node = parent
	}
}

func (m *MCTS) backupWithMinimax(leaf *node, winner game.Player) {
	node := leaf
	fromSolved := false
	for node != nil {
		parent := node.backupWithMinimax(winner, fromSolved, m.solve)
		fromSolved = node.terminal
		node = parent
	}
}
