package searcher

import (
	"math"

	"hybrid/game"
	"hybrid/minimax"

	"golang.org/x/exp/rand"
)

// node is a position reached from the root by a sequence of moves. Its
// statistics and terminal value are kept from the point of view of the
// player who moved into it, i.e. state.Opponent().
type node struct {
	state    game.State
	move     game.Move // nil at the root
	parent   *node     // nil at the root
	children []*node
	expanded bool

	visits  int
	samples []float64

	// A terminal node is solved: value is +Inf for a forced win of the
	// player who moved into it, -Inf for a forced loss
	terminal bool
	value    float64

	minimaxTested bool
	solution      game.Player // Result of the single minimax attempt
}

func newNode(parent *node, move game.Move, state game.State) *node {
	return &node{
		state:  state,
		move:   move,
		parent: parent,
	}
}

// weight scores the node for its parent's selection
func (n *node) weight(c float64) float64 {
	if n.visits == 0 {
		return math.Inf(1)
	}
	if n.terminal {
		return n.value
	}
	if n.parent == nil {
		panic("cannot weigh the root node")
	}
	return newPolicy(c, n.parent.visits).evaluate(n.samples, n.visits)
}

// selectChild returns the unsolved child with max weight, or nil when every
// child is solved or the node is not expanded
func (n *node) selectChild(c float64) *node {
	var best *node
	bestWeight := math.Inf(-1)
	for _, child := range n.children {
		if child.terminal {
			continue
		}
		if w := child.weight(c); best == nil || w > bestWeight {
			best, bestWeight = child, w
		}
	}
	return best
}

// expand creates one child per legal move, once, and returns a random new
// child. A node without legal moves, or one expanded earlier, returns itself.
func (n *node) expand(r *rand.Rand) *node {
	if n.expanded {
		return n
	}
	n.expanded = true

	moves := n.state.Moves()
	n.children = make([]*node, 0, len(moves))
	for _, move := range moves {
		child := n.state.Copy()
		child.Play(move)
		n.children = append(n.children, newNode(n, move, child))
	}

	if len(n.children) == 0 {
		return n
	}
	return n.children[r.Intn(len(n.children))]
}

// simulate solves a finished node and plays a uniformly random game from the
// node's position, returning its winner
func (n *node) simulate(r *rand.Rand) game.Player {
	if winner := n.state.Winner(); winner.IsDecisive() {
		n.declareTerminal(winner)
		return winner
	}

	state := n.state.Copy()
	moves := state.Moves()
	for len(moves) > 0 {
		state.Play(moves[r.Intn(len(moves))])
		moves = state.Moves()
	}
	return state.Winner()
}

func (n *node) declareTerminal(winner game.Player) {
	n.terminal = true
	if winner == n.state.Player() {
		n.value = math.Inf(-1)
	} else {
		n.value = math.Inf(1)
	}
}

// solve runs minimax on the node at most once. A decisive result solves the
// node and its winner is returned; otherwise game.Undecided.
func (n *node) solve(depth int) game.Player {
	if n.minimaxTested {
		return n.solution
	}
	n.minimaxTested = true

	result := minimax.Search(n.state, depth)
	switch {
	case result > 0:
		n.solution = n.state.Player()
	case result < 0:
		n.solution = n.state.Opponent()
	default:
		return game.Undecided
	}
	n.declareTerminal(n.solution)
	return n.solution
}

// backup records one outcome on the node and returns its parent. A node
// becomes solved when all of its children are lost for their movers, or when
// any child is won.
func (n *node) backup(winner game.Player) *node {
	n.visits++
	if n.terminal {
		return n.parent
	}

	// A draw counts in favour of the player who moved into the node
	if winner != n.state.Player() {
		if n.allChildrenLost() {
			n.solveAs(math.Inf(1))
		} else {
			n.samples = append(n.samples, WIN)
		}
	} else {
		if n.anyChildWon() {
			n.solveAs(math.Inf(-1))
		} else {
			n.samples = append(n.samples, LOSS)
		}
	}
	return n.parent
}

// backupWithMinimax is backup that, coming up from a solved child while only
// some of its children are lost, tries to solve the node with minimax before
// recording the outcome. solve runs the search on the node.
func (n *node) backupWithMinimax(winner game.Player, fromSolved bool, solve func(*node) game.Player) *node {
	n.visits++
	if n.terminal {
		return n.parent
	}

	if winner != n.state.Player() {
		switch {
		case n.allChildrenLost():
			n.solveAs(math.Inf(1))
		case fromSolved && n.anyChildLost():
			if solve(n).IsDecisive() {
				return n.parent
			}
			n.samples = append(n.samples, WIN)
		default:
			n.samples = append(n.samples, WIN)
		}
	} else {
		if n.anyChildWon() {
			n.solveAs(math.Inf(-1))
		} else {
			n.samples = append(n.samples, LOSS)
		}
	}
	return n.parent
}

func (n *node) solveAs(value float64) {
	n.terminal = true
	n.value = value
}

func (n *node) allChildrenLost() bool {
	if len(n.children) == 0 {
		return false
	}
	for _, child := range n.children {
		if !child.lost() {
			return false
		}
	}
	return true
}

func (n *node) anyChildLost() bool {
	for _, child := range n.children {
		if child.lost() {
			return true
		}
	}
	return false
}

func (n *node) anyChildWon() bool {
	for _, child := range n.children {
		if child.terminal && math.IsInf(child.value, 1) {
			return true
		}
	}
	return false
}

func (n *node) lost() bool {
	return n.terminal && math.IsInf(n.value, -1)
}

// bestMove returns the move to the child with max weight
func (n *node) bestMove(c float64) game.Move {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	best := n.children[0]
	bestWeight := best.weight(c)
	for _, child := range n.children[1:] {
		if w := child.weight(c); w > bestWeight {
			best, bestWeight = child, w
		}
	}
	return best.move
}
