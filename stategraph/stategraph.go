// Package stategraph defines the implicit search graph the planner
// explores: nodes are world snapshots, edges are the four primitive
// arm actions. Successor generation never aliases a parent node's
// stack storage.
package stategraph

import (
	"strconv"
	"strings"

	"github.com/mictra/shrdlite-course-project/physics"
	"github.com/mictra/shrdlite-course-project/world"
)

// Action records how a node was reached. It is reconstruction
// metadata only: two nodes with equal (Arm, Holding, Stacks) are
// equal regardless of how each was reached.
type Action int

const (
	None Action = iota
	Pick
	Drop
	Left
	Right
)

// Code returns the one-letter action string the downstream world
// runtime expects, or "" for None.
func (a Action) Code() string {
	switch a {
	case Pick:
		return "p"
	case Drop:
		return "d"
	case Left:
		return "l"
	case Right:
		return "r"
	default:
		return ""
	}
}

// Node is one world snapshot in the search graph.
type Node struct {
	Arm        int
	Holding    string
	Stacks     [][]string
	LastAction Action
}

// FromWorld builds the start node for a world snapshot.
func FromWorld(w world.State) Node {
	return Node{Arm: w.Arm, Holding: w.Holding, Stacks: w.Clone().Stacks, LastAction: None}
}

// Equal reports whether n and o describe the same world snapshot,
// ignoring LastAction.
func (n Node) Equal(o Node) bool {
	if n.Arm != o.Arm || n.Holding != o.Holding || len(n.Stacks) != len(o.Stacks) {
		return false
	}
	for i := range n.Stacks {
		if len(n.Stacks[i]) != len(o.Stacks[i]) {
			return false
		}
		for j := range n.Stacks[i] {
			if n.Stacks[i][j] != o.Stacks[i][j] {
				return false
			}
		}
	}
	return true
}

// Key returns a canonical, structurally unambiguous encoding of
// (Arm, Holding, Stacks) for use as a closed-set map key. It uses
// control characters as column and id separators rather than naive
// concatenation, so ids containing ordinary delimiter characters
// (commas, pipes, whitespace) cannot collide.
func (n Node) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(n.Arm))
	b.WriteByte(0x1f)
	b.WriteString(n.Holding)
	for _, col := range n.Stacks {
		b.WriteByte(0x1e)
		for _, id := range col {
			b.WriteString(id)
			b.WriteByte(0x1f)
		}
	}
	return b.String()
}

func (n Node) clone() Node {
	stacks := make([][]string, len(n.Stacks))
	for i, col := range n.Stacks {
		stacks[i] = append([]string(nil), col...)
	}
	return Node{Arm: n.Arm, Holding: n.Holding, Stacks: stacks, LastAction: None}
}

// Edge is one successor together with its transition cost.
type Edge struct {
	To   Node
	Cost float64
}

// Successors generates n's successors in the fixed order pick,
// right, left, drop, so that enumeration is deterministic. objects
// is the world's immutable attribute table, needed to evaluate
// whether a drop is physically valid.
func Successors(n Node, objects map[string]world.Attributes) []Edge {
	var edges []Edge
	if e, ok := pick(n); ok {
		edges = append(edges, e)
	}
	if e, ok := move(n, +1); ok {
		edges = append(edges, e)
	}
	if e, ok := move(n, -1); ok {
		edges = append(edges, e)
	}
	if e, ok := drop(n, objects); ok {
		edges = append(edges, e)
	}
	return edges
}

func pick(n Node) (Edge, bool) {
	if n.Holding != world.None {
		return Edge{}, false
	}
	col := n.Stacks[n.Arm]
	if len(col) == 0 {
		return Edge{}, false
	}
	next := n.clone()
	top := next.Stacks[next.Arm][len(next.Stacks[next.Arm])-1]
	next.Stacks[next.Arm] = next.Stacks[next.Arm][:len(next.Stacks[next.Arm])-1]
	next.Holding = top
	next.LastAction = Pick
	return Edge{To: next, Cost: 1}, true
}

func drop(n Node, objects map[string]world.Attributes) (Edge, bool) {
	if n.Holding == world.None {
		return Edge{}, false
	}
	col := n.Stacks[n.Arm]
	top := world.FloorID
	if len(col) > 0 {
		top = col[len(col)-1]
	}
	if !physics.IsValidGoal(objects, physics.Inside, n.Holding, top) &&
		!physics.IsValidGoal(objects, physics.OnTop, n.Holding, top) {
		return Edge{}, false
	}
	next := n.clone()
	next.Stacks[next.Arm] = append(next.Stacks[next.Arm], n.Holding)
	next.Holding = world.None
	next.LastAction = Drop
	return Edge{To: next, Cost: 1}, true
}

// move shifts the arm by delta (+1 for right, -1 for left) if the
// result stays in bounds.
func move(n Node, delta int) (Edge, bool) {
	target := n.Arm + delta
	if target < 0 || target >= len(n.Stacks) {
		return Edge{}, false
	}
	next := n.clone()
	next.Arm = target
	if delta > 0 {
		next.LastAction = Right
	} else {
		next.LastAction = Left
	}
	return Edge{To: next, Cost: 1}, true
}
