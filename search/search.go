// Package search implements a generic best-first (A*) search over an
// implicit graph. It is deliberately independent of the blocks world:
// the planner supplies node type, successor function, goal test, and
// heuristic, and this package supplies the priority-queue mechanics
// and timeout handling.
package search

import (
	"container/heap"
	"context"
	"errors"
	"time"
)

// ErrNoPath means the frontier emptied without reaching a goal node.
var ErrNoPath = errors.New("search: no path to goal")

// ErrTimeout means ctx's deadline (or the caller's timeout) elapsed
// before a goal node was found.
var ErrTimeout = errors.New("search: timeout")

// Edge is one successor of a node, with the cost of the transition
// that reaches it.
type Edge[N any] struct {
	To   N
	Cost float64
}

// Graph is the caller-supplied description of the space to search.
type Graph[N any] struct {
	// Successors returns n's outgoing edges.
	Successors func(n N) []Edge[N]
	// Heuristic estimates the remaining cost from n to any goal. It
	// must be admissible for the result to be optimal.
	Heuristic func(n N) float64
	// IsGoal reports whether n satisfies the search's goal test.
	IsGoal func(n N) bool
	// Key returns a canonical string identifying n, used for the
	// closed and open-set membership tests. Two nodes with the same
	// key are treated as the same state.
	Key func(n N) string
}

// Result is a successful search outcome.
type Result[N any] struct {
	// Path is the sequence of nodes from start to goal, inclusive.
	Path []N
	// Cost is the total edge cost along Path.
	Cost float64
	// Expanded is the number of nodes popped off the frontier, for
	// diagnostics.
	Expanded int
}

type item[N any] struct {
	node     N
	g        float64
	f        float64
	path     []N
	index    int
}

type priorityQueue[N any] []*item[N]

func (pq priorityQueue[N]) Len() int            { return len(pq) }
func (pq priorityQueue[N]) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq priorityQueue[N]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue[N]) Push(x any) {
	it := x.(*item[N])
	it.index = len(*pq)
	*pq = append(*pq, it)
}
func (pq *priorityQueue[N]) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return it
}

// Search runs A* from start until IsGoal is satisfied, the frontier is
// exhausted (ErrNoPath), or ctx is done (ErrTimeout). The search body
// runs in its own goroutine and reports through a buffered channel of
// capacity one, so a caller that abandons the call via ctx never
// leaves the goroutine blocked trying to send.
func Search[N any](ctx context.Context, g Graph[N], start N) (Result[N], error) {
	type outcome struct {
		res Result[N]
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		res, err := run(g, start)
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return Result[N]{}, ErrTimeout
	case o := <-done:
		return o.res, o.err
	}
}

// SearchTimeout is a convenience wrapper around Search using a plain
// wall-clock budget instead of a caller-supplied context.
func SearchTimeout[N any](g Graph[N], start N, timeout time.Duration) (Result[N], error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return Search(ctx, g, start)
}

func run[N any](g Graph[N], start N) (Result[N], error) {
	startItem := &item[N]{node: start, g: 0, f: g.Heuristic(start), path: []N{start}}
	pq := &priorityQueue[N]{startItem}
	heap.Init(pq)

	best := make(map[string]float64)
	best[g.Key(start)] = 0

	expanded := 0
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*item[N])
		expanded++

		if g.IsGoal(cur.node) {
			return Result[N]{Path: cur.path, Cost: cur.g, Expanded: expanded}, nil
		}

		curKey := g.Key(cur.node)
		if known, ok := best[curKey]; ok && cur.g > known {
			continue
		}

		for _, edge := range g.Successors(cur.node) {
			tentative := cur.g + edge.Cost
			key := g.Key(edge.To)
			if known, ok := best[key]; ok && tentative >= known {
				continue
			}
			best[key] = tentative
			path := make([]N, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, edge.To)
			heap.Push(pq, &item[N]{
				node: edge.To,
				g:    tentative,
				f:    tentative + g.Heuristic(edge.To),
				path: path,
			})
		}
	}

	return Result[N]{}, ErrNoPath
}
