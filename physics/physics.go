// Package physics implements the pure spatial predicates and
// goal-validity rules of the blocks world. Every function here is a
// pure function of (stacks, objects); none mutates its arguments.
package physics

import (
	"fmt"

	"github.com/mictra/shrdlite-course-project/world"
)

// Relation names a spatial relation between two objects, or the
// unary "holding" relation used by DNF literals emitted from a take
// command. The unary case is not dispatched by SatisfiesRelation or
// IsValidGoal, both of which only ever see the seven binary relations
// below.
type Relation string

const (
	LeftOf  Relation = "leftof"
	RightOf Relation = "rightof"
	Beside  Relation = "beside"
	Inside  Relation = "inside"
	OnTop   Relation = "ontop"
	Above   Relation = "above"
	Under   Relation = "under"
)

// ColumnOf returns the column index containing id, or false if id is
// not present in any column (this includes the floor sentinel and
// any object currently held).
func ColumnOf(stacks [][]string, id string) (int, bool) {
	for col, stack := range stacks {
		for _, occupant := range stack {
			if occupant == id {
				return col, true
			}
		}
	}
	return 0, false
}

// HeightOf returns id's position within column col, bottom at 0, or
// false if id is not at that column.
func HeightOf(stacks [][]string, id string, col int) (int, bool) {
	if col < 0 || col >= len(stacks) {
		return 0, false
	}
	for pos, occupant := range stacks[col] {
		if occupant == id {
			return pos, true
		}
	}
	return 0, false
}

// AboveCount returns the number of objects stacked above id in its
// column, or 0 if id has no column (floor, or currently held).
func AboveCount(stacks [][]string, id string) int {
	col, ok := ColumnOf(stacks, id)
	if !ok {
		return 0
	}
	pos, _ := HeightOf(stacks, id, col)
	return len(stacks[col]) - pos - 1
}

func contains(targets []string, id string) bool {
	for _, t := range targets {
		if t == id {
			return true
		}
	}
	return false
}

// IsLeftOf holds iff any target's column is strictly right of col.
func IsLeftOf(stacks [][]string, targets []string, col int) bool {
	for _, t := range targets {
		if t == world.FloorID {
			continue
		}
		if tcol, ok := ColumnOf(stacks, t); ok && tcol > col {
			return true
		}
	}
	return false
}

// IsRightOf holds iff any target's column is strictly left of col.
func IsRightOf(stacks [][]string, targets []string, col int) bool {
	for _, t := range targets {
		if t == world.FloorID {
			continue
		}
		if tcol, ok := ColumnOf(stacks, t); ok && tcol < col {
			return true
		}
	}
	return false
}

// IsBeside holds iff any target lies in column col-1 or col+1.
func IsBeside(stacks [][]string, targets []string, col int) bool {
	for _, t := range targets {
		if t == world.FloorID {
			continue
		}
		if tcol, ok := ColumnOf(stacks, t); ok && (tcol == col-1 || tcol == col+1) {
			return true
		}
	}
	return false
}

// IsOnTop holds iff any target sits exactly at (col, pos). The floor
// sentinel is handled specially: targets == {floor} holds iff pos < 0,
// which callers reach by passing pos-1 for the candidate's own height.
func IsOnTop(stacks [][]string, targets []string, col, pos int) bool {
	if contains(targets, world.FloorID) {
		return pos < 0
	}
	for _, t := range targets {
		if tcol, ok := ColumnOf(stacks, t); ok {
			if tpos, ok := HeightOf(stacks, t, tcol); ok && tcol == col && tpos == pos {
				return true
			}
		}
	}
	return false
}

// IsInside holds iff any target sits exactly at (col, pos) and has
// form box. Never true for the floor.
func IsInside(stacks [][]string, objects map[string]world.Attributes, targets []string, col, pos int) bool {
	for _, t := range targets {
		if t == world.FloorID {
			continue
		}
		if objects[t].Form != world.Box {
			continue
		}
		if tcol, ok := ColumnOf(stacks, t); ok {
			if tpos, ok := HeightOf(stacks, t, tcol); ok && tcol == col && tpos == pos {
				return true
			}
		}
	}
	return false
}

// IsAbove holds iff any target lies in column col at a position
// strictly below pos. targets == {floor} always holds.
func IsAbove(stacks [][]string, targets []string, col, pos int) bool {
	if contains(targets, world.FloorID) {
		return true
	}
	for _, t := range targets {
		if tcol, ok := ColumnOf(stacks, t); ok {
			if tpos, ok := HeightOf(stacks, t, tcol); ok && tcol == col && tpos < pos {
				return true
			}
		}
	}
	return false
}

// IsUnder holds iff any target lies in column col at a position >=
// pos. Never true for the floor.
func IsUnder(stacks [][]string, targets []string, col, pos int) bool {
	for _, t := range targets {
		if t == world.FloorID {
			continue
		}
		if tcol, ok := ColumnOf(stacks, t); ok {
			if tpos, ok := HeightOf(stacks, t, tcol); ok && tcol == col && tpos >= pos {
				return true
			}
		}
	}
	return false
}

// SatisfiesRelation dispatches to the predicate matching relation,
// anchoring it at (col, pos) with the position offsets §4.2 defines
// for the relative-clause reading of each relation: inside and ontop
// look one below the anchor, above looks at the anchor itself, and
// under looks one above the anchor. The same dispatch serves both the
// interpreter's relative-clause resolution and the planner's goal
// predicate, per the shared-table note in the design.
func SatisfiesRelation(relation Relation, stacks [][]string, objects map[string]world.Attributes, col, pos int, targets []string) bool {
	switch relation {
	case LeftOf:
		return IsLeftOf(stacks, targets, col)
	case RightOf:
		return IsRightOf(stacks, targets, col)
	case Beside:
		return IsBeside(stacks, targets, col)
	case Inside:
		return IsInside(stacks, objects, targets, col, pos-1)
	case OnTop:
		return IsOnTop(stacks, targets, col, pos-1)
	case Above:
		return IsAbove(stacks, targets, col, pos)
	case Under:
		return IsUnder(stacks, targets, col, pos+1)
	default:
		return false
	}
}

// IsValidGoal reports whether the literal relation(a, b) can
// physically hold. See the design ledger for the resolution of the
// one place this departs from a literal reading of the rule text (the
// "ontop onto a box" restriction, dropped in favor of the worked
// example that requires it to be valid).
func IsValidGoal(objects map[string]world.Attributes, relation Relation, a, b string) bool {
	if a == b {
		return false
	}
	if a == world.FloorID {
		return false
	}
	attrA, ok := objects[a]
	if !ok {
		return false
	}
	if b == world.FloorID {
		return relation == OnTop || relation == Above
	}
	attrB, ok := objects[b]
	if !ok {
		return false
	}
	switch relation {
	case Inside:
		if attrA.Size == world.Large && attrB.Size == world.Small {
			return false
		}
		if attrB.Form != world.Box {
			return false
		}
		if isBoxLike(attrA.Form) && attrA.Size == attrB.Size {
			return false
		}
		return true
	case OnTop, Above:
		if attrB.Form == world.Ball {
			return false
		}
		if attrA.Size == world.Large && attrB.Size == world.Small {
			return false
		}
		if attrA.Form == world.Box && attrA.Size == world.Small && attrB.Size == world.Small &&
			(attrB.Form == world.Brick || attrB.Form == world.Pyramid) {
			return false
		}
		if attrA.Form == world.Box && attrA.Size == world.Large && attrB.Size == world.Large && attrB.Form == world.Pyramid {
			return false
		}
		if relation == OnTop && attrA.Form == world.Ball {
			return false
		}
		return true
	default:
		return true
	}
}

func isBoxLike(f world.Form) bool {
	return f == world.Pyramid || f == world.Plank || f == world.Box
}

// ValidateSupport checks every adjacent pair (below, above) in every
// column of stacks against the physical laws of this package: above
// must be a valid "ontop" or "inside" placement on below. It lives
// here rather than on world.State because it needs IsValidGoal, and
// physics already depends on world — a dependency the other way would
// cycle. Callers that want both the structural invariants of §3 and
// this physics check run world.Validate and ValidateSupport in turn.
func ValidateSupport(stacks [][]string, objects map[string]world.Attributes) error {
	for col, stack := range stacks {
		for pos := 1; pos < len(stack); pos++ {
			below, above := stack[pos-1], stack[pos]
			if !IsValidGoal(objects, OnTop, above, below) && !IsValidGoal(objects, Inside, above, below) {
				return fmt.Errorf("physics: %q cannot rest on %q in column %d", above, below, col)
			}
		}
	}
	return nil
}
