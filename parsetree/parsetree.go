// Package parsetree defines the recursive command tree the parser
// hands to the interpreter: a command names its kind, an optional
// entity to act on, and an optional spatial location clause. Values
// of this package are owned by the caller and never mutated by the
// interpreter.
package parsetree

import "github.com/mictra/shrdlite-course-project/physics"

// Kind is the verb of a command.
type Kind string

const (
	Take Kind = "take"
	Put  Kind = "put"
	Move Kind = "move"
)

// Primitive is a leaf object description. A zero-value field means
// that attribute is unspecified and matches anything; Form may also
// be the explicit wildcard "anyform".
type Primitive struct {
	Form  string
	Size  string
	Color string
}

// Location pairs a spatial relation with the entity it is relative
// to: "beside the red box" is Location{Relation: physics.Beside,
// Entity: <the red box>}.
type Location struct {
	Relation physics.Relation
	Entity   *Entity
}

// Relative is a compound entity: some inner entity constrained by a
// relative clause, e.g. "the ball beside the red box" is Relative{
// Inner: <the ball>, Location: {beside, <the red box>}}.
type Relative struct {
	Inner    *Entity
	Location Location
}

// Entity is a tagged variant: exactly one of Primitive or Relative is
// set. This mirrors the grammar directly instead of threading a
// pointer graph through an interface, since parses are finite,
// acyclic trees owned outright by the caller.
type Entity struct {
	Primitive *Primitive
	Relative  *Relative
}

// IsFloor reports whether e is the bare floor reference, with no
// relative clause of its own.
func (e *Entity) IsFloor() bool {
	return e != nil && e.Primitive != nil && e.Primitive.Form == "floor"
}

// Command is one parsed instruction: its kind, the entity it acts on
// (nil for put, which acts on whatever is currently held), and the
// spatial location clause (nil for take).
type Command struct {
	Kind     Kind
	Entity   *Entity
	Location *Location
}
