// Package interpreter resolves parsed commands against a world
// snapshot into a goal expressed as a disjunctive-normal-form formula
// over spatial literals. It never mutates the parse tree or the
// world; every DNF it returns is freshly allocated.
package interpreter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mictra/shrdlite-course-project/coreerr"
	"github.com/mictra/shrdlite-course-project/parsetree"
	"github.com/mictra/shrdlite-course-project/physics"
	"github.com/mictra/shrdlite-course-project/telemetry"
	"github.com/mictra/shrdlite-course-project/world"
)

// Holding is the unary relation a "take" command emits: holding(x)
// is satisfied when x is the object currently grasped. It extends
// physics.Relation purely for the DNF literal's benefit; physics
// predicates never dispatch on it.
const Holding physics.Relation = "holding"

// Literal is a single polarity-tagged relation applied to object ids
// (or the floor sentinel).
type Literal struct {
	Polarity bool
	Relation physics.Relation
	Args     []string
}

func (l Literal) String() string {
	neg := ""
	if !l.Polarity {
		neg = "¬"
	}
	return fmt.Sprintf("%s%s(%s)", neg, l.Relation, strings.Join(l.Args, ","))
}

// Conjunction is an ordered sequence of literals, all of which must
// hold for the conjunction to be satisfied.
type Conjunction []Literal

// DNF is a disjunction of conjunctions: satisfied iff any conjunction
// is satisfied.
type DNF []Conjunction

func (d DNF) String() string {
	parts := make([]string, len(d))
	for i, conj := range d {
		lits := make([]string, len(conj))
		for j, l := range conj {
			lits[j] = l.String()
		}
		parts[i] = strings.Join(lits, " ∧ ")
	}
	return strings.Join(parts, " ∨ ")
}

// Interpretation pairs one parse with the DNF goal it produced.
type Interpretation struct {
	Parse parsetree.Command
	DNF   DNF
}

// Result is the outcome of interpreting a set of candidate parses:
// every parse that produced a non-empty DNF, in parse order. A
// successful Result always has at least one Interpretation.
type Result struct {
	// ID correlates this call's log lines and, downstream, the plan
	// built from it.
	ID              string
	Interpretations []Interpretation
}

// Interpreter resolves parse trees against world snapshots.
type Interpreter struct {
	logger *zap.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger attaches a structured logger for diagnostic spans.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

// New constructs an Interpreter.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = telemetry.Resolve(i.logger)
	return i
}

// Interpret attempts interpretCommand for every parse, collecting the
// successes. If none succeed, the first captured error is returned.
func (i *Interpreter) Interpret(parses []parsetree.Command, w world.State) (Result, error) {
	id := uuid.NewString()
	log := i.logger.With(zap.String("interpret_id", id))

	var result Result
	result.ID = id
	var firstErr error
	for idx, parse := range parses {
		dnf, err := i.interpretCommand(parse, w)
		if err != nil {
			log.Debug("parse failed to interpret", zap.Int("parse_index", idx), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Debug("parse interpreted", zap.Int("parse_index", idx), zap.String("dnf", dnf.String()))
		result.Interpretations = append(result.Interpretations, Interpretation{Parse: parse, DNF: dnf})
	}
	if len(result.Interpretations) == 0 {
		if firstErr != nil {
			return Result{}, firstErr
		}
		return Result{}, fmt.Errorf("no parse produced a goal: %w", coreerr.NoInterpretation)
	}
	log.Info("interpretation complete", zap.Int("succeeded", len(result.Interpretations)), zap.Int("attempted", len(parses)))
	return result, nil
}

func (i *Interpreter) interpretCommand(cmd parsetree.Command, w world.State) (DNF, error) {
	var dnf DNF
	switch cmd.Kind {
	case parsetree.Take:
		if cmd.Entity == nil {
			return nil, fmt.Errorf("take command has no entity: %w", coreerr.IllegalReference)
		}
		ids, err := i.resolveEntity(cmd.Entity, w)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if id == world.FloorID {
				continue
			}
			dnf = append(dnf, Conjunction{{Polarity: true, Relation: Holding, Args: []string{id}}})
		}

	case parsetree.Move:
		if cmd.Entity == nil || cmd.Location == nil {
			return nil, fmt.Errorf("move command missing entity or location: %w", coreerr.IllegalReference)
		}
		subjects, err := i.resolveEntity(cmd.Entity, w)
		if err != nil {
			return nil, err
		}
		targets, err := i.resolveEntity(cmd.Location.Entity, w)
		if err != nil {
			return nil, err
		}
		for _, a := range subjects {
			for _, b := range targets {
				if physics.IsValidGoal(w.Objects, cmd.Location.Relation, a, b) {
					dnf = append(dnf, Conjunction{{Polarity: true, Relation: cmd.Location.Relation, Args: []string{a, b}}})
				}
			}
		}

	case parsetree.Put:
		if w.Holding == world.None {
			break
		}
		if cmd.Location == nil {
			return nil, fmt.Errorf("put command has no location: %w", coreerr.IllegalReference)
		}
		targets, err := i.resolveEntity(cmd.Location.Entity, w)
		if err != nil {
			return nil, err
		}
		for _, b := range targets {
			if physics.IsValidGoal(w.Objects, cmd.Location.Relation, w.Holding, b) {
				dnf = append(dnf, Conjunction{{Polarity: true, Relation: cmd.Location.Relation, Args: []string{w.Holding, b}}})
			}
		}

	default:
		return nil, fmt.Errorf("unknown command kind %q: %w", cmd.Kind, coreerr.IllegalReference)
	}

	if len(dnf) == 0 {
		return nil, fmt.Errorf("no literal could be emitted: %w", coreerr.NoInterpretation)
	}
	return dnf, nil
}

// resolveEntity returns the set of object ids matching e, scanning
// columns in increasing index order and positions bottom to top so
// the result order is deterministic.
func (i *Interpreter) resolveEntity(e *parsetree.Entity, w world.State) ([]string, error) {
	if e.Primitive != nil {
		return i.resolvePrimitive(e.Primitive, w), nil
	}

	rel := e.Relative
	if rel.Inner.IsFloor() {
		return nil, fmt.Errorf("a relative clause cannot be attached to the floor: %w", coreerr.IllegalReference)
	}

	candidates, err := i.resolveEntity(rel.Inner, w)
	if err != nil {
		return nil, err
	}
	relatives, err := i.resolveEntity(rel.Location.Entity, w)
	if err != nil {
		return nil, err
	}

	var kept []string
	for _, c := range candidates {
		col, ok := physics.ColumnOf(w.Stacks, c)
		if !ok {
			continue
		}
		pos, _ := physics.HeightOf(w.Stacks, c, col)
		if physics.SatisfiesRelation(rel.Location.Relation, w.Stacks, w.Objects, col, pos, relatives) {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

func (i *Interpreter) resolvePrimitive(p *parsetree.Primitive, w world.State) []string {
	if p.Form == string(world.Floor) {
		return []string{world.FloorID}
	}
	var result []string
	for _, col := range w.Stacks {
		for _, id := range col {
			if matches(p, w.Objects[id]) {
				result = append(result, id)
			}
		}
	}
	return result
}

func matches(p *parsetree.Primitive, attrs world.Attributes) bool {
	if p.Form != "" && p.Form != string(world.AnyForm) && p.Form != string(attrs.Form) {
		return false
	}
	if p.Size != "" && p.Size != string(attrs.Size) {
		return false
	}
	if p.Color != "" && p.Color != attrs.Color {
		return false
	}
	return true
}
