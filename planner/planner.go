// Package planner turns an interpreted goal into a sequence of
// primitive arm actions. It wires the generic search package to the
// blocks-world state graph, trying each candidate interpretation in
// turn and returning the first plan found.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mictra/shrdlite-course-project/coreerr"
	"github.com/mictra/shrdlite-course-project/interpreter"
	"github.com/mictra/shrdlite-course-project/physics"
	"github.com/mictra/shrdlite-course-project/search"
	"github.com/mictra/shrdlite-course-project/stategraph"
	"github.com/mictra/shrdlite-course-project/telemetry"
	"github.com/mictra/shrdlite-course-project/world"
)

// Combinator reduces the per-literal heuristic estimates of a
// conjunction to a single admissible estimate for that conjunction.
type Combinator func(estimates []float64) float64

// MaxCombinator takes the largest per-literal estimate. It is the
// safer default: since every literal in a conjunction must eventually
// hold, the conjunction can never be cheaper than its hardest literal.
func MaxCombinator(estimates []float64) float64 {
	max := 0.0
	for _, e := range estimates {
		if e > max {
			max = e
		}
	}
	return max
}

// LastCombinator only accounts for the final literal's estimate,
// ignoring the rest of the conjunction. It is not admissible in
// general and is offered only for parity with the literal reading of
// the original heuristic description; MaxCombinator is the default.
func LastCombinator(estimates []float64) float64 {
	if len(estimates) == 0 {
		return 0
	}
	return estimates[len(estimates)-1]
}

// Config controls one Plan call. The zero value is valid: Combinator
// defaults to MaxCombinator and Timeout to 10 seconds.
type Config struct {
	Timeout    time.Duration
	Combinator Combinator
}

func (c Config) resolve() Config {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Combinator == nil {
		c.Combinator = MaxCombinator
	}
	return c
}

// AlreadyTrue is the sentinel utterance a Plan carries when its goal
// was already satisfied by the start state, in place of any steps.
const AlreadyTrue = "That is already true!"

// Step is one primitive action in a rendered plan. Utterance is only
// set for pick and drop actions; left and right carry an empty one.
type Step struct {
	Action    stategraph.Action
	Code      string
	Utterance string
}

// Plan is a full solution for one interpretation: its primitive steps,
// the rendered output and search statistics. It does not record which
// interpretation it satisfies.
type Plan struct {
	// ID correlates this plan's log lines back to the interpretation
	// it was built from.
	ID    string
	Steps []Step
	// Output is the flattened sequence of strings the downstream world
	// runtime consumes: utterances interleaved with one-letter action
	// codes, or the single AlreadyTrue sentinel when the goal held
	// already.
	Output   []string
	Cost     float64
	Expanded int
}

// Trace renders the plan's Output as one entry per line, in order. It
// is a convenience for callers that only want a human-readable
// transcript, not the structured Steps.
func (p Plan) Trace() string {
	return strings.Join(p.Output, "\n")
}

// Planner searches for plans satisfying interpreted goals.
type Planner struct {
	logger *zap.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger attaches a structured logger for diagnostic spans.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// New constructs a Planner.
func New(opts ...Option) *Planner {
	p := &Planner{}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = telemetry.Resolve(p.logger)
	return p
}

// Plan searches, in order, for a sequence of actions satisfying each
// candidate interpretation, returning the first plan found. If every
// interpretation exhausts its search budget or its frontier, the
// first captured error is returned.
func (p *Planner) Plan(ctx context.Context, result interpreter.Result, w world.State, cfg Config) (Plan, error) {
	cfg = cfg.resolve()
	log := p.logger.With(zap.String("interpret_id", result.ID))

	var firstErr error
	for idx, interp := range result.Interpretations {
		plan, err := p.planInterpretation(ctx, interp, w, cfg)
		if err != nil {
			log.Debug("interpretation failed to plan", zap.Int("interpretation_index", idx), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		plan.ID = uuid.NewString()
		log.Info("plan found",
			zap.String("plan_id", plan.ID),
			zap.Int("interpretation_index", idx),
			zap.Int("steps", len(plan.Steps)),
			zap.Int("expanded", plan.Expanded),
		)
		return plan, nil
	}
	if firstErr != nil {
		return Plan{}, firstErr
	}
	return Plan{}, fmt.Errorf("no interpretation produced a plan: %w", coreerr.NoPlan)
}

func (p *Planner) planInterpretation(ctx context.Context, interp interpreter.Interpretation, w world.State, cfg Config) (Plan, error) {
	if err := world.Validate(w); err != nil {
		return Plan{}, fmt.Errorf("invalid start state: %w", err)
	}
	if err := physics.ValidateSupport(w.Stacks, w.Objects); err != nil {
		return Plan{}, fmt.Errorf("invalid start state: %w", err)
	}

	start := stategraph.FromWorld(w)
	objects := w.Objects

	graph := search.Graph[stategraph.Node]{
		Successors: func(n stategraph.Node) []search.Edge[stategraph.Node] {
			edges := stategraph.Successors(n, objects)
			out := make([]search.Edge[stategraph.Node], len(edges))
			for i, e := range edges {
				out[i] = search.Edge[stategraph.Node]{To: e.To, Cost: e.Cost}
			}
			return out
		},
		Heuristic: func(n stategraph.Node) float64 { return heuristic(n, objects, interp.DNF, cfg.Combinator) },
		IsGoal:    func(n stategraph.Node) bool { return satisfiesDNF(n, objects, interp.DNF) },
		Key:       func(n stategraph.Node) string { return n.Key() },
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	res, err := search.Search(ctx, graph, start)
	if err != nil {
		switch err {
		case search.ErrTimeout:
			return Plan{}, fmt.Errorf("plan search: %w", coreerr.SearchTimeout)
		default:
			return Plan{}, fmt.Errorf("plan search: %w", coreerr.NoPlan)
		}
	}

	return render(res, objects), nil
}

// render walks the search path into a Plan. If the goal already held
// at the start node, the path has length 1 and the plan is the single
// AlreadyTrue sentinel utterance with no steps.
func render(res search.Result[stategraph.Node], objects map[string]world.Attributes) Plan {
	if len(res.Path) == 1 {
		return Plan{Output: []string{AlreadyTrue}, Cost: res.Cost, Expanded: res.Expanded}
	}

	var steps []Step
	var output []string
	for i := 1; i < len(res.Path); i++ {
		n := res.Path[i]
		switch n.LastAction {
		case stategraph.Pick:
			isLast := i == len(res.Path)-1
			u := utterPick(n, objects, isLast)
			steps = append(steps, Step{Action: n.LastAction, Code: n.LastAction.Code(), Utterance: u})
			output = append(output, u, n.LastAction.Code())
		case stategraph.Drop:
			u := utterDrop(n, objects)
			steps = append(steps, Step{Action: n.LastAction, Code: n.LastAction.Code(), Utterance: u})
			output = append(output, u, n.LastAction.Code())
		case stategraph.Left, stategraph.Right:
			steps = append(steps, Step{Action: n.LastAction, Code: n.LastAction.Code()})
			output = append(output, n.LastAction.Code())
		}
	}
	return Plan{Steps: steps, Output: output, Cost: res.Cost, Expanded: res.Expanded}
}

// utterPick renders the utterance for a pick action: "Taking" if it is
// the final action of the whole plan (the arm ends up simply grasping
// the goal object), "Moving" otherwise, per §4.4.
func utterPick(n stategraph.Node, objects map[string]world.Attributes, isLast bool) string {
	verb := "Moving"
	if isLast {
		verb = "Taking"
	}
	a := objects[n.Holding]
	return fmt.Sprintf("%s the %s %s %s", verb, a.Size, a.Color, a.Form)
}

// utterDrop renders the utterance for a drop action: the dropped
// object's description, followed by where it landed — the floor, an
// object it is inside, or an object it merely rests on top of.
func utterDrop(n stategraph.Node, objects map[string]world.Attributes) string {
	col := n.Stacks[n.Arm]
	dropped := objects[col[len(col)-1]]
	base := fmt.Sprintf("Dropping the %s %s %s", dropped.Size, dropped.Color, dropped.Form)

	if len(col) == 1 {
		return base + " on the floor"
	}
	support := objects[col[len(col)-2]]
	if support.Form == world.Box {
		return base + fmt.Sprintf(" inside the %s %s %s", support.Size, support.Color, support.Form)
	}
	return base + fmt.Sprintf(" on top the %s %s %s", support.Size, support.Color, support.Form)
}

// satisfiesDNF reports whether any conjunction of dnf is fully
// satisfied by n.
func satisfiesDNF(n stategraph.Node, objects map[string]world.Attributes, dnf interpreter.DNF) bool {
	for _, conj := range dnf {
		if satisfiesConjunction(n, objects, conj) {
			return true
		}
	}
	return false
}

func satisfiesConjunction(n stategraph.Node, objects map[string]world.Attributes, conj interpreter.Conjunction) bool {
	for _, lit := range conj {
		if !literalHolds(n, objects, lit) {
			return false
		}
	}
	return true
}

func literalHolds(n stategraph.Node, objects map[string]world.Attributes, lit interpreter.Literal) bool {
	if lit.Relation == interpreter.Holding {
		return (n.Holding == lit.Args[0]) == lit.Polarity
	}
	a, b := lit.Args[0], lit.Args[1]
	if a == world.FloorID {
		return !lit.Polarity
	}
	col, ok := physics.ColumnOf(n.Stacks, a)
	if !ok {
		return !lit.Polarity
	}
	pos, _ := physics.HeightOf(n.Stacks, a, col)
	holds := physics.SatisfiesRelation(lit.Relation, n.Stacks, objects, col, pos, []string{b})
	return holds == lit.Polarity
}

// heuristic estimates the remaining cost to satisfy dnf from n, as
// the minimum over its conjunctions of the combinator applied to that
// conjunction's per-literal estimates. Using the minimum across
// disjuncts keeps the estimate admissible whenever the combinator
// itself is: the true cost can never be less than the cheapest single
// way of satisfying the goal.
func heuristic(n stategraph.Node, objects map[string]world.Attributes, dnf interpreter.DNF, combine Combinator) float64 {
	if len(dnf) == 0 {
		return 0
	}
	best := -1.0
	for _, conj := range dnf {
		estimates := make([]float64, len(conj))
		for i, lit := range conj {
			estimates[i] = literalCost(n, objects, lit)
		}
		est := combine(estimates)
		if best < 0 || est < best {
			best = est
		}
	}
	return best
}

// literalCost estimates the number of primitive actions needed to
// make a single literal hold, per §4.4's per-relation table. It
// returns 0 immediately when the literal already holds, which is what
// keeps the heuristic admissible at goal nodes.
//
// above(i) = aboveCount(args[i]), reach(i) = |arm - columnOf(args[i])|,
// span = |columnOf(args[0]) - columnOf(args[1])|. A currently-held
// object is treated as coincident with the arm's column, since no
// reach is needed to act on it.
func literalCost(n stategraph.Node, objects map[string]world.Attributes, lit interpreter.Literal) float64 {
	if literalHolds(n, objects, lit) {
		return 0
	}
	if !lit.Polarity {
		// The table in §4.4 only covers positive literals; a negated
		// literal that does not already hold needs exactly one action
		// (undo whatever currently satisfies its positive form) in
		// the common cases this planner can reach.
		return 1
	}

	if lit.Relation == interpreter.Holding {
		target := lit.Args[0]
		above0 := float64(physics.AboveCount(n.Stacks, target))
		reach0 := float64(absInt(n.Arm - columnOf(n, target)))
		return 4*above0 + reach0
	}

	a, b := lit.Args[0], lit.Args[1]
	above0 := float64(physics.AboveCount(n.Stacks, a))
	above1 := float64(physics.AboveCount(n.Stacks, b))
	reach0 := float64(absInt(n.Arm - columnOf(n, a)))
	reach1 := float64(absInt(n.Arm - columnOf(n, b)))
	span := float64(absInt(columnOf(n, a) - columnOf(n, b)))

	switch lit.Relation {
	case physics.Inside, physics.OnTop:
		return 3*(above0+above1) + reach0 + reach1
	case physics.Under:
		return 4*above1 + span + reach1
	case physics.Above:
		return 4*above0 + span + reach0
	case physics.LeftOf, physics.RightOf:
		return 4*above0 + span + reach0
	case physics.Beside:
		return 4*above0 + span + reach0 - 1
	default:
		return 4*above0 + span + reach0
	}
}

// columnOf returns id's column for reach/span purposes: the arm's own
// column when id is currently held (no travel needed to reach it),
// otherwise its stack column, or the arm's column again if id has
// none (the floor, or an id the planner cannot otherwise locate).
func columnOf(n stategraph.Node, id string) int {
	if id == n.Holding {
		return n.Arm
	}
	if col, ok := physics.ColumnOf(n.Stacks, id); ok {
		return col
	}
	return n.Arm
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
