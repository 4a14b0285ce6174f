// Package coreerr defines the error kinds the interpreter and planner
// surface to callers. Each is a sentinel wrapped with fmt.Errorf's
// %w, so callers use errors.Is against these values rather than
// matching on message text.
package coreerr

import "errors"

var (
	// NoInterpretation means no parse produced a non-empty DNF goal.
	NoInterpretation = errors.New("no interpretation")

	// IllegalReference means a reference violated a structural rule,
	// such as a relative clause attached to the floor.
	IllegalReference = errors.New("illegal reference")

	// NoPlan means the search driver returned no path to any goal
	// state.
	NoPlan = errors.New("no plan")

	// SearchTimeout means the search driver's wall-clock budget
	// expired before a goal state was found.
	SearchTimeout = errors.New("search timeout")
)
