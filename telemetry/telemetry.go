// Package telemetry resolves the optional structured logger the
// interpreter and planner accept. It generalizes the teacher's
// boolean debug-gate (Atre.Debugging / Plnpr's "DEBUGGING" plist
// entry, both gating plain fmt.Fprintf calls) into leveled,
// structured logging: callers that pass no logger get a no-op one,
// exactly as the teacher's debug writer defaults to silence.
package telemetry

import "go.uber.org/zap"

// Resolve returns logger if non-nil, otherwise a no-op logger.
func Resolve(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
