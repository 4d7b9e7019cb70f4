// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package engine

import "fmt"

// SetupError wraps a failure constructing an Engine: a Grouper's Build/
// Init step failing, or a panic recovered during allocation (spec §7,
// Resource failure).
type SetupError struct {
	Reason string
	Cause  error
}

func (e *SetupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("engine: setup failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("engine: setup failed: %s", e.Reason)
}

func (e *SetupError) Unwrap() error { return e.Cause }

// AbsorbingStateError is not a failure: it reports that a sample reached
// total propensity zero and terminated at t = infinity (spec §4.4.6,
// §7 Runtime soft failure).
type AbsorbingStateError struct {
	Time float64
}

func (e *AbsorbingStateError) Error() string {
	return fmt.Sprintf("engine: absorbing state reached at t=%g", e.Time)
}

// InvariantViolationError reports a runtime hard failure: a negative
// population or CR sampling non-convergence propagated up from
// internal/update or internal/grouping (spec §7, Runtime hard failure).
type InvariantViolationError struct {
	Reason string
	Cause  error
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("engine: invariant violated: %s: %v", e.Reason, e.Cause)
}

func (e *InvariantViolationError) Unwrap() error { return e.Cause }
