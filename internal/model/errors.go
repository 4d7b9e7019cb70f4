// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

import "fmt"

// NetworkError reports a problem with the reaction network itself:
// unresolved references, missing mandatory rates, or invalid stoichiometry
// (spec §7 "Network error").
type NetworkError struct {
	Reaction string
	Reason   string
}

func (e *NetworkError) Error() string {
	if e.Reaction == "" {
		return fmt.Sprintf("network error: %s", e.Reason)
	}
	return fmt.Sprintf("network error: reaction %q: %s", e.Reaction, e.Reason)
}

// SetupError reports a problem building the subvolume grid: a zero grid
// size, an empty reaction set, or an unsupported boundary policy (spec §7
// "Setup error").
type SetupError struct {
	Reason string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup error: %s", e.Reason)
}
