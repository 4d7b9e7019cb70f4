// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

// Package sampling draws the "what fires next, where, and when" decisions
// on top of the propensity structures built by internal/grouping (spec
// §4.3).
package sampling

import (
	"math/rand/v2"

	"github.com/pssago/pssa/internal/model"
)

// ReactionPick identifies the wrapper selected to fire in one subvolume.
// Row and Col are the partial-propensity matrix coordinates the pick came
// from, used only by SPDM to bubble its permutation after firing; DM
// leaves both at -1.
type ReactionPick struct {
	Subvolume model.SubvolumeID
	Wrapper   model.WrapperID
	Row, Col  int
}

// Sampler draws reaction and subvolume choices from a Grouper's current
// propensity state. Each grouping method variant has a matching Sampler
// implementation that knows how to scan its particular data structure.
type Sampler interface {
	// PickSubvolume chooses a subvolume proportional to its total
	// propensity. ok is false when the network's total propensity is
	// zero (the absorbing-state condition, spec §4.4.6) or, for PSSACR,
	// when composition-rejection sampling fails to converge.
	PickSubvolume(m *model.Model, rng *rand.Rand) (sv model.SubvolumeID, ok bool)

	// PickReaction chooses a wrapper to fire within sv, proportional to
	// its propensity there. ok is false if sv's total propensity is zero
	// or composition-rejection sampling fails to converge.
	PickReaction(m *model.Model, sv model.SubvolumeID, rng *rand.Rand) (pick ReactionPick, ok bool)
}
