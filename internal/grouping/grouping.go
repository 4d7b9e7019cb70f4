// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

// Package grouping builds and maintains the per-method propensity
// structures (spec §4.2): a flat vector for DM, a partial-propensity
// matrix for PDM/SPDM, and composition-rejection bins layered on top for
// PSSACR.
package grouping

import (
	"errors"

	"github.com/pssago/pssa/internal/model"
)

// errNotInitialized is returned when Refresh is called on a subvolume whose
// MethodState was never set up by Init, or was set up by a different
// method's Init.
var errNotInitialized = errors.New("grouping: subvolume method state not initialized")

// Grouper is implemented by each method variant (DM, PDM, SPDM, PSSACR).
// Build constructs the method's static, population-independent tables.
// Init computes initial propensities from the model's current
// populations. Refresh recomputes exactly the propensity entries that
// depend on species changed by firedBy in subvolume sv, and propagates
// the deltas through the subvolume's and the global total (spec §4.2.5).
type Grouper interface {
	Build(m *model.Model) error
	Init(m *model.Model) error
	Refresh(m *model.Model, sv model.SubvolumeID, firedBy model.WrapperID) error
}

// PermutationAdjuster is implemented only by SPDM: after a wrapper fires,
// the row and column it was sampled from are bubbled one step toward the
// front (spec §4.4.5).
type PermutationAdjuster interface {
	AdjustPermutation(sv *model.Subvolume, row, col int)
}

// reservoirRow is the fixed row index reserved for the reservoir
// (spec §4.2.2: "a row 0 for the reservoir"); real species i occupies
// row i+1.
const reservoirRow = 0

func rowOf(s model.SpeciesID) int {
	if s == model.ReservoirSpecies {
		return reservoirRow
	}
	return int(s) + 1
}
