// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"math/rand/v2"

	"github.com/pssago/pssa/internal/model"
)

// pickSubvolumeLinear does a linear cumulative scan over every
// subvolume's TotalPropensity, shared by DM, PDM and SPDM (spec §4.3.2).
// PSSACR instead samples its lattice-spanning CRBins directly.
func pickSubvolumeLinear(m *model.Model, rng *rand.Rand) (model.SubvolumeID, bool) {
	total := m.TotalPropensity()
	if total <= 0 {
		return 0, false
	}
	r := rng.Float64() * total
	acc := 0.0
	subs := m.Subvolumes()
	for i := range subs {
		acc += subs[i].TotalPropensity
		if r < acc {
			return model.SubvolumeID(i), true
		}
	}
	// Rounding overshoot: fall back to the last subvolume with nonzero
	// propensity.
	for i := len(subs) - 1; i >= 0; i-- {
		if subs[i].TotalPropensity > 0 {
			return model.SubvolumeID(i), true
		}
	}
	return 0, false
}
