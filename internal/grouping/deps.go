// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package grouping

import "github.com/pssago/pssa/internal/model"

// changedSpecies returns the set of species whose population changes when
// w fires: its reactants and products for a reaction wrapper, or just its
// species for a diffusion wrapper (the destination subvolume gets the
// same species, just in a different subvolume's population vector).
func changedSpecies(m *model.Model, w *model.ReactionWrapper) []model.SpeciesID {
	if w.IsDiffusion() {
		return []model.SpeciesID{w.Species}
	}
	seen := make(map[model.SpeciesID]bool)
	var out []model.SpeciesID
	add := func(refs []model.SpeciesReference) {
		for _, r := range refs {
			if r.Reservoir {
				continue
			}
			if !seen[r.Species] {
				seen[r.Species] = true
				out = append(out, r.Species)
			}
		}
	}
	add(w.Reactants(m))
	add(w.Products(m))
	return out
}

// propensityFromReactants computes rate * Π C(pop[s], stoich) over refs,
// skipping reservoir references (which contribute a factor of 1). This
// single formula covers DM's Forward/Reverse/Diffuse propensities and
// PDM/SPDM/PSSACR's per-slot π values (spec §4.2.1, §4.2.2).
func propensityFromReactants(rate float64, refs []model.SpeciesReference, pop []int64) float64 {
	v := rate
	for _, r := range refs {
		if r.Reservoir {
			continue
		}
		v *= fallingCombination(pop[r.Species], r.Stoich)
	}
	return v
}

// removeOneOccurrence returns a copy of refs with one occurrence of the
// species at position idx removed: its Stoich decremented, or the
// reference dropped entirely if that was its only occurrence. Used to
// build the "remaining reactant multiset" a PDM slot's partial propensity
// is computed over (spec §4.2.2).
func removeOneOccurrence(refs []model.SpeciesReference, idx int) []model.SpeciesReference {
	out := make([]model.SpeciesReference, 0, len(refs))
	for i, r := range refs {
		if i == idx {
			if r.Stoich > 1 {
				r.Stoich--
				out = append(out, r)
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// fallingCombination returns C(n, k) = n!/(k!(n-k)!), computed as a
// falling factorial divided by k! to avoid overflow for large n.
func fallingCombination(n int64, k uint8) float64 {
	if k == 0 {
		return 1
	}
	if n < int64(k) {
		return 0
	}
	num := 1.0
	fact := 1.0
	for i := uint8(0); i < k; i++ {
		num *= float64(n - int64(i))
		fact *= float64(i + 1)
	}
	return num / fact
}
