// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package update

import "github.com/pssago/pssa/internal/model"

// consume performs the consuming step of spec §4.4.1: for each reactant
// reference, subtract its stoichiometry from the subvolume's population
// (reservoir references and constant species are skipped; a diffusion
// wrapper's single synthetic reactant reference subtracts 1).
func consume(m *model.Model, sv *model.Subvolume, w *model.ReactionWrapper) error {
	for _, r := range w.Reactants(m) {
		if r.Reservoir {
			continue
		}
		sp, err := m.Species(r.Species)
		if err != nil {
			return err
		}
		if sp.Constant {
			continue
		}
		sv.Population[r.Species] -= int64(r.Stoich)
		if sv.Population[r.Species] < 0 {
			return &NegativePopulationError{Subvolume: sv.Index, Species: r.Species}
		}
	}
	return nil
}
