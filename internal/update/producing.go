// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package update

import "github.com/pssago/pssa/internal/model"

// produce performs the producing step of spec §4.4.3 for a non-diffusion
// wrapper: for each product reference, add its stoichiometry to the
// subvolume's population (reservoir references and constant species
// skipped).
func produce(m *model.Model, sv *model.Subvolume, w *model.ReactionWrapper) error {
	for _, p := range w.Products(m) {
		if p.Reservoir {
			continue
		}
		sp, err := m.Species(p.Species)
		if err != nil {
			return err
		}
		if sp.Constant {
			continue
		}
		sv.Population[p.Species] += int64(p.Stoich)
	}
	return nil
}

// produceDiffusion performs the producing step for a diffusion wrapper:
// add 1 to the destination subvolume's population for the diffusing
// species (spec §4.4.3's diffusion case).
func produceDiffusion(dst *model.Subvolume, w *model.ReactionWrapper) {
	dst.Population[w.Species]++
}
