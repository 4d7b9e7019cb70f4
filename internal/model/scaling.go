// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

import "math"

// Avogadro is Avogadro's number, used by SubstanceUnitFactor to convert an
// amount in moles into a molecule count (spec §6.1, the substance-unit
// factor an SBML loader would apply; kept as a standalone helper so a
// future SBML loader or the native YAML loader can share it).
const Avogadro = 6.02214076e23

// SubstanceUnitFactor returns the multiplier that converts a quantity given
// in unitsPerMole (e.g. SBML substance units after SI conversion) into a
// molecule count.
func SubstanceUnitFactor(unitsPerMole float64) float64 {
	return unitsPerMole * Avogadro
}

// subvolumeVolume returns V_sub = V / N_sub.
func subvolumeVolume(volume float64, nSub int) float64 {
	return volume / float64(nSub)
}

// scaleReactionRate rescales a forward or reverse rate per spec §3.3:
// k_scaled = k * V_sub^(1-e) * factor, where e = 1 + sum(reactant
// stoichiometries) and factor = product(stoich!) over reactants.
func scaleReactionRate(k, vSub float64, refs []SpeciesReference) float64 {
	e := exponent(refs)
	factor := stoichFactorial(refs)
	return k * math.Pow(vSub, float64(1-e)) * factor
}

// diffusionStepLength returns h = V_sub^(1/max(d,2)), the lattice spacing
// used to scale diffusion rates (spec §3.3).
func diffusionStepLength(vSub float64, dims int) float64 {
	denom := dims
	if denom < 2 {
		denom = 2
	}
	return math.Pow(vSub, 1/float64(denom))
}

// scaleDiffusionRate returns the scaled per-neighbor diffusion rate D/h^2.
func scaleDiffusionRate(d, h float64) float64 {
	return d / (h * h)
}
