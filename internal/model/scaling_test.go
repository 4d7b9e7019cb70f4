// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaleReactionRateSingleReactant(t *testing.T) {
	// e = 1+1 = 2, factor = 1! = 1
	refs := []SpeciesReference{{Species: 0, Stoich: 1}}
	got := scaleReactionRate(2.0, 5.0, refs)
	require.InDelta(t, 2.0*math.Pow(5.0, -1), got, 1e-9)
}

func TestScaleReactionRateDimerization(t *testing.T) {
	// e = 1+2 = 3, factor = 2! = 2
	refs := []SpeciesReference{{Species: 0, Stoich: 2}}
	got := scaleReactionRate(0.016, 1.0, refs)
	require.InDelta(t, 0.016*2, got, 1e-9)
}

func TestScaleReactionRateReservoirHasExponentOne(t *testing.T) {
	refs := []SpeciesReference{{Species: ReservoirSpecies, Stoich: 0, Reservoir: true}}
	got := scaleReactionRate(10.0, 3.0, refs)
	require.InDelta(t, 10.0, got, 1e-9)
}

func TestDiffusionScaling(t *testing.T) {
	h := diffusionStepLength(4.0, 2)
	require.InDelta(t, 2.0, h, 1e-9)
	require.InDelta(t, 0.25, scaleDiffusionRate(1.0, h), 1e-9)
}

func TestSubstanceUnitFactor(t *testing.T) {
	require.InDelta(t, Avogadro, SubstanceUnitFactor(1), 1)
}
