// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRefsCoalescesDuplicates(t *testing.T) {
	refs := []SpeciesReference{
		{Species: 2, Stoich: 1},
		{Species: 0, Stoich: 1},
		{Species: 2, Stoich: 1},
	}
	out := normalizeRefs(refs)
	require.Equal(t, []SpeciesReference{
		{Species: 2, Stoich: 2},
		{Species: 0, Stoich: 1},
	}, out)
}

func TestNormalizeRefsEmptyBecomesReservoir(t *testing.T) {
	out := normalizeRefs(nil)
	require.Len(t, out, 1)
	require.True(t, out[0].Reservoir)
	require.Equal(t, ReservoirSpecies, out[0].Species)
}

func TestBuilderSetupRejectsNoReactions(t *testing.T) {
	b := NewBuilder()
	_, err := b.Setup(1, 0, nil, Reflexive)
	require.Error(t, err)
	var se *SetupError
	require.ErrorAs(t, err, &se)
}

func TestBuilderSetupRejectsZeroGridSize(t *testing.T) {
	b := NewBuilder()
	b.AddSpecies(Species{ID: "A", Initial: 1})
	b.AddReaction(Reaction{
		ID:      "decay",
		Forward: 1.0,
		Reactants: []SpeciesReference{{Species: 0, Stoich: 1}},
	})
	_, err := b.Setup(1, 1, []int{0}, Reflexive)
	require.Error(t, err)
}

func TestBuilderSetupRejectsBadBoundary(t *testing.T) {
	b := NewBuilder()
	b.AddReaction(Reaction{ID: "x", Forward: 1})
	_, err := b.Setup(1, 0, nil, Boundary(7))
	require.Error(t, err)
}

func TestBuilderSetupBuildsWrappersAndSubvolumes(t *testing.T) {
	b := NewBuilder()
	a := b.AddSpecies(Species{ID: "A", Initial: 25, Diffuse: 1})
	b.AddReaction(Reaction{
		ID:         "dimerize",
		Forward:    0.016,
		Reversible: true,
		Reverse:    10.0,
		Reactants:  []SpeciesReference{{Species: a, Stoich: 2}},
		Products:   nil,
	})
	m, err := b.Setup(1, 1, []int{20}, Reflexive)
	require.NoError(t, err)
	require.Equal(t, 20, m.NSubvolumes())
	// forward + reverse + one diffuse wrapper for species A
	require.Equal(t, 3, m.NWrappers())
	sv0, err := m.Subvolume(0)
	require.NoError(t, err)
	require.Len(t, sv0.Neighbors, 2)
	// reflexive: subvolume 0's "previous" neighbor along the only axis is
	// itself (clamped)
	require.Equal(t, SubvolumeID(0), sv0.Neighbors[0])
	require.Equal(t, SubvolumeID(1), sv0.Neighbors[1])
}

func TestBuilderSetupRejectsNonPositiveRate(t *testing.T) {
	b := NewBuilder()
	b.AddReaction(Reaction{ID: "bad", Forward: 0})
	_, err := b.Setup(1, 0, nil, Reflexive)
	require.Error(t, err)
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestModelCloneIsIndependentOfOriginal(t *testing.T) {
	b := NewBuilder()
	a := b.AddSpecies(Species{ID: "A", Initial: 5})
	b.AddReaction(Reaction{
		ID:        "decay",
		Forward:   0.1,
		Reactants: []SpeciesReference{{Species: a, Stoich: 1}},
	})
	m, err := b.Setup(1, 0, nil, Periodic)
	require.NoError(t, err)
	m.SetPopulation(func(m *Model, out [][]int64) { out[0][0] = 5 })

	clone := m.Clone()
	cloneSv, _ := clone.Subvolume(0)
	cloneSv.Population[0] = 99

	originalSv, _ := m.Subvolume(0)
	require.Equal(t, int64(5), originalSv.Population[0])
	require.Equal(t, int64(99), cloneSv.Population[0])
	require.Nil(t, cloneSv.MethodState)
}
