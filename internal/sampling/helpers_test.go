// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pssago/pssa/internal/model"
)

func buildTestModel(t *testing.T) *model.Model {
	t.Helper()
	b := model.NewBuilder()
	a := b.AddSpecies(model.Species{ID: "A", Initial: 10, Diffuse: 0.5})
	bb := b.AddSpecies(model.Species{ID: "B", Initial: 2})
	b.AddReaction(model.Reaction{
		ID:         "dimerize",
		Reactants:  []model.SpeciesReference{{Species: a, Stoich: 2}},
		Products:   []model.SpeciesReference{{Species: bb, Stoich: 1}},
		Forward:    0.02,
		Reversible: true,
		Reverse:    0.5,
	})
	m, err := b.Setup(27, 1, []int{3}, model.Periodic)
	require.NoError(t, err)
	m.SetPopulation(func(m *model.Model, out [][]int64) {
		for i := range out {
			out[i][0] = 10
			out[i][1] = 2
		}
	})
	return m
}
