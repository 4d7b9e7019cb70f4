// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pssago/pssa/internal/model"
)

func buildDecayModel(t *testing.T) *model.Model {
	t.Helper()
	b := model.NewBuilder()
	a := b.AddSpecies(model.Species{ID: "A", Initial: 200})
	b.AddReaction(model.Reaction{
		ID:        "decay",
		Reactants: []model.SpeciesReference{{Species: a, Stoich: 1}},
		Forward:   0.05,
	})
	m, err := b.Setup(1, 0, nil, model.Periodic)
	require.NoError(t, err)
	m.SetPopulation(func(m *model.Model, out [][]int64) {
		out[0][0] = 200
	})
	return m
}

func TestNewMethodRejectsUnknownMethod(t *testing.T) {
	_, err := NewMethod("bogus")
	require.Error(t, err)
}

func TestEngineRunsToCompletionWithoutAbsorbing(t *testing.T) {
	m := buildDecayModel(t)
	method, err := NewMethod("dm")
	require.NoError(t, err)

	info := RunInfo{RunID: uuid.New(), Sample: 0, Method: "dm"}
	eng, err := NewEngine(m, method, 1, 2, 0, 5.0, nil, info)
	require.NoError(t, err)

	res, err := eng.Run()
	require.NoError(t, err)
	require.False(t, res.Absorbed)
	require.InDelta(t, 5.0, res.FinalTime, 1e-9)
	require.Greater(t, res.ReactionsFired, int64(0))

	sv, _ := m.Subvolume(0)
	require.Less(t, sv.Population[0], int64(200))
}

func TestEngineReachesAbsorbingState(t *testing.T) {
	b := model.NewBuilder()
	a := b.AddSpecies(model.Species{ID: "A", Initial: 1})
	b.AddReaction(model.Reaction{
		ID:        "decay",
		Reactants: []model.SpeciesReference{{Species: a, Stoich: 1}},
		Forward:   0.5,
	})
	m, err := b.Setup(1, 0, nil, model.Periodic)
	require.NoError(t, err)
	m.SetPopulation(func(m *model.Model, out [][]int64) {
		out[0][0] = 1
	})

	method, err := NewMethod("dm")
	require.NoError(t, err)
	info := RunInfo{RunID: uuid.New(), Sample: 0, Method: "dm"}
	eng, err := NewEngine(m, method, 7, 9, 0, 1e9, nil, info)
	require.NoError(t, err)

	res, err := eng.Run()
	require.NoError(t, err)
	require.True(t, res.Absorbed)
	require.Equal(t, int64(1), res.ReactionsFired)

	sv, _ := m.Subvolume(0)
	require.Equal(t, int64(0), sv.Population[0])
}

func TestEngineCancelStopsRun(t *testing.T) {
	m := buildDecayModel(t)
	method, err := NewMethod("dm")
	require.NoError(t, err)
	info := RunInfo{RunID: uuid.New(), Sample: 0, Method: "dm"}
	eng, err := NewEngine(m, method, 3, 4, 0, 1e9, nil, info)
	require.NoError(t, err)

	eng.Cancel()
	res, err := eng.Run()
	require.NoError(t, err)
	require.Equal(t, int64(0), res.ReactionsFired)
}

func TestDeriveSeedVariesWithSample(t *testing.T) {
	id := uuid.New()
	s1a, s2a := DeriveSeed(id, 0, 1000)
	s1b, s2b := DeriveSeed(id, 1, 1000)
	require.NotEqual(t, s1a, s1b)
	require.NotEqual(t, s2a, s2b)
}
