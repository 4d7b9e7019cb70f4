// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package update

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pssago/pssa/internal/grouping"
	"github.com/pssago/pssa/internal/model"
	"github.com/pssago/pssa/internal/sampling"
)

func buildDelayModel(t *testing.T, consuming bool) (*model.Model, model.WrapperID) {
	t.Helper()
	b := model.NewBuilder()
	a := b.AddSpecies(model.Species{ID: "A", Initial: 100})
	bb := b.AddSpecies(model.Species{ID: "B", Initial: 0})
	b.AddReaction(model.Reaction{
		ID:        "convert",
		Reactants: []model.SpeciesReference{{Species: a, Stoich: 1}},
		Products:  []model.SpeciesReference{{Species: bb, Stoich: 1}},
		Forward:   1.0,
		HasDelay:  true,
		Delay:     5.0,
		Consuming: consuming,
	})
	m, err := b.Setup(1, 0, nil, model.Periodic)
	require.NoError(t, err)
	m.SetPopulation(func(m *model.Model, out [][]int64) {
		out[0][0] = 100
		out[0][1] = 0
	})
	var fwd model.WrapperID
	for _, w := range m.Wrappers() {
		if w.Kind == model.Forward {
			fwd = w.Serial
		}
	}
	return m, fwd
}

func TestApplyConsumingDelayConsumesNowProducesLater(t *testing.T) {
	m, fwd := buildDelayModel(t, true)
	dm := grouping.NewDM()
	require.NoError(t, dm.Build(m))
	require.NoError(t, dm.Init(m))
	queue := NewDelayQueue()
	rng := rand.New(rand.NewPCG(1, 1))

	pick := sampling.ReactionPick{Subvolume: 0, Wrapper: fwd, Row: -1, Col: -1}
	require.NoError(t, Apply(m, dm, queue, pick, rng, 10.0))

	sv, _ := m.Subvolume(0)
	require.Equal(t, int64(99), sv.Population[0])
	require.Equal(t, int64(0), sv.Population[1])
	require.Equal(t, 1, queue.Len())

	e, ok := queue.PopEarliest()
	require.True(t, ok)
	require.InDelta(t, 15.0, e.Time, 1e-9)

	require.NoError(t, FireDelayed(m, dm, e))
	require.Equal(t, int64(99), sv.Population[0])
	require.Equal(t, int64(1), sv.Population[1])
}

func TestApplyNonConsumingDelayDefersBothSteps(t *testing.T) {
	m, fwd := buildDelayModel(t, false)
	dm := grouping.NewDM()
	require.NoError(t, dm.Build(m))
	require.NoError(t, dm.Init(m))
	queue := NewDelayQueue()
	rng := rand.New(rand.NewPCG(1, 1))

	pick := sampling.ReactionPick{Subvolume: 0, Wrapper: fwd, Row: -1, Col: -1}
	require.NoError(t, Apply(m, dm, queue, pick, rng, 10.0))

	sv, _ := m.Subvolume(0)
	require.Equal(t, int64(100), sv.Population[0])
	require.Equal(t, int64(0), sv.Population[1])

	e, ok := queue.PopEarliest()
	require.True(t, ok)
	require.NoError(t, FireDelayed(m, dm, e))
	require.Equal(t, int64(99), sv.Population[0])
	require.Equal(t, int64(1), sv.Population[1])
}

func TestApplyDiffusionMovesOneUnitAndRefreshesBothSubvolumes(t *testing.T) {
	b := model.NewBuilder()
	a := b.AddSpecies(model.Species{ID: "A", Initial: 10, Diffuse: 1.0})
	b.AddReaction(model.Reaction{
		ID:        "decay",
		Reactants: []model.SpeciesReference{{Species: a, Stoich: 1}},
		Forward:   0.01,
	})
	m, err := b.Setup(8, 1, []int{2}, model.Periodic)
	require.NoError(t, err)
	m.SetPopulation(func(m *model.Model, out [][]int64) {
		out[0][0] = 10
		out[1][0] = 4
	})
	dm := grouping.NewDM()
	require.NoError(t, dm.Build(m))
	require.NoError(t, dm.Init(m))

	var diff model.WrapperID
	for _, w := range m.Wrappers() {
		if w.Kind == model.Diffuse {
			diff = w.Serial
		}
	}
	queue := NewDelayQueue()
	rng := rand.New(rand.NewPCG(2, 2))
	pick := sampling.ReactionPick{Subvolume: 0, Wrapper: diff, Row: -1, Col: -1}
	require.NoError(t, Apply(m, dm, queue, pick, rng, 0))

	sv0, _ := m.Subvolume(0)
	sv1, _ := m.Subvolume(1)
	require.Equal(t, int64(9), sv0.Population[0])
	require.Equal(t, int64(5), sv1.Population[0])
	// Both totals were refreshed: decay 0.0025*x plus diffusion 0.25*x,
	// for x = 9 in subvolume 0 and x = 5 in subvolume 1.
	require.InDelta(t, 2.2725, sv0.TotalPropensity, 1e-9)
	require.InDelta(t, 1.2625, sv1.TotalPropensity, 1e-9)
}

func TestApplyDetectsNegativePopulation(t *testing.T) {
	b := model.NewBuilder()
	a := b.AddSpecies(model.Species{ID: "A", Initial: 0})
	b.AddReaction(model.Reaction{
		ID:        "decay",
		Reactants: []model.SpeciesReference{{Species: a, Stoich: 1}},
		Forward:   0.01,
	})
	m, err := b.Setup(1, 0, nil, model.Periodic)
	require.NoError(t, err)
	m.SetPopulation(func(m *model.Model, out [][]int64) {
		out[0][0] = 0
	})
	dm := grouping.NewDM()
	require.NoError(t, dm.Build(m))
	require.NoError(t, dm.Init(m))

	var fwd model.WrapperID
	for _, w := range m.Wrappers() {
		if w.Kind == model.Forward {
			fwd = w.Serial
		}
	}
	queue := NewDelayQueue()
	rng := rand.New(rand.NewPCG(3, 3))
	pick := sampling.ReactionPick{Subvolume: 0, Wrapper: fwd, Row: -1, Col: -1}
	err = Apply(m, dm, queue, pick, rng, 0)
	require.Error(t, err)
	var negErr *NegativePopulationError
	require.ErrorAs(t, err, &negErr)
}
