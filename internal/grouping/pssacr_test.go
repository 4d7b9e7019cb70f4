// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package grouping

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pssago/pssa/internal/model"
)

func TestPSSACRInitMatchesSubvolumeTotals(t *testing.T) {
	m := buildTestModel(t)
	p := NewPSSACR()
	require.NoError(t, p.Build(m))
	require.NoError(t, p.Init(m))

	for i := 0; i < m.NSubvolumes(); i++ {
		sv, _ := m.Subvolume(model.SubvolumeID(i))
		v, ok := p.SubvolumeBins().Value(i)
		require.True(t, ok)
		require.InDelta(t, sv.TotalPropensity, v, 1e-9)
	}
	require.InDelta(t, m.TotalPropensity(), p.SubvolumeBins().Sum(), 1e-9)
}

func TestPSSACRRefreshKeepsSubvolumeBinsConsistent(t *testing.T) {
	m := buildTestModel(t)
	p := NewPSSACR()
	require.NoError(t, p.Build(m))
	require.NoError(t, p.Init(m))

	sv, err := m.Subvolume(0)
	require.NoError(t, err)

	var fwd model.WrapperID
	for _, w := range m.Wrappers() {
		if w.Kind == model.Forward {
			fwd = w.Serial
		}
	}
	sv.Population[0] -= 2
	sv.Population[1]++
	require.NoError(t, p.Refresh(m, 0, fwd))

	v, ok := p.SubvolumeBins().Value(0)
	require.True(t, ok)
	require.InDelta(t, sv.TotalPropensity, v, 1e-9)
}

func TestPSSACRSampleDrawsValidSubvolume(t *testing.T) {
	m := buildTestModel(t)
	p := NewPSSACR()
	require.NoError(t, p.Build(m))
	require.NoError(t, p.Init(m))

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		key, ok := p.SubvolumeBins().Sample(rng)
		require.True(t, ok)
		require.GreaterOrEqual(t, key, 0)
		require.Less(t, key, m.NSubvolumes())
	}
}
