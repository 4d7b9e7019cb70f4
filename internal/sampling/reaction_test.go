// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pssago/pssa/internal/grouping"
)

func TestDMSamplerPicksValidWrapper(t *testing.T) {
	m := buildTestModel(t)
	dm := grouping.NewDM()
	require.NoError(t, dm.Build(m))
	require.NoError(t, dm.Init(m))
	s := &DMSampler{DM: dm}
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		sv, ok := s.PickSubvolume(m, rng)
		require.True(t, ok)
		pick, ok := s.PickReaction(m, sv, rng)
		require.True(t, ok)
		require.GreaterOrEqual(t, int(pick.Wrapper), 0)
		require.Less(t, int(pick.Wrapper), m.NWrappers())
		require.Equal(t, -1, pick.Row)
	}
}

func TestPDMSamplerPicksValidWrapper(t *testing.T) {
	m := buildTestModel(t)
	pdm := grouping.NewPDM()
	require.NoError(t, pdm.Build(m))
	require.NoError(t, pdm.Init(m))
	s := &PDMSampler{PDM: pdm}
	rng := rand.New(rand.NewPCG(5, 6))

	for i := 0; i < 100; i++ {
		sv, ok := s.PickSubvolume(m, rng)
		require.True(t, ok)
		pick, ok := s.PickReaction(m, sv, rng)
		require.True(t, ok)
		require.GreaterOrEqual(t, int(pick.Wrapper), 0)
		require.Less(t, int(pick.Wrapper), m.NWrappers())
	}
}

func TestSPDMSamplerPicksValidWrapperAndPermutes(t *testing.T) {
	m := buildTestModel(t)
	spdm := grouping.NewSPDM()
	require.NoError(t, spdm.Build(m))
	require.NoError(t, spdm.Init(m))
	s := &SPDMSampler{SPDM: spdm}
	rng := rand.New(rand.NewPCG(7, 8))

	sv, ok := s.PickSubvolume(m, rng)
	require.True(t, ok)
	pick, ok := s.PickReaction(m, sv, rng)
	require.True(t, ok)

	svp, err := m.Subvolume(sv)
	require.NoError(t, err)
	spdm.AdjustPermutation(svp, pick.Row, pick.Col)
}

func TestPSSACRSamplerPicksValidWrapper(t *testing.T) {
	m := buildTestModel(t)
	p := grouping.NewPSSACR()
	require.NoError(t, p.Build(m))
	require.NoError(t, p.Init(m))
	s := &PSSACRSampler{PSSACR: p}
	rng := rand.New(rand.NewPCG(9, 10))

	for i := 0; i < 100; i++ {
		sv, ok := s.PickSubvolume(m, rng)
		require.True(t, ok)
		pick, ok := s.PickReaction(m, sv, rng)
		require.True(t, ok)
		require.GreaterOrEqual(t, int(pick.Wrapper), 0)
		require.Less(t, int(pick.Wrapper), m.NWrappers())
	}
}
