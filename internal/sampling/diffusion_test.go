// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickNeighborReturnsOneOfTheNeighbors(t *testing.T) {
	m := buildTestModel(t)
	sv, err := m.Subvolume(0)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(1, 1))

	for i := 0; i < 20; i++ {
		n := PickNeighbor(sv, rng)
		found := false
		for _, nb := range sv.Neighbors {
			if nb == n {
				found = true
			}
		}
		require.True(t, found)
	}
}
