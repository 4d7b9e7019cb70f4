// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildNeighborsPeriodic1D(t *testing.T) {
	nb := buildNeighbors([]int{4}, Periodic)
	require.Equal(t, []SubvolumeID{3, 1}, nb[0])
	require.Equal(t, []SubvolumeID{2, 0}, nb[3])
}

func TestBuildNeighborsReflexive1D(t *testing.T) {
	nb := buildNeighbors([]int{4}, Reflexive)
	require.Equal(t, []SubvolumeID{0, 1}, nb[0])
	require.Equal(t, []SubvolumeID{2, 3}, nb[3])
}

func TestBuildNeighbors2D(t *testing.T) {
	// 2x3 grid, row-major: index = x0*3 + x1
	nb := buildNeighbors([]int{2, 3}, Periodic)
	require.Len(t, nb, 6)
	// subvolume (0,0) == index 0
	got := nb[0]
	require.Len(t, got, 4)
	// axis0 prev/next: (1,0)=3, (1,0)=3 (periodic wrap of size 2)
	require.Equal(t, SubvolumeID(3), got[0])
	require.Equal(t, SubvolumeID(3), got[1])
	// axis1 prev/next: (0,2)=2, (0,1)=1
	require.Equal(t, SubvolumeID(2), got[2])
	require.Equal(t, SubvolumeID(1), got[3])
}

func TestCoordsIndexRoundTrip(t *testing.T) {
	sizes := []int{3, 4, 2}
	for i := 0; i < 24; i++ {
		c := indexToCoords(i, sizes)
		require.Equal(t, i, coordsToIndex(c, sizes))
	}
}
