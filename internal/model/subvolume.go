// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

// SubvolumeID is the index of a Subvolume in a Model's subvolume arena,
// in row-major lattice order.
type SubvolumeID int

// Boundary selects the neighbor-wrap policy for the subvolume lattice.
type Boundary int

const (
	Periodic Boundary = iota
	Reflexive
)

// Subvolume is one cell of the grid: its population vector, its 2*d
// neighbor indices, and an opaque per-method propensity cache owned by
// whichever Grouper implementation is active (spec §3.1; the C++ original
// subclasses Subvolume per method, a systems-language port keeps one
// concrete Subvolume type and lets each Grouper stash its own state here
// instead).
type Subvolume struct {
	Index      SubvolumeID
	Population []int64 // one count per species
	Neighbors  []SubvolumeID // length 2*d, ordered (axis0 prev, axis0 next, axis1 prev, ...)

	TotalPropensity float64

	// MethodState is set by Grouper.Init and read back by the same
	// Grouper's Refresh/Sampler implementation; nil until Init runs.
	MethodState any
}

// neighborIndex computes the subvolume index reached from subscript coords
// by moving one step along axis in the given direction (-1 or +1), under
// the given boundary policy and grid sizes (spec §4.1 "Neighbor
// computation").
func neighborIndex(coords []int, axis, dir int, sizes []int, boundary Boundary) []int {
	out := make([]int, len(coords))
	copy(out, coords)
	n := sizes[axis]
	x := coords[axis] + dir
	switch boundary {
	case Periodic:
		x = ((x % n) + n) % n
	case Reflexive:
		if x < 0 {
			x = 0
		} else if x >= n {
			x = n - 1
		}
	}
	out[axis] = x
	return out
}

// coordsToIndex converts row-major subscript coordinates to a flat
// subvolume index.
func coordsToIndex(coords []int, sizes []int) int {
	idx := 0
	for i, c := range coords {
		idx = idx*sizes[i] + c
	}
	return idx
}

// indexToCoords is the inverse of coordsToIndex.
func indexToCoords(idx int, sizes []int) []int {
	coords := make([]int, len(sizes))
	for i := len(sizes) - 1; i >= 0; i-- {
		coords[i] = idx % sizes[i]
		idx /= sizes[i]
	}
	return coords
}

// buildNeighbors computes the Neighbors slice for every subvolume in the
// lattice described by sizes and boundary. dims is len(sizes); for dims
// == 0 every subvolume has no neighbors.
func buildNeighbors(sizes []int, boundary Boundary) [][]SubvolumeID {
	dims := len(sizes)
	n := 1
	for _, s := range sizes {
		n *= s
	}
	out := make([][]SubvolumeID, n)
	if dims == 0 {
		out[0] = nil
		return out
	}
	for i := 0; i < n; i++ {
		coords := indexToCoords(i, sizes)
		nb := make([]SubvolumeID, 0, 2*dims)
		for axis := 0; axis < dims; axis++ {
			prev := neighborIndex(coords, axis, -1, sizes, boundary)
			next := neighborIndex(coords, axis, 1, sizes, boundary)
			nb = append(nb, SubvolumeID(coordsToIndex(prev, sizes)),
				SubvolumeID(coordsToIndex(next, sizes)))
		}
		out[i] = nb
	}
	return out
}
