// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"math/rand/v2"

	"github.com/pssago/pssa/internal/model"
)

// PickNeighbor chooses one of a subvolume's 2*d neighbor directions
// uniformly at random, the destination of a fired Diffuse wrapper (spec
// §4.2.1, §4.3.4: "the 2d directions share the same factor and are
// selected uniformly at sampling time").
func PickNeighbor(sv *model.Subvolume, rng *rand.Rand) model.SubvolumeID {
	return sv.Neighbors[rng.IntN(len(sv.Neighbors))]
}
