// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"math/rand/v2"

	"github.com/pssago/pssa/internal/grouping"
)

// SampleCR draws a key from a CRBins instance proportional to its tracked
// value. This is the lone primitive PSSACRSampler is built from, exposed
// separately here (rather than only through the grouping package) so it
// can be exercised and tested in isolation as "the" composition-rejection
// sampling step named in spec §4.3.5.
func SampleCR(b *grouping.CRBins, rng *rand.Rand) (int, bool) {
	return b.Sample(rng)
}
