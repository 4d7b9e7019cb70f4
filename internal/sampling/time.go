// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"math"
	"math/rand/v2"
)

// NextEventTime draws the time of the next instantaneous reaction,
// interleaving any queued delayed reactions that fire first (spec
// §4.3.1). totalPropensity reports the network's current total
// propensity and must reflect any state change made by fireDelay.
// peekDelay reports the firing time of the earliest queued delayed
// reaction, if any. fireDelay applies it (consuming it from the queue)
// and is called once per delayed reaction that fires during the walk.
//
// absorbing is true only when the total propensity is zero and no
// delayed reaction remains queued; the run must terminate.
func NextEventTime(now float64, rng *rand.Rand, totalPropensity func() float64, peekDelay func() (float64, bool), fireDelay func()) (t float64, absorbing bool) {
	u := 1 - rng.Float64() // (0,1]

	t2, hasDelay := peekDelay()
	if !hasDelay {
		a := totalPropensity()
		if a <= 0 {
			return 0, true
		}
		return now - math.Log(u)/a, false
	}

	t1 := now
	var atPrev float64
	for {
		a := totalPropensity()
		at := atPrev + a*(t2-t1)
		if 1-math.Exp(-at) < u {
			fireDelay()
			t1 = t2
			atPrev = at
			nt, ok := peekDelay()
			if !ok {
				a = totalPropensity()
				if a <= 0 {
					return 0, true
				}
				return t1 - (math.Log(1-u)+atPrev)/a, false
			}
			t2 = nt
			continue
		}
		return t1 - (math.Log(1-u)+atPrev)/a, false
	}
}
