// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package grouping

import (
	"math"
	"math/rand/v2"
	"sort"
)

// crRetryCap bounds the rejection-sampling retries inside one bin before
// CR sampling is declared non-convergent (spec §4.3.5 step 3).
const crRetryCap = 100

// zeroBinExp is the sentinel bin exponent holding every item whose value
// is <= 0. Its sum is always 0, so it never contributes to a cumulative
// scan and is never selected.
const zeroBinExp = math.MinInt32

// crBin is one logarithmic bin: the running sum of its members' values
// and the keys of the members themselves, following the design note in
// spec §9 ("a map from bin exponent to { sum, vector<column_index> }").
type crBin struct {
	sum   float64
	items []int
}

// crSlot records where a key currently lives, for O(1) amortized removal
// on update (spec §9: "a parallel array ... holding (current_bin,
// slot_in_bin, current_value)").
type crSlot struct {
	exp   int
	pos   int
	value float64
}

// CRBins is a composition-rejection binned map over a set of integer-keyed
// values (spec §4.2.4). The same structure serves PSSACR's per-row π
// bins (keyed by column), per-subvolume Σ bins (keyed by row), and the
// global subvolume-total bins (keyed by subvolume index).
type CRBins struct {
	base  float64 // v_min, the minimum scaled rate across the whole network
	bins  map[int]*crBin
	index map[int]crSlot
	total float64
}

// NewCRBins returns an empty CRBins with the given bin base (v_min).
func NewCRBins(base float64) *CRBins {
	return &CRBins{
		base:  base,
		bins:  make(map[int]*crBin),
		index: make(map[int]crSlot),
	}
}

// Sum returns the sum of every value currently tracked.
func (b *CRBins) Sum() float64 {
	return b.total
}

func binExponent(value, base float64) int {
	if value <= 0 || base <= 0 {
		return zeroBinExp
	}
	return int(math.Floor(math.Log2(value / base)))
}

// Set inserts or updates the value for key, moving it between bins as
// needed (spec §9 "updateValue... O(1) amortized").
func (b *CRBins) Set(key int, value float64) {
	if old, ok := b.index[key]; ok {
		b.removeFromBin(key, old)
		b.total -= old.value
	}
	exp := binExponent(value, b.base)
	bn, ok := b.bins[exp]
	if !ok {
		bn = &crBin{}
		b.bins[exp] = bn
	}
	pos := len(bn.items)
	bn.items = append(bn.items, key)
	bn.sum += value
	b.index[key] = crSlot{exp: exp, pos: pos, value: value}
	b.total += value
}

// removeFromBin removes key from the bin it's currently recorded in,
// using swap-with-last to keep removal O(1).
func (b *CRBins) removeFromBin(key int, slot crSlot) {
	bn := b.bins[slot.exp]
	n := len(bn.items)
	last := bn.items[n-1]
	bn.items[slot.pos] = last
	bn.items = bn.items[:n-1]
	if last != key {
		ls := b.index[last]
		ls.pos = slot.pos
		b.index[last] = ls
	}
	bn.sum -= slot.value
	delete(b.index, key)
}

// Value returns the currently tracked value for key, and whether key is
// tracked at all.
func (b *CRBins) Value(key int) (float64, bool) {
	s, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return s.value, true
}

// Sample draws a key proportional to its tracked value using the CR
// primitive of spec §4.3.5: a linear cumulative scan over bins to find
// the containing bin, then rejection sampling within that bin. Returns
// ok=false if the total is non-positive (nothing to sample) or if
// rejection sampling fails to converge within the retry cap (spec §4.4.6,
// a fatal runtime error to the caller).
func (b *CRBins) Sample(rng *rand.Rand) (key int, ok bool) {
	if b.total <= 0 {
		return 0, false
	}
	exps := make([]int, 0, len(b.bins))
	for e, bn := range b.bins {
		if bn.sum > 0 {
			exps = append(exps, e)
		}
	}
	if len(exps) == 0 {
		return 0, false
	}
	sort.Ints(exps)

	r := rng.Float64() * b.total
	var chosenExp int
	var chosen *crBin
	acc := 0.0
	for _, e := range exps {
		bn := b.bins[e]
		acc += bn.sum
		if r < acc {
			chosenExp = e
			chosen = bn
			break
		}
	}
	if chosen == nil {
		// Rounding overshoot: fall back to the last bin (spec §4.3.5,
		// §9 "source quirks to preserve").
		chosenExp = exps[len(exps)-1]
		chosen = b.bins[chosenExp]
	}

	vref := b.base * math.Exp2(float64(chosenExp+1))
	for attempt := 0; attempt < crRetryCap; attempt++ {
		idx := rng.IntN(len(chosen.items))
		k := chosen.items[idx]
		val := b.index[k].value
		rp := rng.Float64() * vref
		if rp < val {
			return k, true
		}
	}
	return 0, false
}
