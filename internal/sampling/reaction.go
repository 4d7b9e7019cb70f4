// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package sampling

import (
	"math/rand/v2"

	"github.com/pssago/pssa/internal/grouping"
	"github.com/pssago/pssa/internal/model"
)

// DMSampler draws from a DM grouper's flat propensity vector.
type DMSampler struct {
	DM *grouping.DM
}

// PickSubvolume implements Sampler.
func (s *DMSampler) PickSubvolume(m *model.Model, rng *rand.Rand) (model.SubvolumeID, bool) {
	return pickSubvolumeLinear(m, rng)
}

// PickReaction implements Sampler with a single linear cumulative scan
// over the subvolume's wrapper propensities (spec §4.3.2).
func (s *DMSampler) PickReaction(m *model.Model, svID model.SubvolumeID, rng *rand.Rand) (ReactionPick, bool) {
	sv, err := m.Subvolume(svID)
	if err != nil || sv.TotalPropensity <= 0 {
		return ReactionPick{}, false
	}
	r := rng.Float64() * sv.TotalPropensity
	acc := 0.0
	for wi := 0; wi < m.NWrappers(); wi++ {
		acc += s.DM.Propensity(sv, model.WrapperID(wi))
		if r < acc {
			return ReactionPick{Subvolume: svID, Wrapper: model.WrapperID(wi), Row: -1, Col: -1}, true
		}
	}
	// Rounding overshoot: fall back to the last nonzero wrapper.
	for wi := m.NWrappers() - 1; wi >= 0; wi-- {
		if s.DM.Propensity(sv, model.WrapperID(wi)) > 0 {
			return ReactionPick{Subvolume: svID, Wrapper: model.WrapperID(wi), Row: -1, Col: -1}, true
		}
	}
	return ReactionPick{}, false
}

// PDMSampler draws from a PDM grouper's jagged partial-propensity matrix
// with the two-stage row-then-slot scan of spec §4.3.3.
type PDMSampler struct {
	PDM *grouping.PDM
}

// PickSubvolume implements Sampler.
func (s *PDMSampler) PickSubvolume(m *model.Model, rng *rand.Rand) (model.SubvolumeID, bool) {
	return pickSubvolumeLinear(m, rng)
}

// PickReaction implements Sampler.
func (s *PDMSampler) PickReaction(m *model.Model, svID model.SubvolumeID, rng *rand.Rand) (ReactionPick, bool) {
	sv, err := m.Subvolume(svID)
	if err != nil || sv.TotalPropensity <= 0 {
		return ReactionPick{}, false
	}
	row, ok := pickByLambda(s.PDM, sv, rng)
	if !ok {
		return ReactionPick{}, false
	}
	slot, ok := pickSlotInRow(s.PDM, sv, row, rng)
	if !ok {
		return ReactionPick{}, false
	}
	return ReactionPick{Subvolume: svID, Wrapper: s.PDM.SlotWrapper(row, slot), Row: row, Col: slot}, true
}

func pickByLambda(p *grouping.PDM, sv *model.Subvolume, rng *rand.Rand) (int, bool) {
	if sv.TotalPropensity <= 0 {
		return 0, false
	}
	r := rng.Float64() * sv.TotalPropensity
	acc := 0.0
	last := -1
	for row := 0; row < p.NumRows(); row++ {
		l := p.RowLambda(sv, row)
		if l <= 0 {
			continue
		}
		last = row
		acc += l
		if r < acc {
			return row, true
		}
	}
	if last < 0 {
		return 0, false
	}
	return last, true
}

func pickSlotInRow(p *grouping.PDM, sv *model.Subvolume, row int, rng *rand.Rand) (int, bool) {
	n := p.RowSlotCount(row)
	if n == 0 {
		return 0, false
	}
	rowSum := p.RowLambda(sv, row)
	if rowSum <= 0 {
		return 0, false
	}
	// RowLambda = xFactor * sum(pi); recover sum(pi) to scale against,
	// since the slots themselves carry pi, not lambda.
	var piSum float64
	for slot := 0; slot < n; slot++ {
		piSum += p.SlotPi(sv, row, slot)
	}
	if piSum <= 0 {
		return 0, false
	}
	r := rng.Float64() * piSum
	acc := 0.0
	last := -1
	for slot := 0; slot < n; slot++ {
		v := p.SlotPi(sv, row, slot)
		if v <= 0 {
			continue
		}
		last = slot
		acc += v
		if r < acc {
			return slot, true
		}
	}
	if last < 0 {
		return 0, false
	}
	return last, true
}

// SPDMSampler draws from an SPDM grouper, scanning rows and slots in
// their current front-biased permutation order (spec §4.3.4, §4.4.5).
// The result is statistically identical to PDMSampler; the permutation
// only changes how quickly a hot wrapper is found, not what gets picked.
type SPDMSampler struct {
	SPDM *grouping.SPDM
}

// PickSubvolume implements Sampler.
func (s *SPDMSampler) PickSubvolume(m *model.Model, rng *rand.Rand) (model.SubvolumeID, bool) {
	return pickSubvolumeLinear(m, rng)
}

// PickReaction implements Sampler.
func (s *SPDMSampler) PickReaction(m *model.Model, svID model.SubvolumeID, rng *rand.Rand) (ReactionPick, bool) {
	sv, err := m.Subvolume(svID)
	if err != nil || sv.TotalPropensity <= 0 {
		return ReactionPick{}, false
	}
	r := rng.Float64() * sv.TotalPropensity
	acc := 0.0
	row := -1
	for _, candidate := range s.SPDM.RowOrder(sv) {
		l := s.SPDM.RowLambda(sv, candidate)
		if l <= 0 {
			continue
		}
		acc += l
		if r < acc {
			row = candidate
			break
		}
	}
	if row < 0 {
		return ReactionPick{}, false
	}

	var piSum float64
	order := s.SPDM.ColOrder(sv, row)
	for _, slot := range order {
		piSum += s.SPDM.SlotPi(sv, row, slot)
	}
	if piSum <= 0 {
		return ReactionPick{}, false
	}
	rc := rng.Float64() * piSum
	accc := 0.0
	col := -1
	for _, slot := range order {
		v := s.SPDM.SlotPi(sv, row, slot)
		if v <= 0 {
			continue
		}
		accc += v
		if rc < accc {
			col = slot
			break
		}
	}
	if col < 0 {
		col = order[len(order)-1]
	}
	return ReactionPick{Subvolume: svID, Wrapper: s.SPDM.SlotWrapper(row, col), Row: row, Col: col}, true
}

// PSSACRSampler draws from a PSSACR grouper's three layers of
// composition-rejection bins, each an O(1) amortized draw (spec §4.3.5).
type PSSACRSampler struct {
	PSSACR *grouping.PSSACR
}

// PickSubvolume implements Sampler using the lattice-spanning CRBins.
func (s *PSSACRSampler) PickSubvolume(m *model.Model, rng *rand.Rand) (model.SubvolumeID, bool) {
	key, ok := s.PSSACR.SubvolumeBins().Sample(rng)
	if !ok {
		return 0, false
	}
	return model.SubvolumeID(key), true
}

// PickReaction implements Sampler: CR-sample the subvolume's row bins,
// then CR-sample that row's slot bins.
func (s *PSSACRSampler) PickReaction(m *model.Model, svID model.SubvolumeID, rng *rand.Rand) (ReactionPick, bool) {
	sv, err := m.Subvolume(svID)
	if err != nil {
		return ReactionPick{}, false
	}
	row, ok := s.PSSACR.SigmaBins(sv).Sample(rng)
	if !ok {
		return ReactionPick{}, false
	}
	slot, ok := s.PSSACR.RowBins(sv, row).Sample(rng)
	if !ok {
		return ReactionPick{}, false
	}
	return ReactionPick{Subvolume: svID, Wrapper: s.PSSACR.SlotWrapper(row, slot), Row: row, Col: slot}, true
}
