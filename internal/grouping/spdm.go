// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package grouping

import "github.com/pssago/pssa/internal/model"

// SPDM is PDM with a per-subvolume row and column permutation that is
// adjusted after every firing so that frequently-firing rows and slots
// migrate toward the front of the scan order (spec §4.2.3, §4.4.5). It
// reuses PDM's static jagged matrix and propensity bookkeeping entirely;
// Build is inherited unchanged.
type SPDM struct {
	*PDM
}

// NewSPDM returns a new SPDM grouper.
func NewSPDM() *SPDM {
	return &SPDM{PDM: NewPDM()}
}

// spdmState extends pdmState with the row and per-row column permutation
// and their inverse position indices.
type spdmState struct {
	pi     [][]float64
	lambda []float64

	rowPerm []int // rowPerm[pos] = row
	rowPos  []int // rowPos[row] = pos

	colPerm [][]int // colPerm[row][pos] = slot
	colPos  [][]int // colPos[row][slot] = pos
}

// Init implements Grouper, building the initial identity permutation
// alongside the usual partial-propensity values.
func (s *SPDM) Init(m *model.Model) error {
	for i := range m.Subvolumes() {
		sv, _ := m.Subvolume(model.SubvolumeID(i))
		st := &spdmState{
			pi:      make([][]float64, len(s.rows)),
			lambda:  make([]float64, len(s.rows)),
			rowPerm: make([]int, len(s.rows)),
			rowPos:  make([]int, len(s.rows)),
			colPerm: make([][]int, len(s.rows)),
			colPos:  make([][]int, len(s.rows)),
		}
		var total float64
		for row := range s.rows {
			n := len(s.rows[row].slots)
			st.pi[row] = make([]float64, n)
			st.colPerm[row] = make([]int, n)
			st.colPos[row] = make([]int, n)
			var piSum float64
			for slot, sl := range s.rows[row].slots {
				v := s.slotPi(m, sl, sv.Population)
				st.pi[row][slot] = v
				piSum += v
				st.colPerm[row][slot] = slot
				st.colPos[row][slot] = slot
			}
			st.lambda[row] = s.xFactor(row, sv.Population) * piSum
			total += st.lambda[row]
			st.rowPerm[row] = row
			st.rowPos[row] = row
		}
		sv.MethodState = st
		sv.TotalPropensity = total
	}
	return nil
}

// Refresh implements Grouper; the permutation itself is untouched here,
// only adjusted explicitly via AdjustPermutation after a firing.
func (s *SPDM) Refresh(m *model.Model, svID model.SubvolumeID, firedBy model.WrapperID) error {
	sv, err := m.Subvolume(svID)
	if err != nil {
		return err
	}
	st, ok := sv.MethodState.(*spdmState)
	if !ok {
		return errNotInitialized
	}
	w, err := m.ReactionWrapper(firedBy)
	if err != nil {
		return err
	}

	affected := make(map[int]bool)
	for _, sp := range changedSpecies(m, w) {
		affected[rowOf(sp)] = true
		for _, rs := range s.speciesDeps[sp] {
			v := s.slotPi(m, s.rows[rs.row].slots[rs.slot], sv.Population)
			st.pi[rs.row][rs.slot] = v
			affected[rs.row] = true
		}
	}

	var delta float64
	for row := range affected {
		var piSum float64
		for _, v := range st.pi[row] {
			piSum += v
		}
		newLambda := s.xFactor(row, sv.Population) * piSum
		delta += newLambda - st.lambda[row]
		st.lambda[row] = newLambda
	}
	sv.TotalPropensity += delta
	return nil
}

// AdjustPermutation implements PermutationAdjuster: the row and slot a
// firing was sampled from each move one step toward the front of their
// permutation (spec §4.4.5). At position 0 this is a no-op, which is
// expected and not an error.
func (s *SPDM) AdjustPermutation(sv *model.Subvolume, row, slot int) {
	st := sv.MethodState.(*spdmState)

	if pos := st.rowPos[row]; pos > 0 {
		other := st.rowPerm[pos-1]
		st.rowPerm[pos-1], st.rowPerm[pos] = row, other
		st.rowPos[row], st.rowPos[other] = pos-1, pos
	}
	if pos := st.colPos[row][slot]; pos > 0 {
		other := st.colPerm[row][pos-1]
		st.colPerm[row][pos-1], st.colPerm[row][pos] = slot, other
		st.colPos[row][slot], st.colPos[row][other] = pos-1, pos
	}
}

// RowOrder returns the row scan order (front-to-back) for a subvolume.
func (s *SPDM) RowOrder(sv *model.Subvolume) []int {
	return sv.MethodState.(*spdmState).rowPerm
}

// ColOrder returns the slot scan order (front-to-back) for a row.
func (s *SPDM) ColOrder(sv *model.Subvolume, row int) []int {
	return sv.MethodState.(*spdmState).colPerm[row]
}

// RowLambda returns a subvolume's current lambda value for a row.
func (s *SPDM) RowLambda(sv *model.Subvolume, row int) float64 {
	return sv.MethodState.(*spdmState).lambda[row]
}

// SlotPi returns a subvolume's current partial propensity for a slot.
func (s *SPDM) SlotPi(sv *model.Subvolume, row, slot int) float64 {
	return sv.MethodState.(*spdmState).pi[row][slot]
}
