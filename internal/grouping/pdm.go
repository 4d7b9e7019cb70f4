// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package grouping

import "github.com/pssago/pssa/internal/model"

// pdmSlot is one entry of the jagged partial-propensity matrix: the
// wrapper it belongs to, and the reactant multiset left over once one
// occurrence of the slot's row species has been set aside (spec §4.2.2).
// A reactant with stoichiometry k contributes k slots to its row, one per
// occurrence.
type pdmSlot struct {
	wrapper   model.WrapperID
	remaining []model.SpeciesReference
}

type pdmRow struct {
	slots []pdmSlot
}

type rowSlot struct {
	row, slot int
}

// PDM implements the jagged partial-propensity matrix grouping of the
// Partial-Propensity Direct Method (spec §4.2.2). Row 0 holds reservoir
// (zeroth-order) reaction slots; row i+1 holds the slots for species i.
type PDM struct {
	rows []pdmRow
	// speciesDeps maps a species to every slot whose partial propensity
	// is a function of that species' population (i.e. it appears in the
	// slot's "remaining" multiset).
	speciesDeps map[model.SpeciesID][]rowSlot
}

// NewPDM returns a new PDM grouper.
func NewPDM() *PDM {
	return &PDM{}
}

// pdmState is the per-subvolume partial-propensity cache.
type pdmState struct {
	pi     [][]float64 // pi[row][slot]
	lambda []float64   // lambda[row]
}

func (p *PDM) numRows(m *model.Model) int {
	return m.NSpecies() + 1
}

func (p *PDM) xFactor(row int, pop []int64) float64 {
	if row == reservoirRow {
		return 1
	}
	return float64(pop[row-1])
}

// Build implements Grouper.
func (p *PDM) Build(m *model.Model) error {
	nRows := p.numRows(m)
	p.rows = make([]pdmRow, nRows)
	p.speciesDeps = make(map[model.SpeciesID][]rowSlot)

	wrappers := m.Wrappers()
	for wi := range wrappers {
		w := &wrappers[wi]
		refs := w.Reactants(m)
		for idx, r := range refs {
			row := reservoirRow
			occurrences := 1
			if !r.Reservoir {
				row = rowOf(r.Species)
				occurrences = int(r.Stoich)
			}
			remaining := removeOneOccurrence(refs, idx)
			for occ := 0; occ < occurrences; occ++ {
				slotIdx := len(p.rows[row].slots)
				p.rows[row].slots = append(p.rows[row].slots, pdmSlot{
					wrapper:   w.Serial,
					remaining: remaining,
				})
				for _, rr := range remaining {
					if rr.Reservoir {
						continue
					}
					p.speciesDeps[rr.Species] = append(p.speciesDeps[rr.Species], rowSlot{row: row, slot: slotIdx})
				}
			}
		}
	}
	return nil
}

func (p *PDM) slotPi(m *model.Model, slot pdmSlot, pop []int64) float64 {
	w, _ := m.ReactionWrapper(slot.wrapper)
	return propensityFromReactants(w.ScaledRate, slot.remaining, pop)
}

// Init implements Grouper.
func (p *PDM) Init(m *model.Model) error {
	for i := range m.Subvolumes() {
		sv, _ := m.Subvolume(model.SubvolumeID(i))
		st := &pdmState{
			pi:     make([][]float64, len(p.rows)),
			lambda: make([]float64, len(p.rows)),
		}
		var total float64
		for row := range p.rows {
			st.pi[row] = make([]float64, len(p.rows[row].slots))
			var piSum float64
			for s, slot := range p.rows[row].slots {
				v := p.slotPi(m, slot, sv.Population)
				st.pi[row][s] = v
				piSum += v
			}
			st.lambda[row] = p.xFactor(row, sv.Population) * piSum
			total += st.lambda[row]
		}
		sv.MethodState = st
		sv.TotalPropensity = total
	}
	return nil
}

// Refresh implements Grouper.
func (p *PDM) Refresh(m *model.Model, svID model.SubvolumeID, firedBy model.WrapperID) error {
	sv, err := m.Subvolume(svID)
	if err != nil {
		return err
	}
	st, ok := sv.MethodState.(*pdmState)
	if !ok {
		return errNotInitialized
	}
	w, err := m.ReactionWrapper(firedBy)
	if err != nil {
		return err
	}

	affected := make(map[int]bool)
	for _, s := range changedSpecies(m, w) {
		affected[rowOf(s)] = true
		for _, rs := range p.speciesDeps[s] {
			v := p.slotPi(m, p.rows[rs.row].slots[rs.slot], sv.Population)
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
		newLambda := p.xFactor(row, sv.Population) * piSum
		delta += newLambda - st.lambda[row]
		st.lambda[row] = newLambda
	}
	sv.TotalPropensity += delta
	return nil
}

// NumRows returns the number of rows in the partial-propensity matrix
// (nSpecies + 1, row 0 being the reservoir row).
func (p *PDM) NumRows() int {
	return len(p.rows)
}

// RowSlotCount returns the number of slots in a row.
func (p *PDM) RowSlotCount(row int) int {
	return len(p.rows[row].slots)
}

// SlotWrapper returns the wrapper a given (row, slot) belongs to.
func (p *PDM) SlotWrapper(row, slot int) model.WrapperID {
	return p.rows[row].slots[slot].wrapper
}

// RowLambda returns a subvolume's current lambda value for a row.
func (p *PDM) RowLambda(sv *model.Subvolume, row int) float64 {
	return sv.MethodState.(*pdmState).lambda[row]
}

// SlotPi returns a subvolume's current partial propensity for a slot.
func (p *PDM) SlotPi(sv *model.Subvolume, row, slot int) float64 {
	return sv.MethodState.(*pdmState).pi[row][slot]
}
