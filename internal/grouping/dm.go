// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package grouping

import "github.com/pssago/pssa/internal/model"

// DM implements the flat-propensity-vector grouping of Gillespie's Direct
// Method (spec §4.2.1).
type DM struct {
	deps map[model.WrapperID][]model.WrapperID
}

// NewDM returns a new DM grouper.
func NewDM() *DM {
	return &DM{}
}

// dmState is the per-subvolume propensity cache for DM.
type dmState struct {
	propensity []float64
}

// Build implements Grouper.
func (d *DM) Build(m *model.Model) error {
	speciesToWrappers := make(map[model.SpeciesID][]model.WrapperID)
	wrappers := m.Wrappers()
	for i := range wrappers {
		w := &wrappers[i]
		for _, s := range changedSpecies(m, w) {
			speciesToWrappers[s] = append(speciesToWrappers[s], w.Serial)
		}
	}
	d.deps = make(map[model.WrapperID][]model.WrapperID, len(wrappers))
	for i := range wrappers {
		w := &wrappers[i]
		seen := make(map[model.WrapperID]bool)
		var dep []model.WrapperID
		for _, s := range changedSpecies(m, w) {
			for _, dw := range speciesToWrappers[s] {
				if !seen[dw] {
					seen[dw] = true
					dep = append(dep, dw)
				}
			}
		}
		d.deps[w.Serial] = dep
	}
	return nil
}

// Init implements Grouper.
func (d *DM) Init(m *model.Model) error {
	wrappers := m.Wrappers()
	for i := range m.Subvolumes() {
		sv, _ := m.Subvolume(model.SubvolumeID(i))
		prop := make([]float64, len(wrappers))
		var total float64
		for wi := range wrappers {
			w := &wrappers[wi]
			prop[wi] = propensityFromReactants(w.ScaledRate, w.Reactants(m), sv.Population)
			total += prop[wi]
		}
		sv.MethodState = &dmState{propensity: prop}
		sv.TotalPropensity = total
	}
	return nil
}

// Refresh implements Grouper.
func (d *DM) Refresh(m *model.Model, svID model.SubvolumeID, firedBy model.WrapperID) error {
	sv, err := m.Subvolume(svID)
	if err != nil {
		return err
	}
	st, ok := sv.MethodState.(*dmState)
	if !ok {
		return errNotInitialized
	}
	var delta float64
	for _, wid := range d.deps[firedBy] {
		w, err := m.ReactionWrapper(wid)
		if err != nil {
			return err
		}
		newVal := propensityFromReactants(w.ScaledRate, w.Reactants(m), sv.Population)
		delta += newVal - st.propensity[wid]
		st.propensity[wid] = newVal
	}
	sv.TotalPropensity += delta
	return nil
}

// Propensity returns the current propensity of wrapper w in subvolume sv,
// for use by the DM Sampler.
func (d *DM) Propensity(sv *model.Subvolume, w model.WrapperID) float64 {
	st := sv.MethodState.(*dmState)
	return st.propensity[w]
}
