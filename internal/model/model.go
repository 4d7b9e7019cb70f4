// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

import "fmt"

// Model is the chemical network plus its spatial decomposition: an
// immutable network description (built once via Builder.Setup) and the
// subvolume grid, which is mutated every simulation step (spec §3.1,
// §4.1).
type Model struct {
	Volume    float64
	Dims      int
	GridSizes []int
	Boundary  Boundary

	species    []Species
	reactions  []Reaction
	wrappers   []ReactionWrapper
	subvolumes []Subvolume

	minScaledRate float64
}

// NSpecies returns the number of species in the network.
func (m *Model) NSpecies() int { return len(m.species) }

// NReactions returns the number of reaction templates in the network.
func (m *Model) NReactions() int { return len(m.reactions) }

// NWrappers returns the number of reaction wrappers bound to the grid.
func (m *Model) NWrappers() int { return len(m.wrappers) }

// NSubvolumes returns the number of subvolumes in the grid.
func (m *Model) NSubvolumes() int { return len(m.subvolumes) }

// MinScaledRate returns the smallest scaled rate across all wrappers,
// which sets the base of the composition-rejection bin exponent (spec
// §3.3).
func (m *Model) MinScaledRate() float64 { return m.minScaledRate }

// Species returns the species at index i, bounds-checked.
func (m *Model) Species(i SpeciesID) (Species, error) {
	if i < 0 || int(i) >= len(m.species) {
		return Species{}, fmt.Errorf("species index %d out of range [0,%d)", i, len(m.species))
	}
	return m.species[i], nil
}

// Reaction returns the reaction at index i, bounds-checked.
func (m *Model) Reaction(i ReactionID) (Reaction, error) {
	if i < 0 || int(i) >= len(m.reactions) {
		return Reaction{}, fmt.Errorf("reaction index %d out of range [0,%d)", i, len(m.reactions))
	}
	return m.reactions[i], nil
}

// ReactionWrapper returns a pointer to the wrapper at index i, bounds-
// checked. The pointer aliases Model's own arena; callers must not mutate
// wrapper fields other than through Model methods.
func (m *Model) ReactionWrapper(i WrapperID) (*ReactionWrapper, error) {
	if i < 0 || int(i) >= len(m.wrappers) {
		return nil, fmt.Errorf("wrapper index %d out of range [0,%d)", i, len(m.wrappers))
	}
	return &m.wrappers[i], nil
}

// Wrappers returns the full wrapper arena for iteration (e.g. by the
// grouping module, which needs to visit every wrapper once at setup).
func (m *Model) Wrappers() []ReactionWrapper {
	return m.wrappers
}

// Subvolume returns a pointer to the subvolume at index i, bounds-checked.
func (m *Model) Subvolume(i SubvolumeID) (*Subvolume, error) {
	if i < 0 || int(i) >= len(m.subvolumes) {
		return nil, fmt.Errorf("subvolume index %d out of range [0,%d)", i, len(m.subvolumes))
	}
	return &m.subvolumes[i], nil
}

// Subvolumes returns the full subvolume arena for iteration.
func (m *Model) Subvolumes() []Subvolume {
	return m.subvolumes
}

// PopulationInitializer produces population[subvolume][species] for a
// fresh run (spec §6.3).
type PopulationInitializer func(m *Model, out [][]int64)

// SetPopulation invokes fn to populate every subvolume's population
// vector (spec §4.1 "setPopulation").
func (m *Model) SetPopulation(fn PopulationInitializer) {
	out := make([][]int64, len(m.subvolumes))
	for i := range out {
		out[i] = make([]int64, len(m.species))
	}
	fn(m, out)
	for i := range m.subvolumes {
		copy(m.subvolumes[i].Population, out[i])
	}
}

// TotalPropensity returns the global total propensity, the sum of every
// subvolume's TotalPropensity (spec §3.2).
func (m *Model) TotalPropensity() float64 {
	var t float64
	for i := range m.subvolumes {
		t += m.subvolumes[i].TotalPropensity
	}
	return t
}

// Clone returns a copy of m with a fresh subvolume arena (populations
// copied, MethodState and TotalPropensity reset) so each sample can run
// its own independent, concurrently-mutated trajectory over the same
// immutable species/reaction/wrapper arenas (spec §5).
func (m *Model) Clone() *Model {
	subvolumes := make([]Subvolume, len(m.subvolumes))
	for i, sv := range m.subvolumes {
		subvolumes[i] = Subvolume{
			Index:      sv.Index,
			Population: append([]int64(nil), sv.Population...),
			Neighbors:  sv.Neighbors,
		}
	}
	return &Model{
		Volume:        m.Volume,
		Dims:          m.Dims,
		GridSizes:     m.GridSizes,
		Boundary:      m.Boundary,
		species:       m.species,
		reactions:     m.reactions,
		wrappers:      m.wrappers,
		subvolumes:    subvolumes,
		minScaledRate: m.minScaledRate,
	}
}
