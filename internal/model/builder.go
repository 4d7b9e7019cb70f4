// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package model

// Builder accumulates species and reactions before Setup freezes them into
// an immutable Model (spec §4.1 "Public operations: setup").
type Builder struct {
	species   []Species
	reactions []Reaction
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSpecies appends a species and returns its SpeciesID.
func (b *Builder) AddSpecies(s Species) SpeciesID {
	b.species = append(b.species, s)
	return SpeciesID(len(b.species) - 1)
}

// AddReaction appends a reaction and returns its ReactionID. Reactant and
// product reference lists are normalized (duplicate species within a role
// coalesced, empty roles become a reservoir reference) at Setup time, not
// here, so callers may add references in any order.
func (b *Builder) AddReaction(r Reaction) ReactionID {
	b.reactions = append(b.reactions, r)
	return ReactionID(len(b.reactions) - 1)
}

// normalizeRefs implements the §4.1 reaction normalization algorithm:
// coalesce references to the same species within one role by summing
// stoichiometries, in place, preserving first-occurrence order. An empty
// list becomes a single reservoir reference.
func normalizeRefs(refs []SpeciesReference) []SpeciesReference {
	if len(refs) == 0 {
		return []SpeciesReference{{Species: ReservoirSpecies, Stoich: 0, Reservoir: true}}
	}
	order := make([]SpeciesID, 0, len(refs))
	sums := make(map[SpeciesID]uint8, len(refs))
	for _, r := range refs {
		if r.Reservoir {
			continue
		}
		if _, ok := sums[r.Species]; !ok {
			order = append(order, r.Species)
		}
		sums[r.Species] += r.Stoich
	}
	if len(order) == 0 {
		return []SpeciesReference{{Species: ReservoirSpecies, Stoich: 0, Reservoir: true}}
	}
	out := make([]SpeciesReference, 0, len(order))
	for _, sid := range order {
		out = append(out, SpeciesReference{Species: sid, Stoich: sums[sid]})
	}
	return out
}

// Setup normalizes reactions, builds reaction wrappers (one per reaction
// direction, plus one per diffusive species when dims > 0), performs rate
// scaling, allocates all subvolumes, and computes neighbor links under the
// given boundary policy (spec §4.1). It fails if dims > 0 and any grid
// size is 0, if there are no reactions, or if boundary is not one of
// Periodic or Reflexive.
func (b *Builder) Setup(volume float64, dims int, gridSizes []int, boundary Boundary) (*Model, error) {
	if len(b.reactions) == 0 {
		return nil, &SetupError{Reason: "no reactions"}
	}
	if boundary != Periodic && boundary != Reflexive {
		return nil, &SetupError{Reason: "boundary must be periodic or reflexive"}
	}
	if dims > 0 {
		if len(gridSizes) != dims {
			return nil, &SetupError{Reason: "grid_sizes length must equal dims"}
		}
		for _, s := range gridSizes {
			if s <= 0 {
				return nil, &SetupError{Reason: "grid size must be > 0"}
			}
		}
	}

	nSub := 1
	for _, s := range gridSizes {
		nSub *= s
	}
	if dims == 0 {
		nSub = 1
	}
	vSub := subvolumeVolume(volume, nSub)
	h := diffusionStepLength(vSub, dims)

	reactions := make([]Reaction, len(b.reactions))
	copy(reactions, b.reactions)
	for i := range reactions {
		reactions[i].Reactants = normalizeRefs(reactions[i].Reactants)
		reactions[i].Products = normalizeRefs(reactions[i].Products)
		if reactions[i].Forward <= 0 {
			return nil, &NetworkError{Reaction: reactions[i].ID, Reason: "forward rate must be positive"}
		}
		if reactions[i].Reversible && reactions[i].Reverse <= 0 {
			return nil, &NetworkError{Reaction: reactions[i].ID, Reason: "reverse rate must be positive when reversible"}
		}
	}

	var wrappers []ReactionWrapper
	for rid := range reactions {
		r := &reactions[rid]
		wrappers = append(wrappers, ReactionWrapper{
			Kind:       Forward,
			Reaction:   ReactionID(rid),
			ScaledRate: scaleReactionRate(r.Forward, vSub, r.Reactants),
			HasDelay:   r.HasDelay,
			Delay:      r.Delay,
			Consuming:  r.Consuming,
		})
		if r.Reversible {
			wrappers = append(wrappers, ReactionWrapper{
				Kind:       Reverse,
				Reaction:   ReactionID(rid),
				ScaledRate: scaleReactionRate(r.Reverse, vSub, r.Products),
			})
		}
	}
	if dims > 0 {
		for sid, s := range b.species {
			if s.HasDiffusion() {
				wrappers = append(wrappers, ReactionWrapper{
					Kind:       Diffuse,
					Species:    SpeciesID(sid),
					ScaledRate: scaleDiffusionRate(s.Diffuse, h),
				})
			}
		}
	}
	for i := range wrappers {
		wrappers[i].Serial = WrapperID(i)
	}

	minRate := wrappers[0].ScaledRate
	for _, w := range wrappers {
		if w.ScaledRate < minRate {
			minRate = w.ScaledRate
		}
	}

	var neighbors [][]SubvolumeID
	if dims > 0 {
		neighbors = buildNeighbors(gridSizes, boundary)
	} else {
		neighbors = [][]SubvolumeID{nil}
	}

	nSpecies := len(b.species)
	subvolumes := make([]Subvolume, nSub)
	for i := range subvolumes {
		subvolumes[i] = Subvolume{
			Index:      SubvolumeID(i),
			Population: make([]int64, nSpecies),
			Neighbors:  neighbors[i],
		}
	}

	species := make([]Species, nSpecies)
	copy(species, b.species)

	return &Model{
		Volume:        volume,
		Dims:          dims,
		GridSizes:     append([]int(nil), gridSizes...),
		Boundary:      boundary,
		species:       species,
		reactions:     reactions,
		wrappers:      wrappers,
		subvolumes:    subvolumes,
		minScaledRate: minRate,
	}, nil
}
