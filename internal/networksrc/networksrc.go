// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

// Package networksrc produces a *model.Model from an external network
// description (spec §6.1): a native YAML document standing in for the
// out-of-scope SBML collaborator, or a programmatic builder callback for
// the benchmark/validation networks of spec §8.3.
package networksrc

import "github.com/pssago/pssa/internal/model"

// Model is the abstract network-source contract of spec §6.1: a
// compartment volume and dimensionality, an iterable of species, and an
// iterable of reactions. FromYAML builds one of these internally and
// funnels it through model.Builder; FromCallback drives model.Builder
// directly. Either way model.Builder performs reaction-reference
// normalization exactly once.
type Model interface {
	Volume() float64
	Dims() int
	GridSizes() []int
	Boundary() model.Boundary
	Species() []SpeciesDecl
	Reactions() []ReactionDecl
}

// SpeciesDecl is one species as reported by a network source (spec
// §6.1's "(id, initial_amount_int, diffusion_constant_or_none,
// constant_flag, boundary_flag)").
type SpeciesDecl struct {
	ID        string
	Initial   int64
	Diffusion float64
	Constant  bool
	Boundary  bool
}

// RefDecl is one stoichiometric reference by species id (spec §6.1's
// "(species_index, integer_stoichiometry)", here resolved by name instead
// of index since the native YAML schema names species).
type RefDecl struct {
	Species string
	Stoich  uint8
}

// ReactionDecl is one reaction as reported by a network source (spec
// §6.1's "(reversible_flag, forward_rate, reverse_rate_or_none,
// delay_or_none, consuming_delay_flag, reactant_refs, product_refs)").
type ReactionDecl struct {
	ID         string
	Reactants  []RefDecl
	Products   []RefDecl
	Forward    float64
	Reversible bool
	Reverse    float64
	HasDelay   bool
	Delay      float64
	Consuming  bool
}

// build funnels a Model's declarations through model.Builder, resolving
// species-id references to model.SpeciesID indices.
func build(src Model) (*model.Model, error) {
	b := model.NewBuilder()
	ids := make(map[string]model.SpeciesID, len(src.Species()))
	for _, s := range src.Species() {
		id := b.AddSpecies(model.Species{
			ID:       s.ID,
			Initial:  s.Initial,
			Diffuse:  s.Diffusion,
			Constant: s.Constant,
			Boundary: s.Boundary,
		})
		ids[s.ID] = id
	}

	resolve := func(refs []RefDecl) ([]model.SpeciesReference, error) {
		out := make([]model.SpeciesReference, 0, len(refs))
		for _, r := range refs {
			sid, ok := ids[r.Species]
			if !ok {
				return nil, &model.NetworkError{Reason: "unresolved species id " + r.Species}
			}
			out = append(out, model.SpeciesReference{Species: sid, Stoich: r.Stoich})
		}
		return out, nil
	}

	for _, r := range src.Reactions() {
		reactants, err := resolve(r.Reactants)
		if err != nil {
			return nil, err
		}
		products, err := resolve(r.Products)
		if err != nil {
			return nil, err
		}
		b.AddReaction(model.Reaction{
			ID:         r.ID,
			Reactants:  reactants,
			Products:   products,
			Forward:    r.Forward,
			Reversible: r.Reversible,
			Reverse:    r.Reverse,
			HasDelay:   r.HasDelay,
			Delay:      r.Delay,
			Consuming:  r.Consuming,
		})
	}

	return b.Setup(src.Volume(), src.Dims(), src.GridSizes(), src.Boundary())
}

// FromCallback builds a *model.Model directly via a model.Builder, for
// embedding the spec §8.3 benchmark/validation networks and test fixtures
// without going through a YAML document (mirrors libpssa's
// examples/validation/*.hpp hand-built C++ networks).
func FromCallback(volume float64, dims int, gridSizes []int, boundary model.Boundary, build func(*model.Builder) error) (*model.Model, error) {
	b := model.NewBuilder()
	if err := build(b); err != nil {
		return nil, err
	}
	return b.Setup(volume, dims, gridSizes, boundary)
}
