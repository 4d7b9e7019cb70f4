// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package networksrc

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pssago/pssa/internal/model"
)

// yamlRef is one stoichiometric reference in the native schema.
type yamlRef struct {
	Species string `yaml:"species"`
	Stoich  uint8  `yaml:"stoich"`
}

// yamlSpecies is one species declaration in the native schema.
type yamlSpecies struct {
	ID        string  `yaml:"id"`
	Initial   int64   `yaml:"initial"`
	Diffusion float64 `yaml:"diffusion"`
	Constant  bool    `yaml:"constant"`
	Boundary  bool    `yaml:"boundary"`
}

// yamlReaction is one reaction declaration in the native schema. Reverse
// and Delay are pointers so their absence (no reverse rate, no delay) is
// distinguishable from an explicit zero.
type yamlReaction struct {
	ID        string    `yaml:"id"`
	Reactants []yamlRef `yaml:"reactants"`
	Products  []yamlRef `yaml:"products"`
	Forward   float64   `yaml:"forward"`
	Reverse   *float64  `yaml:"reverse"`
	Delay     *float64  `yaml:"delay"`
	Consuming bool      `yaml:"consuming"`
}

// yamlDocument is the full native network document: compartment volume
// and spatial grid alongside the species and reaction lists (spec §6.1's
// network-input contract, §6.1.1's native substitute for SBML). It
// implements Model directly.
type yamlDocument struct {
	VolumeField    float64        `yaml:"volume"`
	DimsField      int            `yaml:"dims"`
	GridSizesField []int          `yaml:"grid_sizes"`
	BoundaryField  string         `yaml:"boundary"`
	SpeciesField   []yamlSpecies  `yaml:"species"`
	ReactionsField []yamlReaction `yaml:"reactions"`
}

func (d *yamlDocument) Volume() float64  { return d.VolumeField }
func (d *yamlDocument) Dims() int        { return d.DimsField }
func (d *yamlDocument) GridSizes() []int { return d.GridSizesField }

func (d *yamlDocument) Boundary() model.Boundary {
	if d.BoundaryField == "reflexive" {
		return model.Reflexive
	}
	return model.Periodic
}

func (d *yamlDocument) Species() []SpeciesDecl {
	out := make([]SpeciesDecl, len(d.SpeciesField))
	for i, s := range d.SpeciesField {
		out[i] = SpeciesDecl{
			ID:        s.ID,
			Initial:   s.Initial,
			Diffusion: s.Diffusion,
			Constant:  s.Constant,
			Boundary:  s.Boundary,
		}
	}
	return out
}

func (d *yamlDocument) Reactions() []ReactionDecl {
	out := make([]ReactionDecl, len(d.ReactionsField))
	for i, r := range d.ReactionsField {
		decl := ReactionDecl{
			ID:        r.ID,
			Reactants: toRefDecls(r.Reactants),
			Products:  toRefDecls(r.Products),
			Forward:   r.Forward,
			Consuming: r.Consuming,
		}
		if r.Reverse != nil {
			decl.Reversible = true
			decl.Reverse = *r.Reverse
		}
		if r.Delay != nil {
			decl.HasDelay = true
			decl.Delay = *r.Delay
		}
		out[i] = decl
	}
	return out
}

func toRefDecls(refs []yamlRef) []RefDecl {
	out := make([]RefDecl, len(refs))
	for i, r := range refs {
		out[i] = RefDecl{Species: r.Species, Stoich: r.Stoich}
	}
	return out
}

// FromYAML loads a native-schema network document from path (spec
// §6.1.1): species with id/initial/diffusion/constant/boundary, reactions
// with reactants/products/forward/reverse/delay/consuming.
func FromYAML(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.NetworkError{Reason: "reading network file: " + err.Error()}
	}
	doc := &yamlDocument{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, &model.NetworkError{Reason: "parsing network YAML: " + err.Error()}
	}
	return build(doc)
}
