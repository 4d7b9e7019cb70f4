// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

// Package config loads and validates the YAML run configuration cmd/pssa
// reads before constructing any engine (spec §6.2, §6.6).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// InitialPopulation selects which built-in population-initializer policy
// spreads each species' configured initial count across subvolumes (spec
// §6.2's initial_population option).
type InitialPopulation string

const (
	Distribute InitialPopulation = "distribute"
	Concentrate InitialPopulation = "concentrate"
	Multiply    InitialPopulation = "multiply"
)

// OutputFlag names one optional output stream (spec §6.4).
type OutputFlag string

const (
	Trajectory OutputFlag = "trajectory"
	Final      OutputFlag = "final"
	Timing     OutputFlag = "timing"
	TimePoints OutputFlag = "time_points"
	SpeciesIDs OutputFlag = "species_ids"
)

// Config is the full run configuration (spec §6.6's YAML schema).
type Config struct {
	Method            string            `yaml:"method"`
	Samples           int               `yaml:"samples"`
	TStart            float64           `yaml:"t_start"`
	TEnd              float64           `yaml:"t_end"`
	Dt                float64           `yaml:"dt"`
	GridDims          int               `yaml:"grid_dims"`
	GridSizes         []int             `yaml:"grid_sizes"`
	Boundary          string            `yaml:"boundary"`
	InitialPopulation InitialPopulation `yaml:"initial_population"`
	OutputFlags       []OutputFlag      `yaml:"output_flags"`
	SpeciesFilter     []string          `yaml:"species_filter"`
	Network           string            `yaml:"network"`
	OutDir            string            `yaml:"out_dir"`
	Seed              uint64            `yaml:"seed"`
}

// Load reads and parses a YAML config document from path. It does not
// validate; call Validate separately so callers can decide whether a
// validation failure is fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{Reason: "reading config file", Cause: err}
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ValidationError{Reason: "parsing config YAML", Cause: err}
	}
	return cfg, nil
}

var validMethods = map[string]bool{"dm": true, "pdm": true, "spdm": true, "pssacr": true}
var validBoundaries = map[string]bool{"periodic": true, "reflexive": true}
var validInitialPopulations = map[InitialPopulation]bool{
	Distribute: true, Concentrate: true, Multiply: true, "": true,
}
var validOutputFlags = map[OutputFlag]bool{
	Trajectory: true, Final: true, Timing: true, TimePoints: true, SpeciesIDs: true,
}

// Validate implements the Configuration-error taxonomy of spec §7: unknown
// method, conflicting output flags, non-positive samples, t_end <= t_start.
func (c *Config) Validate() error {
	if !validMethods[c.Method] {
		return &ValidationError{Reason: "unknown method " + quote(c.Method)}
	}
	if c.Samples <= 0 {
		return &ValidationError{Reason: "samples must be positive"}
	}
	if c.TEnd <= c.TStart {
		return &ValidationError{Reason: "t_end must be greater than t_start"}
	}
	if c.Dt <= 0 {
		return &ValidationError{Reason: "dt must be positive"}
	}
	if c.GridDims < 0 {
		return &ValidationError{Reason: "grid_dims must be non-negative"}
	}
	if c.GridDims > 0 && len(c.GridSizes) != c.GridDims {
		return &ValidationError{Reason: "grid_sizes length must equal grid_dims"}
	}
	if c.Boundary != "" && !validBoundaries[c.Boundary] {
		return &ValidationError{Reason: "boundary must be periodic or reflexive"}
	}
	if !validInitialPopulations[c.InitialPopulation] {
		return &ValidationError{Reason: "unknown initial_population " + quote(string(c.InitialPopulation))}
	}
	seen := make(map[OutputFlag]bool, len(c.OutputFlags))
	for _, f := range c.OutputFlags {
		if !validOutputFlags[f] {
			return &ValidationError{Reason: "unknown output_flag " + quote(string(f))}
		}
		if seen[f] {
			return &ValidationError{Reason: "duplicate output_flag " + quote(string(f))}
		}
		seen[f] = true
	}
	if c.Network == "" {
		return &ValidationError{Reason: "network path must be set"}
	}
	return nil
}

func quote(s string) string { return "\"" + s + "\"" }
