// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package main

import (
	"github.com/pssago/pssa/internal/config"
	"github.com/pssago/pssa/internal/model"
)

// populationInitializer builds the §6.3 population-initializer callback
// for one of the three built-in §6.2 initial_population policies: each
// species' configured Initial count is either split evenly across
// subvolumes (distribute), placed entirely in the middle subvolume
// (concentrate), or replicated in full into every subvolume (multiply).
// An empty/unrecognized kind defaults to distribute.
func populationInitializer(kind config.InitialPopulation) model.PopulationInitializer {
	return func(m *model.Model, out [][]int64) {
		n := len(out)
		if n == 0 {
			return
		}
		for i := 0; i < m.NSpecies(); i++ {
			sp, err := m.Species(model.SpeciesID(i))
			if err != nil {
				continue
			}
			switch kind {
			case config.Concentrate:
				out[n/2][i] = sp.Initial
			case config.Multiply:
				for sv := range out {
					out[sv][i] = sp.Initial
				}
			default: // config.Distribute, or unset
				share := sp.Initial / int64(n)
				remainder := sp.Initial % int64(n)
				for sv := range out {
					out[sv][i] = share
					if int64(sv) < remainder {
						out[sv][i]++
					}
				}
			}
		}
	}
}
