// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package update

import (
	"fmt"

	"github.com/pssago/pssa/internal/model"
)

// NegativePopulationError reports a contract violation: an update drove
// a species population below zero (spec §4.4.6, fatal).
type NegativePopulationError struct {
	Subvolume model.SubvolumeID
	Species   model.SpeciesID
}

func (e *NegativePopulationError) Error() string {
	return fmt.Sprintf("update: species %d in subvolume %d went negative", e.Species, e.Subvolume)
}

// SamplingFailureError reports composition-rejection sampling failing to
// converge within its retry cap (spec §4.3.5, §4.4.6, fatal).
type SamplingFailureError struct {
	Subvolume model.SubvolumeID
}

func (e *SamplingFailureError) Error() string {
	return fmt.Sprintf("update: CR sampling did not converge in subvolume %d", e.Subvolume)
}
