// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package engine

import (
	"fmt"

	"github.com/pssago/pssa/internal/grouping"
	"github.com/pssago/pssa/internal/sampling"
)

// Method bundles the Grouper and Sampler pairing for one of the four
// algorithm variants (spec §4.5). The consuming/producing/delay logic
// in internal/update is shared unchanged across all four; only the
// propensity bookkeeping behind Grouper/Sampler differs.
type Method struct {
	Name    string
	Grouper grouping.Grouper
	Sampler sampling.Sampler
}

// NewMethod constructs the Grouper+Sampler pair for one of "dm", "pdm",
// "spdm", "pssacr" (case-sensitive, matching the config schema's
// lowercase method field).
func NewMethod(name string) (Method, error) {
	switch name {
	case "dm":
		dm := grouping.NewDM()
		return Method{Name: name, Grouper: dm, Sampler: &sampling.DMSampler{DM: dm}}, nil
	case "pdm":
		pdm := grouping.NewPDM()
		return Method{Name: name, Grouper: pdm, Sampler: &sampling.PDMSampler{PDM: pdm}}, nil
	case "spdm":
		spdm := grouping.NewSPDM()
		return Method{Name: name, Grouper: spdm, Sampler: &sampling.SPDMSampler{SPDM: spdm}}, nil
	case "pssacr":
		cr := grouping.NewPSSACR()
		return Method{Name: name, Grouper: cr, Sampler: &sampling.PSSACRSampler{PSSACR: cr}}, nil
	default:
		return Method{}, fmt.Errorf("engine: unknown method %q", name)
	}
}
