// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package engine

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"
)

// RunInfo is the original's SimulationInfo record, carried per engine:
// method, grid shape, sample index, timing window, RNG seed, and start
// wall-clock (spec SPEC_FULL §3.4). cmd/pssa fills one per sample and
// passes it to NewEngine, which keeps it as Engine.Info; Engine.Run logs
// its run ID and sample index. The output streams do not include it.
type RunInfo struct {
	RunID          uuid.UUID
	Sample         int
	Method         string
	GridDims       int
	GridSizes      []int
	Samples        int
	TStart, TEnd   float64
	Dt             float64
	Seed1, Seed2   uint64
	StartWallClock time.Time
}

// DeriveSeed computes the two uint64 seed words for sample's per-engine
// PRNG from the run ID, the sample index, and a wall-clock nonce (spec
// §5: "its seed is derived from a driver-supplied source (rank and
// clock)"). now is typically time.Now().UnixNano(), passed in rather
// than read internally so callers control determinism in tests.
func DeriveSeed(runID uuid.UUID, sample int, now int64) (uint64, uint64) {
	hi := binary.BigEndian.Uint64(runID[0:8])
	lo := binary.BigEndian.Uint64(runID[8:16])
	seed1 := hi ^ uint64(sample)*0x9E3779B97F4A7C15
	seed2 := lo ^ uint64(now) ^ uint64(sample)*0xBF58476D1CE4E5B9
	return seed1, seed2
}
