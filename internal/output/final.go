// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package output

// FinalWriter emits one line per completed trajectory: the same
// tab/comma subvolume-block layout as TrajectoryWriter, but exactly one
// line per sample rather than one per checkpoint (spec §6.4).
type FinalWriter struct {
	*writer
}

// OpenFinal creates (or truncates) the final-populations file at path.
func OpenFinal(path string) (*FinalWriter, error) {
	w, err := openWriter(path)
	if err != nil {
		return nil, err
	}
	return &FinalWriter{writer: w}, nil
}

// WriteFinal appends one line for a completed sample's final population.
func (f *FinalWriter) WriteFinal(populations [][]int64) error {
	return f.writeLine(formatBlocks(populations))
}
