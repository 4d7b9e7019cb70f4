// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package output

// SpeciesIDsWriter emits one species identifier per line, in model order
// (spec §6.4), so downstream tooling can label the comma-separated
// columns of the trajectory and final-population streams.
type SpeciesIDsWriter struct {
	*writer
}

// OpenSpeciesIDs creates (or truncates) the species-IDs file at path.
func OpenSpeciesIDs(path string) (*SpeciesIDsWriter, error) {
	w, err := openWriter(path)
	if err != nil {
		return nil, err
	}
	return &SpeciesIDsWriter{writer: w}, nil
}

// WriteAll appends one line per species id, in order.
func (s *SpeciesIDsWriter) WriteAll(ids []string) error {
	for _, id := range ids {
		if err := s.writeLine(id); err != nil {
			return err
		}
	}
	return nil
}
