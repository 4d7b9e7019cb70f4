// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package output

import "strconv"

// TrajectoryWriter emits one line per sampled time checkpoint: subvolume
// blocks separated by a tab, each block's species counts separated by
// commas, in model order (spec §6.4). Checkpoints are gated to at most
// one emission per Interval, mirroring xplot.go's decimate() pattern.
type TrajectoryWriter struct {
	*writer
	Interval float64
	last     float64
	wrote    bool
}

// OpenTrajectory creates (or truncates) the trajectory file at path.
func OpenTrajectory(path string, interval float64) (*TrajectoryWriter, error) {
	w, err := openWriter(path)
	if err != nil {
		return nil, err
	}
	return &TrajectoryWriter{writer: w, Interval: interval}, nil
}

// WriteCheckpoint appends one trajectory line for populations at time t,
// unless less than Interval has elapsed since the last emitted line.
func (t *TrajectoryWriter) WriteCheckpoint(now float64, populations [][]int64) error {
	if t.wrote && now-t.last < t.Interval {
		return nil
	}
	t.last = now
	t.wrote = true
	return t.writeLine(formatBlocks(populations))
}

func formatBlocks(populations [][]int64) string {
	var buf []byte
	for i, sv := range populations {
		if i > 0 {
			buf = append(buf, '\t')
		}
		for j, count := range sv {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendInt(buf, count, 10)
		}
	}
	return string(buf)
}
