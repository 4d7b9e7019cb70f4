// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package main

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pssago/pssa/internal/config"
	"github.com/pssago/pssa/internal/engine"
	"github.com/pssago/pssa/internal/model"
	"github.com/pssago/pssa/internal/networksrc"
	"github.com/pssago/pssa/internal/output"
)

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of independent simulation samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the run configuration YAML file")
	cmd.MarkFlagRequired("config")
	return cmd
}

func runBatch(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()
	sugar := log.Sugar()

	net, err := networksrc.FromYAML(cfg.Network)
	if err != nil {
		return err
	}
	net.SetPopulation(populationInitializer(cfg.InitialPopulation))

	streams, err := openStreams(cfg)
	if err != nil {
		return err
	}
	defer streams.close()

	filterIdx := speciesIndices(net, cfg.SpeciesFilter)

	if err := streams.writeSpeciesIDs(net, filterIdx); err != nil {
		return err
	}

	runID := uuid.New()
	startWall := time.Now()

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for s := 0; s < cfg.Samples; s++ {
		sample := s
		g.Go(func() error {
			return runSample(cfg, net, runID, sample, startWall, sugar, streams, filterIdx)
		})
	}
	return g.Wait()
}

// speciesIndices resolves the §6.6 species_filter option to a list of
// species indices whose populations get written to the trajectory/final
// streams, in model order. An empty filter keeps every species.
func speciesIndices(net *model.Model, filter []string) []int {
	if len(filter) == 0 {
		idx := make([]int, net.NSpecies())
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	wanted := make(map[string]bool, len(filter))
	for _, id := range filter {
		wanted[id] = true
	}
	var idx []int
	for i := 0; i < net.NSpecies(); i++ {
		sp, err := net.Species(model.SpeciesID(i))
		if err == nil && wanted[sp.ID] {
			idx = append(idx, i)
		}
	}
	return idx
}

func runSample(cfg *config.Config, net *model.Model, runID uuid.UUID, sample int, startWall time.Time, log *zap.SugaredLogger, streams *outputStreams, filterIdx []int) error {
	method, err := engine.NewMethod(cfg.Method)
	if err != nil {
		return err
	}
	sampleModel := net.Clone()

	var seed1, seed2 uint64
	if cfg.Seed != 0 {
		seed1, seed2 = cfg.Seed, cfg.Seed^uint64(sample)*0x9E3779B97F4A7C15
	} else {
		seed1, seed2 = engine.DeriveSeed(runID, sample, time.Now().UnixNano())
	}
	info := engine.RunInfo{
		RunID:          runID,
		Sample:         sample,
		Method:         cfg.Method,
		GridDims:       cfg.GridDims,
		GridSizes:      cfg.GridSizes,
		Samples:        cfg.Samples,
		TStart:         cfg.TStart,
		TEnd:           cfg.TEnd,
		Dt:             cfg.Dt,
		Seed1:          seed1,
		Seed2:          seed2,
		StartWallClock: startWall,
	}

	eng, err := engine.NewEngine(sampleModel, method, seed1, seed2, cfg.TStart, cfg.TEnd, log, info)
	if err != nil {
		return err
	}

	wallStart := time.Now()
	for {
		done, err := eng.Step()
		if err != nil {
			return err
		}
		if err := streams.writeCheckpoint(sampleModel, eng.Now(), filterIdx); err != nil {
			return err
		}
		if done {
			break
		}
	}
	wallSeconds := time.Since(wallStart).Seconds()

	return streams.writeSample(sampleModel, engine.Result{ReactionsFired: eng.ReactionsFired(), FinalTime: eng.Now()}, wallSeconds, filterIdx)
}

// outputStreams bundles the optional §6.4 output writers selected by
// config.OutputFlags. Every writer is shared across concurrently running
// samples, so access is serialized by mu (bufio.Writer is not otherwise
// safe for concurrent use).
type outputStreams struct {
	mu         sync.Mutex
	trajectory *output.TrajectoryWriter
	final      *output.FinalWriter
	timing     *output.TimingWriter
	timePoints *output.TimePointsWriter
	speciesIDs *output.SpeciesIDsWriter
}

func openStreams(cfg *config.Config) (*outputStreams, error) {
	s := &outputStreams{}
	flags := make(map[config.OutputFlag]bool, len(cfg.OutputFlags))
	for _, f := range cfg.OutputFlags {
		flags[f] = true
	}

	var err error
	if flags[config.Trajectory] {
		if s.trajectory, err = output.OpenTrajectory(filepath.Join(cfg.OutDir, "trajectory.txt"), cfg.Dt); err != nil {
			return nil, err
		}
	}
	if flags[config.Final] {
		if s.final, err = output.OpenFinal(filepath.Join(cfg.OutDir, "final.txt")); err != nil {
			return nil, err
		}
	}
	if flags[config.Timing] {
		if s.timing, err = output.OpenTiming(filepath.Join(cfg.OutDir, "timing.txt")); err != nil {
			return nil, err
		}
	}
	if flags[config.TimePoints] {
		if s.timePoints, err = output.OpenTimePoints(filepath.Join(cfg.OutDir, "time_points.txt")); err != nil {
			return nil, err
		}
	}
	if flags[config.SpeciesIDs] {
		if s.speciesIDs, err = output.OpenSpeciesIDs(filepath.Join(cfg.OutDir, "species_ids.txt")); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *outputStreams) writeSpeciesIDs(net *model.Model, filterIdx []int) error {
	if s.speciesIDs == nil {
		return nil
	}
	ids := make([]string, len(filterIdx))
	for i, spIdx := range filterIdx {
		sp, err := net.Species(model.SpeciesID(spIdx))
		if err != nil {
			return err
		}
		ids[i] = sp.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speciesIDs.WriteAll(ids)
}

func (s *outputStreams) writeCheckpoint(m *model.Model, now float64, filterIdx []int) error {
	if s.trajectory == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trajectory.WriteCheckpoint(now, populationsOf(m, filterIdx))
}

func (s *outputStreams) writeSample(m *model.Model, res engine.Result, wallSeconds float64, filterIdx []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.final != nil {
		if err := s.final.WriteFinal(populationsOf(m, filterIdx)); err != nil {
			return err
		}
	}
	if s.timing != nil {
		if err := s.timing.WriteTiming(wallSeconds, res.ReactionsFired); err != nil {
			return err
		}
	}
	if s.timePoints != nil {
		if err := s.timePoints.WritePoint(res.FinalTime); err != nil {
			return err
		}
	}
	return nil
}

// populationsOf reads one subvolume-ordered snapshot of m, restricted to
// the species indices in filterIdx (spec §6.6 species_filter).
func populationsOf(m *model.Model, filterIdx []int) [][]int64 {
	subvolumes := m.Subvolumes()
	out := make([][]int64, len(subvolumes))
	for i, sv := range subvolumes {
		row := make([]int64, len(filterIdx))
		for j, spIdx := range filterIdx {
			row[j] = sv.Population[spIdx]
		}
		out[i] = row
	}
	return out
}

func (s *outputStreams) close() error {
	var first error
	closers := []interface{ Close() error }{}
	if s.trajectory != nil {
		closers = append(closers, s.trajectory)
	}
	if s.final != nil {
		closers = append(closers, s.final)
	}
	if s.timing != nil {
		closers = append(closers, s.timing)
	}
	if s.timePoints != nil {
		closers = append(closers, s.timePoints)
	}
	if s.speciesIDs != nil {
		closers = append(closers, s.speciesIDs)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
