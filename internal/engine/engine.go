// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

// Package engine drives one sample trajectory to completion: pick a
// subvolume, pick a reaction, advance time, apply the firing, repeat
// until t_end or an absorbing state (spec §4.4, §4.5).
package engine

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pssago/pssa/internal/model"
	"github.com/pssago/pssa/internal/sampling"
	"github.com/pssago/pssa/internal/update"
)

// Result summarizes one completed sample (spec §6.4's timing stream).
type Result struct {
	ReactionsFired int64
	FinalTime      float64
	Absorbed       bool
}

// Engine runs a single sample trajectory over one private Model. Callers
// run one Engine per sample, each with its own Model copy and PRNG so
// samples can execute concurrently (spec §5).
type Engine struct {
	model   *model.Model
	method  Method
	queue   *update.DelayQueue
	rng     *rand.Rand
	now      float64
	tEnd     float64
	fired    int64
	absorbed bool
	cancel   atomic.Bool
	log      *zap.SugaredLogger
	Info     RunInfo
}

// NewEngine builds the propensity structures for method over m and
// returns an Engine ready to run from tStart to tEnd. Panics during
// Build/Init (e.g. an allocation failure building CR bins over a very
// large grid) are recovered and reported as a *SetupError rather than
// crashing the whole process (spec §7, Resource failure).
func NewEngine(m *model.Model, method Method, seed1, seed2 uint64, tStart, tEnd float64, log *zap.SugaredLogger, info RunInfo) (eng *Engine, err error) {
	defer func() {
		if r := recover(); r != nil {
			eng = nil
			err = &SetupError{Reason: "panic during Build/Init", Cause: fmt.Errorf("%v", r)}
		}
	}()

	if err := method.Grouper.Build(m); err != nil {
		return nil, &SetupError{Reason: "Build", Cause: err}
	}
	if err := method.Grouper.Init(m); err != nil {
		return nil, &SetupError{Reason: "Init", Cause: err}
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Engine{
		model:  m,
		method: method,
		queue:  update.NewDelayQueue(),
		rng:    rand.New(rand.NewPCG(seed1, seed2)),
		now:    tStart,
		tEnd:   tEnd,
		log:    log,
		Info:   info,
	}, nil
}

// Cancel requests that Run stop at the next step boundary (spec §5's
// driver-initiated cancellation). Safe to call from another goroutine.
func (e *Engine) Cancel() {
	e.cancel.Store(true)
}

// Now returns the engine's current simulation time.
func (e *Engine) Now() float64 { return e.now }

// ReactionsFired returns the number of wrapper firings applied so far.
func (e *Engine) ReactionsFired() int64 { return e.fired }

// Step advances the simulation by exactly one event: drawing the next
// event time (interleaving any due delayed reactions), then, unless that
// leaves the run in an absorbing state or past tEnd, picking and applying
// one instantaneous firing. done is true once the caller should stop
// stepping (absorbing state, tEnd reached, or cancellation).
func (e *Engine) Step() (done bool, err error) {
	if e.cancel.Load() {
		return true, nil
	}

	var delayErr error
	peekDelay := func() (float64, bool) {
		entry, ok := e.queue.PeekEarliest()
		return entry.Time, ok
	}
	t, absorbing := sampling.NextEventTime(e.now, e.rng, e.model.TotalPropensity, peekDelay, func() {
		if err := e.fireEarliestDelayed(); err != nil {
			delayErr = err
		}
	})
	if delayErr != nil {
		return false, &InvariantViolationError{Reason: "FireDelayed", Cause: delayErr}
	}
	if absorbing {
		e.absorbed = true
		return true, nil
	}
	if t >= e.tEnd {
		e.now = e.tEnd
		return true, nil
	}
	e.now = t

	sv, ok := e.method.Sampler.PickSubvolume(e.model, e.rng)
	if !ok {
		return true, &InvariantViolationError{Reason: "PickSubvolume failed despite positive total propensity"}
	}
	pick, ok := e.method.Sampler.PickReaction(e.model, sv, e.rng)
	if !ok {
		return false, &InvariantViolationError{Reason: "PickReaction failed", Cause: &update.SamplingFailureError{Subvolume: sv}}
	}

	if err := update.Apply(e.model, e.method.Grouper, e.queue, pick, e.rng, e.now); err != nil {
		return false, &InvariantViolationError{Reason: "Apply", Cause: err}
	}
	e.fired++
	return false, nil
}

// fireEarliestDelayed pops and applies the earliest queued delayed entry.
// Called from the closure passed to sampling.NextEventTime as its
// fireDelay callback; Step wraps a non-nil error the same way it wraps
// update.Apply's, since update.FireDelayed can return the same
// *update.NegativePopulationError that Apply can (spec §4.4.6, fatal).
func (e *Engine) fireEarliestDelayed() error {
	entry, ok := e.queue.PopEarliest()
	if !ok {
		return nil
	}
	if err := update.FireDelayed(e.model, e.method.Grouper, entry); err != nil {
		return err
	}
	e.fired++
	return nil
}

// Run steps the engine until Step reports done, returning a summary of
// the completed (or aborted) trajectory.
func (e *Engine) Run() (Result, error) {
	e.log.Debugw("sample starting", "run", e.Info.RunID, "sample", e.Info.Sample, "method", e.method.Name)
	for {
		done, err := e.Step()
		if err != nil {
			return Result{ReactionsFired: e.fired, FinalTime: e.now}, err
		}
		if done {
			break
		}
	}
	e.log.Debugw("sample finished", "run", e.Info.RunID, "sample", e.Info.Sample, "reactions", e.fired, "t", e.now, "absorbed", e.absorbed)
	return Result{ReactionsFired: e.fired, FinalTime: e.now, Absorbed: e.absorbed}, nil
}
