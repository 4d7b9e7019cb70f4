// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package update

import (
	"math/rand/v2"

	"github.com/pssago/pssa/internal/grouping"
	"github.com/pssago/pssa/internal/model"
	"github.com/pssago/pssa/internal/sampling"
)

// Apply applies a sampled wrapper firing to the model: the consuming
// step, delay scheduling or the producing step, the dependency-driven
// propensity refresh, and (for SPDM) the permutation bubble — the whole
// of spec §4.4. now is the simulation time the firing occurs at.
func Apply(m *model.Model, grouper grouping.Grouper, queue *DelayQueue, pick sampling.ReactionPick, rng *rand.Rand, now float64) error {
	w, err := m.ReactionWrapper(pick.Wrapper)
	if err != nil {
		return err
	}
	sv, err := m.Subvolume(pick.Subvolume)
	if err != nil {
		return err
	}

	if w.HasDelay {
		return applyDelayed(m, grouper, queue, w, sv, rng, now)
	}

	if w.IsDiffusion() {
		dst, err := m.Subvolume(sampling.PickNeighbor(sv, rng))
		if err != nil {
			return err
		}
		if err := consume(m, sv, w); err != nil {
			return err
		}
		produceDiffusion(dst, w)
		if err := grouper.Refresh(m, sv.Index, pick.Wrapper); err != nil {
			return err
		}
		if err := grouper.Refresh(m, dst.Index, pick.Wrapper); err != nil {
			return err
		}
		adjustPermutation(grouper, sv, pick)
		return nil
	}

	if err := consume(m, sv, w); err != nil {
		return err
	}
	if err := produce(m, sv, w); err != nil {
		return err
	}
	if err := grouper.Refresh(m, sv.Index, pick.Wrapper); err != nil {
		return err
	}
	adjustPermutation(grouper, sv, pick)
	return nil
}

// applyDelayed implements spec §4.4.2: a consuming delay runs its
// consuming step now and defers the producing step; a non-consuming
// delay defers both.
func applyDelayed(m *model.Model, grouper grouping.Grouper, queue *DelayQueue, w *model.ReactionWrapper, sv *model.Subvolume, rng *rand.Rand, now float64) error {
	entry := DelayedEntry{
		Wrapper:   w.Serial,
		Subvolume: sv.Index,
		Time:      now + w.Delay,
	}
	if w.Consuming {
		if err := consume(m, sv, w); err != nil {
			return err
		}
		if err := grouper.Refresh(m, sv.Index, w.Serial); err != nil {
			return err
		}
		entry.Producing = true
		queue.Insert(entry)
		return nil
	}
	entry.Producing = true
	queue.Insert(entry)
	return nil
}

// FireDelayed applies a delayed entry's remaining steps when its firing
// time arrives (spec §4.4.2's "when the delayed firing arrives").
// Diffusion wrappers never carry a delay (model.Builder never attaches
// one), so only the reaction consuming/producing path applies here.
func FireDelayed(m *model.Model, grouper grouping.Grouper, e DelayedEntry) error {
	w, err := m.ReactionWrapper(e.Wrapper)
	if err != nil {
		return err
	}
	sv, err := m.Subvolume(e.Subvolume)
	if err != nil {
		return err
	}
	if !w.Consuming {
		if err := consume(m, sv, w); err != nil {
			return err
		}
	}
	if err := produce(m, sv, w); err != nil {
		return err
	}
	return grouper.Refresh(m, sv.Index, e.Wrapper)
}

func adjustPermutation(grouper grouping.Grouper, sv *model.Subvolume, pick sampling.ReactionPick) {
	if pick.Row < 0 {
		return
	}
	if adj, ok := grouper.(grouping.PermutationAdjuster); ok {
		adj.AdjustPermutation(sv, pick.Row, pick.Col)
	}
}
