// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package main

import (
	"errors"
	"os"

	"github.com/pssago/pssa/internal/config"
	"github.com/pssago/pssa/internal/engine"
	"github.com/pssago/pssa/internal/model"
)

// exitCodeFor maps an error's failure category to the §6.5 exit code
// taxonomy, which spec.md explicitly leaves to the driver.
func exitCodeFor(err error) int {
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		return exitConfigError
	}
	var ne *model.NetworkError
	if errors.As(err, &ne) {
		return exitConfigError
	}
	var se *model.SetupError
	if errors.As(err, &se) {
		return exitConfigError
	}
	var ese *engine.SetupError
	if errors.As(err, &ese) {
		return exitOutOfMemory
	}
	var ive *engine.InvariantViolationError
	if errors.As(err, &ive) {
		return exitSimulationError
	}
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return exitIOError
	}
	return exitSimulationError
}
