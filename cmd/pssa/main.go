// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

// Command pssa drives the spatial stochastic reaction network engine
// from a YAML configuration and network file (spec §6).
package main

import (
	"fmt"
	"os"
)

const (
	exitOK              = 0
	exitConfigError     = 2
	exitIOError         = 3
	exitSimulationError = 4
	exitOutOfMemory     = 5
	exitUncaughtPanic   = 70
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "pssa: panic:", r)
			os.Exit(exitUncaughtPanic)
		}
	}()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return exitOK
}
