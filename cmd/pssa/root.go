// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pssa",
		Short:         "Spatial stochastic simulation engine (DM/PDM/SPDM/PSSACR)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())
	return root
}
