// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pssago/pssa/internal/config"
	"github.com/pssago/pssa/internal/networksrc"
)

func newValidateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a run configuration and its network file without simulating",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if _, err := networksrc.FromYAML(cfg.Network); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config and network are valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the run configuration YAML file")
	cmd.MarkFlagRequired("config")
	return cmd
}
