// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"micromatch/cli/internal/backend"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// statusCmd checks that the API answers.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the MicroMatch API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		be := backend.New(cfg)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()
		var msg string
		withSpinner("Contacting "+cfg.ServerURL, func() {
			msg, err = be.Status(ctx)
		})
		if err != nil {
			return report(err, "checking the API", cfg.ServerURL)
		}
		pterm.Success.Printfln("%s is up: %s", cfg.ServerURL, msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
