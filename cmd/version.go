// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"time"

	"micromatch/cli/internal/backend"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI and backend version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command) error {
	fmt.Printf("micromatch %s\n", Version)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
	defer cancel()
	msg, err := backend.New(cfg).Status(ctx)
	if err != nil {
		msg = "unreachable"
	}
	fmt.Printf("backend %s (%s)\n", cfg.ServerURL, msg)
	return nil
}
