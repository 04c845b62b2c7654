// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"micromatch/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the CLI configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, _ := config.Path()
		pterm.Println(headingStyle.Sprint("Configuration") + " " + pterm.Gray(p))
		fmt.Printf("  server_url: %s\n", cfg.ServerURL)
		fmt.Printf("  log_level:  %s\n", cfg.LogLevel)
		fmt.Printf("  timeout:    %s\n", cfg.Timeout())
		fmt.Printf("  endpoints:  register=%s login=%s projects=%s status=%s\n",
			cfg.Endpoints.Register, cfg.Endpoints.Login, cfg.Endpoints.Projects, cfg.Endpoints.Status)
		return nil
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Save the MicroMatch API base URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		// Read the file alone so environment overrides are not persisted.
		cfg, err := config.LoadFile(p)
		if err != nil {
			return err
		}
		cfg.ServerURL = strings.TrimRight(strings.TrimSpace(args[0]), "/")
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		pterm.Success.Printfln("server_url set to %s", cfg.ServerURL)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetServerCmd)
	rootCmd.AddCommand(configCmd)
}
