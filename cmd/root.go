// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the MicroMatch CLI.
// Each subcommand renders one view of the client: the login and register
// forms, the home view and the protected project listing. The shell command
// keeps a session open and re-renders as the session and listings change.
package cmd

import (
	"errors"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	serverFlag  string
	verboseFlag bool
	showVersion bool
)

// errReported marks a failure that was already shown to the user.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "micromatch",
	Short: "MicroMatch CLI for browsing student projects",
	Long: `MicroMatch connects students with organizations offering short projects.
This CLI registers accounts, signs in, and lists the open projects of the
MicroMatch API. The session is kept in the OS keychain between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return runVersion(cmd)
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "MicroMatch API base URL (overrides config and MICROMATCH_SERVER)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print debug logs to stderr")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
}
