// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"micromatch/cli/internal/nav"

	"github.com/spf13/cobra"
)

// homeCmd shows who is logged in. It reads the local session only.
var homeCmd = &cobra.Command{
	Use:     "home",
	Aliases: []string{"whoami"},
	Short:   "Show the current account",
	Long: `The home command shows the account of the stored session. It does not
contact the server: a token that was revoked or has expired is still shown
until a request made with it fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if a.nav.Go(nav.ViewHome) != nav.ViewHome {
			fmt.Print(loginRequiredView())
			return errReported
		}
		claims, err := a.auth.Claims()
		if err != nil {
			a.log.Debug("token claims unavailable", a.log.Args("error", err.Error()))
			claims = nil
		}
		fmt.Print(homeView(a.sessions.Current(), claims, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
}
