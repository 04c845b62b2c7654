// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd removes the stored session. The server is not contacted; the
// token itself stays valid until it expires.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session",
	Long: `The logout command removes the access token and identity from the OS
keychain. Running it without a session is harmless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		prev := a.sessions.Current()
		if err := a.auth.SignOut(); err != nil {
			// Memory is cleared regardless; only the keychain copy may remain.
			return report(err, "logging out", a.cfg.ServerURL)
		}
		if prev.Authenticated() {
			fmt.Printf("✅ Logged out %s\n", prev.Identity)
		} else {
			fmt.Println("✅ No session was stored")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
