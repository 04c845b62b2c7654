// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"micromatch/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	loginEmail string
	loginForce bool
)

// loginCmd signs in with email and password. The issued token and the email
// are kept in the OS keychain until logout.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Long: `The login command exchanges your email and password for an access token
and stores it in the OS keychain. Subsequent commands use the stored token
until you run 'micromatch logout'.

If a session already exists the command says so and does nothing, unless
--force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if st := a.sessions.Current(); st.Authenticated() && !loginForce {
			fmt.Printf("Already logged in as %s\n", st.Identity)
			return nil
		}

		email, password, err := promptCredentials(terminal.NewPrompter(), loginEmail)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout()+5*time.Second)
		defer cancel()

		var signInErr error
		withSpinner("Signing in", func() {
			signInErr = a.auth.SignIn(ctx, email, password)
		})
		if signInErr != nil {
			return report(signInErr, "logging in", a.cfg.ServerURL)
		}

		fmt.Println(loginGreeting(a.sessions.Current().Identity))
		pterm.Println("Run 'micromatch projects' to browse open projects.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "Sign in again even if a session exists")
	rootCmd.AddCommand(loginCmd)
}

// loginGreeting returns a random greeting phrase with the user's identifier.
func loginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"👋 Hello %s! Ready to find a project?",
		"✅ Logged in as %s",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], identifier)
}
