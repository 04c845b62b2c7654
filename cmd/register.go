// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"micromatch/cli/internal/model"
	"micromatch/cli/internal/nav"
	"micromatch/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	registerEmail string
	registerRole  string
)

// registerCmd creates an account. It does not sign in.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a MicroMatch account",
	Long: `The register command creates a student or organization account.
Registration does not start a session: run 'micromatch login' afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.nav.Go(nav.ViewRegister)

		p := terminal.NewPrompter()
		role := registerRole
		if role == "" && p.Interactive() {
			if role, err = p.Line("Role ("+rolesList()+")", string(model.RoleStudent)); err != nil {
				return err
			}
		}
		email, password, err := promptCredentials(p, registerEmail)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout()+5*time.Second)
		defer cancel()

		var regErr error
		withSpinner("Creating account", func() {
			regErr = a.auth.Register(ctx, model.RegisterRequest{
				Email:    email,
				Password: password,
				Role:     model.Role(strings.ToLower(strings.TrimSpace(role))),
			})
		})
		if regErr != nil {
			return report(regErr, "registering", a.cfg.ServerURL)
		}

		a.nav.Go(nav.ViewLogin)
		pterm.Success.Println("Registration successful. Please log in.")
		fmt.Printf("   Run 'micromatch login --email %s'\n", email)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Account role: "+rolesList()+" (default student)")
	rootCmd.AddCommand(registerCmd)
}

func rolesList() string {
	names := make([]string, len(model.Roles))
	for i, r := range model.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, "|")
}
