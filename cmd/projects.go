// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"micromatch/cli/internal/model"
	"micromatch/cli/internal/nav"
	"micromatch/cli/internal/projects"

	"github.com/spf13/cobra"
)

var projectsQuery model.ProjectQuery

// projectsCmd lists open projects. It requires a session.
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List open projects",
	Long: `The projects command fetches the open projects with the stored token.
Without a session you are sent to login instead. If the server rejects the
token its reason is shown; the session is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectsQuery.Skip < 0 || projectsQuery.Limit < 0 {
			return fmt.Errorf("--skip and --limit must not be negative")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if a.nav.Go(nav.ViewProjects) != nav.ViewProjects {
			fmt.Print(loginRequiredView())
			return errReported
		}

		var out projects.Outcome
		withSpinner("Loading projects...", func() {
			out = a.projects.Fetch(cmd.Context(), a.sessions.Token(), projectsQuery)
		})
		fmt.Print(projectsView(out))
		if out.Status == projects.Failed {
			return errReported
		}
		return nil
	},
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsQuery.Search, "search", "s", "", "Filter by title, description or skills")
	projectsCmd.Flags().IntVar(&projectsQuery.Skip, "skip", 0, "Number of projects to skip")
	projectsCmd.Flags().IntVar(&projectsQuery.Limit, "limit", 0, "Maximum number of projects (server default when 0)")
	rootCmd.AddCommand(projectsCmd)
}
