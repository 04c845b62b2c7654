// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"micromatch/cli/internal/auth"
	"micromatch/cli/internal/model"
	"micromatch/cli/internal/projects"
	"micromatch/cli/internal/session"

	"github.com/pterm/pterm"
)

var (
	headingStyle = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	labelStyle   = pterm.NewStyle(pterm.FgLightCyan)
	valueStyle   = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
)

// loginRequiredView is shown when the guard redirects to login.
func loginRequiredView() string {
	var b strings.Builder
	b.WriteString("🔒 You're not logged in yet!\n")
	b.WriteString("   Run 'micromatch login' to get started, or 'micromatch register' to create an account.\n")
	return b.String()
}

// homeView renders the landing view for an authenticated session. Claims
// may be nil when the token is opaque.
func homeView(st session.State, claims *auth.Claims, now time.Time) string {
	var b strings.Builder
	b.WriteString(headingStyle.Sprint("Welcome to MicroMatch!") + "\n")
	b.WriteString(labelStyle.Sprint("→ Logged in as: ") + valueStyle.Sprint(st.Identity) + "\n")
	if claims != nil {
		if claims.Role != "" {
			b.WriteString(labelStyle.Sprint("→ Role:         ") + claims.Role + "\n")
		}
		if claims.ExpiresAt != nil {
			exp := claims.ExpiresAt.Time.Local().Format(time.RFC822)
			if claims.Expired(now) {
				exp += " (expired, log in again if requests fail)"
			}
			b.WriteString(labelStyle.Sprint("→ Token until:  ") + exp + "\n")
		}
	}
	return b.String()
}

// projectsView renders a fetch outcome.
func projectsView(o projects.Outcome) string {
	switch o.Status {
	case projects.Loading:
		return "Loading projects...\n"
	case projects.Failed:
		return pterm.Red(o.Message) + "\n"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Sprint("Open Projects") + "\n\n")
	if len(o.Projects) == 0 {
		b.WriteString("No projects found.\n")
		return b.String()
	}
	for _, p := range o.Projects {
		writeProject(&b, p)
	}
	return b.String()
}

func writeProject(b *strings.Builder, p model.Project) {
	fmt.Fprintf(b, "%s %s\n", valueStyle.Sprint(p.Title), pterm.Gray("#"+strconv.FormatInt(p.ID, 10)))
	if p.Description != "" {
		fmt.Fprintf(b, "  %s\n", p.Description)
	}
	if skills, ok := p.Skills(); ok && skills != "" {
		fmt.Fprintf(b, "  %s %s\n", labelStyle.Sprint("Skills Required:"), skills)
	}
	var meta []string
	if p.Duration != nil && *p.Duration != "" {
		meta = append(meta, "duration "+*p.Duration)
	}
	if p.Status != nil && *p.Status != "" {
		meta = append(meta, *p.Status)
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, "  %s\n", pterm.Gray(strings.Join(meta, " · ")))
	}
	b.WriteString("\n")
}
