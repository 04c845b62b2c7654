// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/httperrors"
	"micromatch/cli/internal/model"
	"micromatch/cli/internal/nav"
	"micromatch/cli/internal/projects"
	"micromatch/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// shellCmd keeps one session open and redraws the current view whenever the
// session or the project listing changes.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive MicroMatch session",
	Long: `The shell command starts an interactive session. Logging in takes you to
the home view and logging out back to login. The projects view loads in the
background and is redrawn when the listing arrives.

Type 'help' for the list of commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sh := newShell(cmd.Context(), a, terminal.NewPrompter(), os.Stdout)
		defer sh.close()
		return sh.run()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type shell struct {
	ctx    context.Context
	a      *app
	prompt *terminal.Prompter

	outMu sync.Mutex
	out   io.Writer

	mountMu sync.Mutex
	query   model.ProjectQuery
	unmount func()
}

func newShell(ctx context.Context, a *app, p *terminal.Prompter, out io.Writer) *shell {
	s := &shell{ctx: ctx, a: a, prompt: p, out: out}
	a.nav.OnChange(s.show)
	a.projects.Subscribe(func(o projects.Outcome) {
		if a.nav.Current() == nav.ViewProjects {
			s.print(projectsView(o))
		}
	})
	return s
}

func (s *shell) print(text string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprint(s.out, text)
}

func (s *shell) run() error {
	s.print(headingStyle.Sprint("MicroMatch shell") + " (type help for commands)\n\n")
	s.show(s.a.nav.Current())
	for {
		line, err := s.prompt.Line("micromatch ("+s.a.nav.Current().String()+")", "")
		switch {
		case errors.Is(err, terminal.ErrEmptyInput):
			continue
		case errors.Is(err, io.EOF):
			s.print("\n")
			return nil
		case err != nil:
			return err
		}
		if quit := s.exec(line); quit {
			return nil
		}
	}
}

// exec runs one shell command and reports whether the shell should exit.
func (s *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.print(shellHelp)
	case "login":
		s.login(args)
	case "register":
		s.register(args)
	case "logout":
		if err := s.a.auth.SignOut(); err != nil {
			s.fail(err, "logging out")
		}
	case "home", "whoami":
		s.a.nav.Go(nav.ViewHome)
	case "projects", "p":
		s.mountMu.Lock()
		s.query = model.ProjectQuery{Search: strings.Join(args, " ")}
		s.mountMu.Unlock()
		s.a.nav.Go(nav.ViewProjects)
	case "open", "go":
		if len(args) != 1 {
			s.print("usage: open <login|register|home|projects>\n")
			return false
		}
		v, ok := nav.ParseView(args[0])
		if !ok {
			s.print(fmt.Sprintf("unknown view %q\n", args[0]))
			return false
		}
		s.a.nav.Go(v)
	case "status":
		ctx, cancel := context.WithTimeout(s.ctx, s.a.cfg.Timeout())
		defer cancel()
		msg, err := s.a.be.Status(ctx)
		if err != nil {
			s.fail(err, "checking the API")
			return false
		}
		s.print(pterm.Green("API is up: "+msg) + "\n")
	default:
		s.print(fmt.Sprintf("unknown command %q, type 'help'\n", fields[0]))
	}
	return false
}

const shellHelp = `Commands:
  login [email]            sign in
  register [email] [role]  create an account (role: student or organization)
  logout                   end the session
  home                     show the current account
  projects [search]        list open projects
  open <view>              switch to login, register, home or projects
  status                   check the API
  quit                     leave the shell
`

func (s *shell) login(args []string) {
	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	email, password, err := promptCredentials(s.prompt, email)
	if err != nil {
		s.fail(err, "logging in")
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.a.cfg.Timeout()+5*time.Second)
	defer cancel()
	// Success navigates home through the session listener.
	if err := s.a.auth.SignIn(ctx, email, password); err != nil {
		s.fail(err, "logging in")
	}
}

func (s *shell) register(args []string) {
	s.a.nav.Go(nav.ViewRegister)
	email, role := "", ""
	if len(args) > 0 {
		email = args[0]
	}
	if len(args) > 1 {
		role = args[1]
	}
	email, password, err := promptCredentials(s.prompt, email)
	if err != nil {
		s.fail(err, "registering")
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.a.cfg.Timeout()+5*time.Second)
	defer cancel()
	err = s.a.auth.Register(ctx, model.RegisterRequest{Email: email, Password: password, Role: model.Role(strings.ToLower(role))})
	if err != nil {
		s.fail(err, "registering")
		return
	}
	s.print(pterm.Green("Registration successful. Please log in.") + "\n")
	s.a.nav.Go(nav.ViewLogin)
}

// show renders v. Leaving the projects view stops its fetches.
func (s *shell) show(v nav.View) {
	if v != nav.ViewProjects {
		s.leaveProjects()
	}
	switch v {
	case nav.ViewLogin:
		s.print("Not logged in. Type 'login' to sign in or 'register' to create an account.\n")
	case nav.ViewRegister:
		s.print(headingStyle.Sprint("Register") + "\n")
	case nav.ViewHome:
		claims, err := s.a.auth.Claims()
		if err != nil {
			claims = nil
		}
		s.print(homeView(s.a.sessions.Current(), claims, time.Now()))
	case nav.ViewProjects:
		s.enterProjects()
	}
}

func (s *shell) enterProjects() {
	s.mountMu.Lock()
	defer s.mountMu.Unlock()
	if s.unmount != nil {
		s.unmount()
	}
	s.unmount = s.a.projects.Mount(s.ctx, s.a.sessions, s.query)
}

func (s *shell) leaveProjects() {
	s.mountMu.Lock()
	defer s.mountMu.Unlock()
	if s.unmount != nil {
		s.unmount()
		s.unmount = nil
	}
}

func (s *shell) close() { s.leaveProjects() }

func (s *shell) fail(err error, action string) {
	if apperr.Is(err, apperr.Transport) {
		ex := httperrors.Explain(err, action, s.a.cfg.ServerURL)
		s.print(pterm.Red(ex.Headline) + "\n")
		for _, h := range ex.Hints {
			s.print("  • " + h + "\n")
		}
		return
	}
	var e *apperr.E
	if errors.As(err, &e) {
		s.print(pterm.Red(e.Message) + "\n")
		return
	}
	s.print(pterm.Red(err.Error()) + "\n")
}
