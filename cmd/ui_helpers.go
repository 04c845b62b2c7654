// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"

	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/httperrors"
	"micromatch/cli/internal/logging"
	"micromatch/cli/internal/terminal"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// withSpinner runs fn behind a spinner when stdout is a terminal.
func withSpinner(text string, fn func()) {
	if !terminal.StdoutIsTerminal() {
		fn()
		return
	}
	cursor.Hide()
	defer cursor.Show()
	sp, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(text)
	fn()
	if err == nil {
		_ = sp.Stop()
	}
}

// report shows err to the user and returns errReported. Transport failures
// get troubleshooting hints; everything else is printed as its message.
func report(err error, action, server string) error {
	if err == nil {
		return nil
	}
	if apperr.Is(err, apperr.Transport) || errors.Is(err, context.DeadlineExceeded) {
		_ = httperrors.FormatNetworkError(err, action, server)
		return errReported
	}
	var e *apperr.E
	if errors.As(err, &e) {
		pterm.Error.Println(e.Message)
		return errReported
	}
	pterm.Error.Println(logging.PresentError(action, err))
	return errReported
}

// promptCredentials asks for whatever of email and password is missing.
func promptCredentials(p *terminal.Prompter, email string) (string, string, error) {
	var err error
	if email == "" {
		if email, err = p.Line("Email", ""); err != nil {
			return "", "", err
		}
	}
	password, err := p.Secret("Password")
	if err != nil {
		return "", "", err
	}
	if p.Interactive() {
		terminal.ClearPreviousLines(len("Password: "))
	}
	return email, password, nil
}
