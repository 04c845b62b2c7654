// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// New returns a leveled logger writing to w (stderr when nil).
// Verbose enables debug lines; otherwise only info and above are shown.
func New(w io.Writer, verbose bool) *pterm.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	return pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(level).
		WithTime(verbose)
}

// Discard returns a logger that drops everything. Used as the default for
// components constructed without a logger.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.
		WithWriter(io.Discard).
		WithLevel(pterm.LogLevelDisabled)
}
