// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal wraps the few raw terminal operations the CLI needs.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// Width returns the width of stdout, or 80 when it is not a terminal.
func Width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// linesFor is how many rows textLength characters occupy at width, plus the
// row the cursor moved to after Enter.
func linesFor(textLength, width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	n := int(math.Ceil(float64(textLength) / float64(width)))
	if n < 1 {
		n = 1
	}
	return n + 1
}

// ClearPreviousLines erases a prompt and its answer that together were
// textLength characters long.
func ClearPreviousLines(textLength int) {
	clearLines(os.Stdout, linesFor(textLength, Width()))
}

func clearLines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
