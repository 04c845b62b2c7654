// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyInput is returned when the user just pressed Enter.
var ErrEmptyInput = errors.New("no input")

// Prompter reads answers from in and writes prompts to out. When in is a
// terminal, secrets are read without echo.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// NewPrompter returns a Prompter on stdin/stdout.
func NewPrompter() *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  fd,
		tty: term.IsTerminal(fd),
	}
}

// NewPrompterFrom reads from r without terminal handling.
func NewPrompterFrom(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w, fd: -1}
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool { return p.tty }

// Line asks for a visible answer. An empty answer returns def, or
// ErrEmptyInput when def is empty.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		if def == "" {
			return "", ErrEmptyInput
		}
		return def, nil
	}
	return s, nil
}

// Secret asks for a hidden answer. The value is returned as typed.
func (p *Prompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.tty {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		if len(b) == 0 {
			return "", ErrEmptyInput
		}
		return string(b), nil
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return "", ErrEmptyInput
	}
	return s, nil
}
