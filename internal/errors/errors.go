// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the client can surface belongs to one Kind, which lets views
// decide how to present it without string matching on the underlying error.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Credential indicates a persisted credential could not be read or written.
	Credential Kind = "credential"
	// Registration indicates the backend rejected a registration.
	Registration Kind = "registration"
	// Login indicates the backend rejected a login attempt.
	Login Kind = "login"
	// Fetch indicates a protected resource could not be retrieved.
	Fetch Kind = "fetch"
	// Transport indicates no response was obtained from the backend.
	Transport Kind = "transport"
	// Config indicates invalid or unreadable configuration.
	Config Kind = "config"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "" when none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
