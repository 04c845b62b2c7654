// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "without cause",
			err:  New(Registration, "Registration failed"),
			want: "registration: Registration failed",
		},
		{
			name: "with cause",
			err:  Wrap(Transport, "request failed", stderrors.New("connection refused")),
			want: "transport: request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	cause := stderrors.New("boom")
	err := fmt.Errorf("outer: %w", Wrap(Credential, "load", cause))

	if got := KindOf(err); got != Credential {
		t.Errorf("KindOf() = %q, want %q", got, Credential)
	}
	if !Is(err, Credential) {
		t.Error("Is(err, Credential) = false, want true")
	}
	if Is(err, Fetch) {
		t.Error("Is(err, Fetch) = true, want false")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if KindOf(cause) != "" {
		t.Error("KindOf() on a plain error should be empty")
	}
}
