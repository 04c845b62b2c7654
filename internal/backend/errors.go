// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	// Status is the status line text, e.g. "401 Unauthorized".
	Status string
	// Detail is the server-provided explanation, if any.
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message())
}

// Message is what the user should see: the server detail when present,
// otherwise the status text.
func (e *StatusError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.StatusText()
}

// StatusText returns the reason phrase without the numeric code.
func (e *StatusError) StatusText() string {
	text := strings.TrimSpace(e.Status)
	if code := strconv.Itoa(e.StatusCode); strings.HasPrefix(text, code) {
		text = strings.TrimSpace(strings.TrimPrefix(text, code))
	}
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return text
}

// Unauthorized reports whether the server rejected the credential.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// newStatusError drains resp.Body and builds the error.
func newStatusError(resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Detail:     parseDetail(b),
	}
}

// parseDetail extracts the "detail" member of an error body. The API sends
// either a string or, for validation failures, a list of {loc, msg} objects.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if field := lastLoc(it.Loc); field != "" {
				msgs = append(msgs, field+": "+it.Msg)
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// lastLoc returns the final string segment of a validation location.
func lastLoc(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok && s != "body" {
			return s
		}
	}
	return ""
}
