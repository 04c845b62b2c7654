// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the leveled logger shared by all components and
// utilities for keeping credentials out of log lines and error messages.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword = regexp.MustCompile(`(?i)("?password"?\s*[=:]\s*"?)([^\s;",}]+)`)
	reBearer   = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reToken    = regexp.MustCompile(`(?i)("?(?:access_)?token"?\s*[=:]\s*"?)([A-Za-z0-9._~+/=-]+)`)
	reJWT      = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
)

// Mask replaces sensitive values in the input string with "***".
// Bearer headers, token/password pairs and bare JWTs are all covered.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reBearer.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJWT.ReplaceAllString(out, "***")
	for _, k := range []string{"MICROMATCH_TOKEN", "ACCESS_TOKEN"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}

// MaskToken shortens a credential to a recognizable but unusable prefix.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "***"
}
