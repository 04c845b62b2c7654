// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains failed backend calls to the user.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"micromatch/cli/internal/backend"

	"github.com/pterm/pterm"
)

// Category is a coarse class of network failure.
type Category int

const (
	Other Category = iota
	Timeout
	DNS
	Refused
	TLS
	Server
)

// Explanation is what gets printed for a failure.
type Explanation struct {
	Headline string
	Hints    []string
}

// Classify picks the category for err.
func Classify(err error) Category {
	switch {
	case err == nil:
		return Other
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return Refused
	case isSSLError(err):
		return TLS
	case isServerError(err):
		return Server
	default:
		return Other
	}
}

// Explain builds the message for err raised while doing action against server.
func Explain(err error, action, server string) Explanation {
	host := ExtractHostFromURL(server)
	switch Classify(err) {
	case Timeout:
		return Explanation{
			Headline: fmt.Sprintf("Connection timeout while %s", action),
			Hints: []string{
				"The MicroMatch API took too long to respond",
				"Raise \"timeout\" in the config file if the server is slow",
			},
		}
	case DNS:
		return Explanation{
			Headline: fmt.Sprintf("Cannot resolve %s while %s", host, action),
			Hints: []string{
				"Check the server address (--server or MICROMATCH_SERVER)",
				"Check your DNS settings",
			},
		}
	case Refused:
		return Explanation{
			Headline: fmt.Sprintf("Connection refused by %s while %s", host, action),
			Hints: []string{
				"Is the MicroMatch API running?",
				"Check the server address and port",
			},
		}
	case TLS:
		return Explanation{
			Headline: fmt.Sprintf("Secure connection to %s failed while %s", host, action),
			Hints: []string{
				"Check the certificate of the server",
				"Use http:// for a local development server",
			},
		}
	case Server:
		return Explanation{
			Headline: fmt.Sprintf("Server error while %s", action),
			Hints:    []string{"The MicroMatch API failed internally; try again later"},
		}
	default:
		return Explanation{
			Headline: fmt.Sprintf("Cannot reach %s while %s", host, action),
			Hints:    []string{"Check your network connection and the server address"},
		}
	}
}

// FormatNetworkError prints the explanation for err and returns err wrapped.
func FormatNetworkError(err error, action, server string) error {
	if err == nil {
		return nil
	}
	ex := Explain(err, action, server)
	pterm.Error.Println(ex.Headline)
	for _, h := range ex.Hints {
		pterm.Println("  • " + h)
	}
	pterm.Debug.Printf("Technical details: %s\n", abbreviate(err.Error(), 120))
	return fmt.Errorf("network error: %w", err)
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") ||
		strings.Contains(s, "x509") ||
		strings.Contains(s, "certificate")
}

func isServerError(err error) bool {
	var se *backend.StatusError
	return errors.As(err, &se) && se.StatusCode >= 500
}

// ExtractHostFromURL returns the host of urlStr, or "server".
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
