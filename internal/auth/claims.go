// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned by Claims when nothing is logged in.
var ErrNoSession = errors.New("not logged in")

// Claims is what the client can read out of an access token. The signature
// is NOT verified; the values are for display only and never gate access.
type Claims struct {
	UserID int64  `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Expired reports whether the token carries an expiry that is in the past.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}

// ParseClaims decodes token without verifying it. Opaque tokens yield an
// error.
func ParseClaims(token string) (*Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &c, nil
}

// Claims decodes the current session token.
func (s *Service) Claims() (*Claims, error) {
	tok := s.sessions.Token()
	if tok == "" {
		return nil, ErrNoSession
	}
	return ParseClaims(tok)
}
