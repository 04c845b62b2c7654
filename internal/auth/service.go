// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements the registration, login and logout flows of the
// MicroMatch CLI. It talks to the backend and hands the issued credential to
// the session; it never stores anything itself.
package auth

import (
	"context"
	"errors"
	"strings"

	"micromatch/cli/internal/backend"
	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/logging"
	"micromatch/cli/internal/model"
	"micromatch/cli/internal/session"

	"github.com/pterm/pterm"
)

// Fallback messages when the server gives no detail.
const (
	msgRegistrationFailed = "Registration failed"
	msgLoginFailed        = "Login failed"
)

// Service centralizes authentication operations against the backend and the
// session.
type Service struct {
	be       backend.API
	sessions *session.Manager
	log      *pterm.Logger
}

// NewService wires a Service. log may be nil.
func NewService(be backend.API, sessions *session.Manager, log *pterm.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{be: be, sessions: sessions, log: log}
}

// Register creates an account. An empty role defaults to student. Success
// does not start a session; the caller should send the user to login.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return apperr.New(apperr.Registration, "email and password are required")
	}
	if req.Role == "" {
		req.Role = model.RoleStudent
	}
	if !req.Role.Valid() {
		return apperr.New(apperr.Registration, "unknown role "+string(req.Role))
	}

	if err := s.be.Register(ctx, req); err != nil {
		s.log.Debug("registration rejected", s.log.Args("email", req.Email, "error", err.Error()))
		return classify(apperr.Registration, msgRegistrationFailed, err)
	}
	s.log.Debug("registered", s.log.Args("email", req.Email, "role", string(req.Role)))
	return nil
}

// SignIn exchanges credentials for a token and starts the session with the
// email as identity.
func (s *Service) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return apperr.New(apperr.Login, "email and password are required")
	}

	tok, err := s.be.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.log.Debug("login rejected", s.log.Args("email", email, "error", logging.Mask(err.Error())))
		return classify(apperr.Login, msgLoginFailed, err)
	}
	s.log.Debug("token issued", s.log.Args("type", tok.TokenType, "token", logging.MaskToken(tok.AccessToken)))
	return s.sessions.Login(tok.AccessToken, email)
}

// SignOut ends the session. It never contacts the server.
func (s *Service) SignOut() error {
	return s.sessions.Logout()
}

// Current returns the session snapshot.
func (s *Service) Current() session.State {
	return s.sessions.Current()
}

// classify keeps transport failures as they are and turns every other
// failure into kind, using the server's detail when it sent one.
func classify(kind apperr.Kind, fallback string, err error) error {
	if apperr.Is(err, apperr.Transport) {
		return err
	}
	var se *backend.StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return apperr.Wrap(kind, se.Detail, err)
	}
	return apperr.Wrap(kind, fallback, err)
}
