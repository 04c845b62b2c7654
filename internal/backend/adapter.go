// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the HTTP client for the MicroMatch API.
// It defines the API contract the client depends on and a REST
// implementation of it. Non-success responses surface as *StatusError.
package backend

import (
	"context"

	"micromatch/cli/internal/model"
)

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Status returns the API banner message; no authentication required.
	Status(ctx context.Context) (string, error)
	// Register creates a new account. The response body is ignored beyond success.
	Register(ctx context.Context, req model.RegisterRequest) error
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error)
	// ListProjects returns the protected project listing for accessToken.
	ListProjects(ctx context.Context, accessToken string, q model.ProjectQuery) ([]model.Project, error)
}
