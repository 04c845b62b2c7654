// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model defines the data exchanged with the MicroMatch API.
// The types are transport-agnostic and shared by the backend client,
// the auth flows and the resource client.
package model

// Role is the account type chosen at registration.
type Role string

const (
	RoleStudent      Role = "student"
	RoleOrganization Role = "organization"
)

// Roles lists the roles a user may pick when registering.
var Roles = []Role{RoleStudent, RoleOrganization}

// Valid reports whether r is a role the API accepts at registration.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Project is one entry of the protected project listing.
// RequiredSkills and the other pointer fields are nil when the API omits
// them or sends null, which is distinct from an empty string.
type Project struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	RequiredSkills *string `json:"required_skills,omitempty"`
	Duration       *string `json:"duration,omitempty"`
	Status         *string `json:"status,omitempty"`
	OrganizationID *int64  `json:"organization_id,omitempty"`
	CreatedAt      *string `json:"created_at,omitempty"`
}

// Skills returns the required skills and whether any were listed.
func (p Project) Skills() (string, bool) {
	if p.RequiredSkills == nil || *p.RequiredSkills == "" {
		return "", false
	}
	return *p.RequiredSkills, true
}

// ProjectQuery narrows the project listing. Zero values are not sent.
type ProjectQuery struct {
	Search string
	Skip   int
	Limit  int
}
