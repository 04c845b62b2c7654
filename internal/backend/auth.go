// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"micromatch/cli/internal/model"
)

// Register posts { email, password, role } to /auth/register.
// Any 2xx is success; the body is not inspected.
func (h *HTTP) Register(ctx context.Context, in model.RegisterRequest) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.Register, bytes.NewReader(b))
	if err != nil {
		return err
	}
	resp, err := h.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return newStatusError(resp)
	}
	return nil
}

// Login posts { email, password } to /auth/login and returns the issued token.
func (h *HTTP) Login(ctx context.Context, in model.LoginRequest) (model.TokenResponse, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return model.TokenResponse{}, err
	}
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.Login, bytes.NewReader(b))
	if err != nil {
		return model.TokenResponse{}, err
	}
	resp, err := h.do(req)
	if err != nil {
		return model.TokenResponse{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return model.TokenResponse{}, newStatusError(resp)
	}

	// Be liberal in what we accept: decode into a map first
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return model.TokenResponse{}, err
	}
	out := model.TokenResponse{
		AccessToken: extractAccessToken(raw),
		TokenType:   extractTokenType(raw),
	}
	if out.AccessToken == "" {
		out.AccessToken = parseBearerToken(resp.Header.Get("Authorization"))
	}
	if out.AccessToken == "" {
		return model.TokenResponse{}, errors.New("no access_token in response")
	}
	return out, nil
}

// extractAccessToken extracts the access token from the response payload.
// It tries multiple common field names to be resilient to different response formats.
func extractAccessToken(result map[string]any) string {
	for _, key := range []string{"access_token", "accessToken", "token"} {
		if v, ok := result[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func extractTokenType(result map[string]any) string {
	if v, ok := result["token_type"].(string); ok && v != "" {
		return v
	}
	return "bearer"
}

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 || !strings.EqualFold(v[:6], "bearer") || v[6] != ' ' {
		return ""
	}
	return strings.TrimSpace(v[7:])
}
