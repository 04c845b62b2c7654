// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"micromatch/cli/internal/model"
)

// ListProjects calls GET /projects with Authorization: Bearer <token>.
// The order of the returned slice is the order the server sent. An empty
// listing is returned as a non-nil empty slice.
func (h *HTTP) ListProjects(ctx context.Context, accessToken string, q model.ProjectQuery) ([]model.Project, error) {
	path := h.endpoints.Projects
	if qs := encodeQuery(q); qs != "" {
		path += "?" + qs
	}
	req, err := h.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := h.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, newStatusError(resp)
	}

	var out []model.Project
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	if out == nil {
		out = []model.Project{}
	}
	return out, nil
}

func encodeQuery(q model.ProjectQuery) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}
