// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"micromatch/cli/internal/config"
	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/model"

	"github.com/go-chi/chi/v5"
)

func newTestClient(t *testing.T, r chi.Router) *HTTP {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewHTTP(srv.URL, config.DefaultEndpoints(), 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListProjectsSuccess(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/projects", func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Authorization"); got != "Bearer tok123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "bad header " + got})
			return
		}
		if req.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Write([]byte(`[{"id":1,"title":"A","description":"d","required_skills":"SQL"},{"id":2,"title":"B","description":"e"}]`))
	})
	c := newTestClient(t, r)

	got, err := c.ListProjects(context.Background(), "tok123", model.ProjectQuery{})
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	first := got[0]
	if first.ID != 1 || first.Title != "A" || first.Description != "d" {
		t.Errorf("first = %+v", first)
	}
	if first.RequiredSkills == nil || *first.RequiredSkills != "SQL" {
		t.Errorf("RequiredSkills = %v, want SQL", first.RequiredSkills)
	}
	if got[1].ID != 2 || got[1].RequiredSkills != nil {
		t.Errorf("second = %+v, want id 2 without skills", got[1])
	}
}

func TestListProjectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty array", body: `[]`},
		{name: "null", body: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/projects", func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			})
			c := newTestClient(t, r)

			got, err := c.ListProjects(context.Background(), "tok", model.ProjectQuery{})
			if err != nil {
				t.Fatalf("ListProjects: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("got %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestListProjectsQuery(t *testing.T) {
	r := chi.NewRouter()
	var gotQuery string
	r.Get("/projects", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.RawQuery
		w.Write([]byte(`[]`))
	})
	c := newTestClient(t, r)

	_, err := c.ListProjects(context.Background(), "tok", model.ProjectQuery{Search: "python go", Skip: 2, Limit: 5})
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if want := "limit=5&search=python+go&skip=2"; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestListProjectsUnauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/projects", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(t, r)

	_, err := c.ListProjects(context.Background(), "expired", model.ProjectQuery{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if !se.Unauthorized() {
		t.Errorf("Unauthorized() = false for %d", se.StatusCode)
	}
	if se.Message() != "Unauthorized" {
		t.Errorf("Message() = %q, want %q", se.Message(), "Unauthorized")
	}
}

func TestListProjectsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTP(url, config.DefaultEndpoints(), time.Second)
	_, err := c.ListProjects(context.Background(), "tok", model.ProjectQuery{})
	if !apperr.Is(err, apperr.Transport) {
		t.Fatalf("err = %v, want transport kind", err)
	}
}

func TestListProjectsMalformedBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/projects", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	})
	c := newTestClient(t, r)

	if _, err := c.ListProjects(context.Background(), "tok", model.ProjectQuery{}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantDetail string
	}{
		{name: "created", status: http.StatusCreated, body: `{"message":"User registered successfully"}`},
		{name: "conflict", status: http.StatusBadRequest, body: `{"detail":"email already exists"}`, wantErr: true, wantDetail: "email already exists"},
		{
			name:       "validation",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"}]}`,
			wantErr:    true,
			wantDetail: "email: value is not a valid email address",
		},
		{name: "no detail", status: http.StatusInternalServerError, body: `oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			var got model.RegisterRequest
			r.Post("/auth/register", func(w http.ResponseWriter, req *http.Request) {
				if ct := req.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q", ct)
				}
				_ = json.NewDecoder(req.Body).Decode(&got)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			c := newTestClient(t, r)

			in := model.RegisterRequest{Email: "a@b.com", Password: "pw", Role: model.RoleOrganization}
			err := c.Register(context.Background(), in)
			if got != in {
				t.Errorf("server received %+v, want %+v", got, in)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *StatusError", err)
			}
			if se.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", se.Detail, tt.wantDetail)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		header    string
		wantToken string
		wantErr   bool
	}{
		{name: "access_token", status: http.StatusOK, body: `{"access_token":"jwt-1","token_type":"bearer"}`, wantToken: "jwt-1"},
		{name: "token alias", status: http.StatusOK, body: `{"token":"jwt-2"}`, wantToken: "jwt-2"},
		{name: "header fallback", status: http.StatusOK, body: `{}`, header: "Bearer jwt-3", wantToken: "jwt-3"},
		{name: "missing token", status: http.StatusOK, body: `{}`, wantErr: true},
		{name: "bad password", status: http.StatusUnauthorized, body: `{"detail":"Invalid credentials"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
				var in model.LoginRequest
				_ = json.NewDecoder(req.Body).Decode(&in)
				if in.Email != "a@b.com" || in.Password != "pw" {
					t.Errorf("login body = %+v", in)
				}
				if tt.header != "" {
					w.Header().Set("Authorization", tt.header)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			c := newTestClient(t, r)

			got, err := c.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Password: "pw"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() err = %v, wantErr %v", err, tt.wantErr)
			}
			if got.AccessToken != tt.wantToken {
				t.Errorf("AccessToken = %q, want %q", got.AccessToken, tt.wantToken)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "MicroMatch API is running!"})
	})
	c := newTestClient(t, r)

	msg, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if msg != "MicroMatch API is running!" {
		t.Errorf("Status() = %q", msg)
	}
}

func TestStatusErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  StatusError
		want string
	}{
		{name: "detail wins", err: StatusError{StatusCode: 400, Status: "400 Bad Request", Detail: "email already exists"}, want: "email already exists"},
		{name: "status line", err: StatusError{StatusCode: 401, Status: "401 Unauthorized"}, want: "Unauthorized"},
		{name: "custom reason", err: StatusError{StatusCode: 418, Status: "418 Short and stout"}, want: "Short and stout"},
		{name: "empty status", err: StatusError{StatusCode: 503}, want: "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Bearer abc", "abc"},
		{"bearer   abc ", "abc"},
		{"Basic abc", ""},
		{"Bearerabc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseBearerToken(tt.in); got != tt.want {
			t.Errorf("parseBearerToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
