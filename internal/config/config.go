// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token lives in the
// OS keychain (see internal/keychain).
package config

import (
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/xdg"
)

// Environment variables that override the config file.
const (
	EnvServer  = "MICROMATCH_SERVER"
	EnvVerbose = "MICROMATCH_VERBOSE"
)

// DefaultServerURL is the development address of the MicroMatch API.
const DefaultServerURL = "http://127.0.0.1:8000"

// Config holds non-sensitive CLI settings.
type Config struct {
	ServerURL      string    `json:"server_url"`
	LogLevel       string    `json:"log_level"`
	TimeoutSeconds int       `json:"timeout_seconds"`
	Endpoints      Endpoints `json:"endpoints"`
}

// Endpoints holds the REST paths consumed by the client.
type Endpoints struct {
	Register string `json:"register"` // e.g., "/auth/register"
	Login    string `json:"login"`    // e.g., "/auth/login"
	Projects string `json:"projects"` // e.g., "/projects"
	Status   string `json:"status"`   // e.g., "/"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerURL:      DefaultServerURL,
		LogLevel:       "info",
		TimeoutSeconds: 10,
		Endpoints:      DefaultEndpoints(),
	}
}

// DefaultEndpoints returns the paths served by the MicroMatch API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Register: "/auth/register",
		Login:    "/auth/login",
		Projects: "/projects",
		Status:   "/",
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Verbose reports whether debug logging was requested.
func (c Config) Verbose() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Validate checks that the server URL is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return apperr.Wrap(apperr.Config, "invalid server_url", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperr.New(apperr.Config, "server_url must use http or https: "+c.ServerURL)
	}
	if u.Host == "" {
		return apperr.New(apperr.Config, "server_url has no host: "+c.ServerURL)
	}
	return nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file from the XDG config dir and applies
// environment overrides. A missing file yields defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from an explicit path and applies
// environment overrides.
func LoadFrom(p string) (Config, error) {
	c, err := LoadFile(p)
	if err != nil {
		return c, err
	}
	c.applyEnv()
	return c, nil
}

// LoadFile reads p without environment overrides. A missing file yields
// defaults.
func LoadFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, apperr.Wrap(apperr.Config, "read config", err)
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return Default(), apperr.Wrap(apperr.Config, "parse "+p, err)
		}
	}
	c.fillDefaults()
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes configuration to an explicit path.
func SaveTo(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// fillDefaults restores zero fields a partial config file left out.
func (c *Config) fillDefaults() {
	d := Default()
	if strings.TrimSpace(c.ServerURL) == "" {
		c.ServerURL = d.ServerURL
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.Endpoints.Register == "" {
		c.Endpoints.Register = d.Endpoints.Register
	}
	if c.Endpoints.Login == "" {
		c.Endpoints.Login = d.Endpoints.Login
	}
	if c.Endpoints.Projects == "" {
		c.Endpoints.Projects = d.Endpoints.Projects
	}
	if c.Endpoints.Status == "" {
		c.Endpoints.Status = d.Endpoints.Status
	}
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvServer)); v != "" {
		c.ServerURL = strings.TrimRight(v, "/")
	}
	if os.Getenv(EnvVerbose) == "1" {
		c.LogLevel = "debug"
	}
}
