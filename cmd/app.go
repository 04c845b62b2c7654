// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"strings"

	"micromatch/cli/internal/auth"
	"micromatch/cli/internal/backend"
	"micromatch/cli/internal/config"
	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/keychain"
	"micromatch/cli/internal/logging"
	"micromatch/cli/internal/nav"
	"micromatch/cli/internal/projects"
	"micromatch/cli/internal/session"
	"micromatch/cli/internal/xdg"

	"github.com/pterm/pterm"
)

// app is the object graph shared by the commands of one process.
type app struct {
	cfg      config.Config
	log      *pterm.Logger
	be       backend.API
	sessions *session.Manager
	auth     *auth.Service
	nav      *nav.Navigator
	projects *projects.Client
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if apperr.Is(err, apperr.Config) {
			return cfg, err
		}
		// No XDG dir; run on defaults.
		cfg = config.Default()
	}
	if serverFlag != "" {
		cfg.ServerURL = strings.TrimRight(strings.TrimSpace(serverFlag), "/")
	}
	if verboseFlag {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// newApp builds the session from the keychain and wires the components.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, cfg.Verbose())
	be := backend.New(cfg, backend.WithLogger(log))

	sessions := session.New(openStore(log), session.WithLogger(log))
	a := &app{
		cfg:      cfg,
		log:      log,
		be:       be,
		sessions: sessions,
		auth:     auth.NewService(be, sessions, log),
		nav:      nav.NewNavigator(sessions),
		projects: projects.NewClient(be, projects.WithLogger(log)),
	}
	a.nav.Attach()
	return a, nil
}

// openStore opens the OS keychain, or an in-memory store when none is
// usable so that the CLI still works for the current process.
func openStore(log *pterm.Logger) session.Store {
	dir, err := xdg.StateDir()
	if err == nil {
		var store *keychain.Store
		if store, err = keychain.Open(dir); err == nil {
			return store
		}
	}
	log.Warn("secure storage unavailable, the session will not be kept", log.Args("error", err.Error()))
	return keychain.NewMemoryStore()
}
