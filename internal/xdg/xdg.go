// Package xdg resolves XDG Base Directory paths for micromatch.
// Directories are created on demand with private permissions because the
// state directory may hold the file-backed credential store.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "micromatch"

// ConfigDir returns $XDG_CONFIG_HOME/micromatch, falling back to
// ~/.config/micromatch.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/micromatch, falling back to
// ~/.local/state/micromatch.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(envVar, homeRel string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
