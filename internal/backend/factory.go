// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"micromatch/cli/internal/config"
)

// New creates a backend API implementation from the loaded configuration.
func New(cfg config.Config, opts ...Option) API {
	return newHTTP(cfg.ServerURL, cfg.Endpoints, cfg.Timeout(), opts...)
}
