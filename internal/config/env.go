// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings read from the environment.
type Env struct {
	// APIKey authenticates against the DANDI API. It is never written to
	// config files.
	APIKey      string   `env:"DANDI_API_KEY"`
	APIURL      string   `env:"DANDIDASH_API_URL"`
	CacheDir    string   `env:"DANDIDASH_CACHE_DIR"`
	Dandiset    string   `env:"DANDIDASH_DANDISET"`
	Modalities  []string `env:"DANDIDASH_MODALITIES" envSeparator:","`
	Concurrency int      `env:"DANDIDASH_CONCURRENCY"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
