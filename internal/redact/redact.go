// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package redact strips secret values from strings before they are printed.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variables whose values must never be
// echoed back to the terminal.
var sensitiveEnvVars = []string{
	"DANDI_API_KEY",
	"DANDIDASH_API_KEY",
}

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// String replaces every occurrence of a known secret with "[REDACTED]".
// Secrets are read from the environment on first use.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}

// Token replaces a specific token value, for secrets that arrive through
// flags or config files rather than the environment.
func Token(s, token string) string {
	if len(token) < 4 {
		return s
	}
	return strings.ReplaceAll(s, token, "[REDACTED]")
}
