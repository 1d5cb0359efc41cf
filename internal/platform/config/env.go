// Package config loads service configuration from the process environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Lookup returns the value for an environment key when present.
type Lookup func(string) (string, bool)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvFrom loads configuration from a fixed set of key/value pairs
// instead of the process environment.
func ParseEnvFrom(target any, values map[string]string) error {
	if values == nil {
		values = map[string]string{}
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: values}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FirstNonEmpty returns the first trimmed, non-empty value among keys.
func FirstNonEmpty(lookup Lookup, keys ...string) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range keys {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
