package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ReadFromEnv fills cfg from environment variables layered over defaults.
// Nested keys use a double underscore separator, e.g. POSTGRES__HOST maps
// to Postgres.Host.
func ReadFromEnv(cfg any, defaults any) error {
	k := koanf.New(".")

	if defaults != nil {
		if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
			return fmt.Errorf("load defaults: %w", err)
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	return k.Unmarshal("", cfg)
}
