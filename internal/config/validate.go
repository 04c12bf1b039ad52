package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

var validModels = map[string]bool{
	"opus":   true,
	"sonnet": true,
	"haiku":  true,
}

// Validate checks settings that would otherwise fail late in a compile.
func Validate(cfg *Config) error {
	dirs := []struct{ key, value string }{
		{"agents-dir", cfg.AgentsDir},
		{"baseline-dir", cfg.BaselineDir},
		{"plans-dir", cfg.PlansDir},
	}
	for _, d := range dirs {
		if strings.TrimSpace(d.value) == "" {
			return fmt.Errorf("config: '%s' must not be empty", d.key)
		}
	}
	cfg.DefaultModel = strings.ToLower(strings.TrimSpace(cfg.DefaultModel))
	if !validModels[cfg.DefaultModel] {
		return fmt.Errorf("config: unknown default-model %q (must be opus, sonnet, or haiku)", cfg.DefaultModel)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log-level %q: %w", cfg.LogLevel, err)
	}
	for _, p := range cfg.SensitivePrefixes {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config: 'sensitive-prefixes' entries must be non-empty")
		}
	}
	if _, err := cfg.Patterns(); err != nil {
		return err
	}
	return nil
}
