// Package config loads project settings from .runbook.yaml with RUNBOOK_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".runbook.yaml"

const envPrefix = "RUNBOOK_"

type Config struct {
	AgentsDir    string `koanf:"agents-dir"`
	BaselineDir  string `koanf:"baseline-dir"`
	PlansDir     string `koanf:"plans-dir"`
	DefaultModel string `koanf:"default-model"`
	Stage        bool   `koanf:"stage"`
	LogLevel     string `koanf:"log-level"`

	SensitivePrefixes []string `koanf:"sensitive-prefixes"`
	SensitivePatterns []string `koanf:"sensitive-patterns"`
	KnownFiles        []string `koanf:"known-files"`
}

var defaults = []byte(`
agents-dir: .claude/agents
baseline-dir: agent-core/agents
plans-dir: plans
default-model: sonnet
stage: true
log-level: warn
sensitive-prefixes:
  - agent-core/skills/
  - agent-core/fragments/
  - agent-core/agents/
sensitive-patterns:
  - '^agents/decisions/workflow-[^/]+\.md$'
known-files: []
`)

// Default returns the built-in settings, ignoring the environment.
func Default() *Config {
	cfg, err := load(nil, false)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads path over the defaults, then applies RUNBOOK_* variables.
// An empty path means DefaultFile, which may be absent; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	required := path != ""
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		data = nil
	case err != nil:
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := load(data, true)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(file []byte, withEnv bool) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, err
	}
	if len(file) > 0 {
		if err := k.Load(rawbytes.Provider(file), yaml.Parser()); err != nil {
			return nil, err
		}
	}
	if withEnv {
		if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
			return nil, err
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var listKeys = map[string]bool{
	"sensitive-prefixes": true,
	"sensitive-patterns": true,
	"known-files":        true,
}

// envValue maps RUNBOOK_AGENTS_DIR to agents-dir. List settings take a
// comma-separated value.
func envValue(key, value string) (string, any) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", "-")
	if listKeys[name] {
		var items []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				items = append(items, v)
			}
		}
		return name, items
	}
	return name, value
}

// Patterns compiles the sensitive path patterns.
func (c *Config) Patterns() ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(c.SensitivePatterns))
	for _, p := range c.SensitivePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("config: invalid sensitive-pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}
