package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"go.humanfmt.dev/jfmt"
)

// scanArgsForConfigFlag finds a --config/--config=value argument among
// args without going through full flag parsing, since its value is needed
// before the flag set it belongs to is constructed.
func scanArgsForConfigFlag(args []string) string {
	for i, a := range args {
		switch {
		case a == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		}
	}

	return ""
}

// loadConfigFile reads a YAML document at path and merges its fields into
// cfg, letting a persisted `--config` file supply defaults that CLI flags
// can still override (flags are parsed after this call, so they win).
func loadConfigFile(path string, cfg *jfmt.Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}
