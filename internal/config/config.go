// Package config loads the optional client configuration file. Values from
// the file sit between command-line flags and built-in defaults: a flag
// always wins, the file fills in what the flags leave unset.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds per-user client settings.
type Config struct {
	// APIURL overrides the provider endpoint.
	APIURL string `yaml:"api_url,omitempty"`

	// ReportFile is the default HTML report path when --reportfile is
	// not given.
	ReportFile string `yaml:"report_file,omitempty"`

	// JournalFile is the default run journal database path when
	// --journal is not given.
	JournalFile string `yaml:"journal_file,omitempty"`
}

// DefaultPath returns the conventional config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wfclient", "config.yaml")
}

// Load reads a config file. A missing file at the default location is not
// an error: the zero Config is returned so every value falls through to
// flags and built-in defaults. Unknown fields are rejected to catch typos.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flag-over-file precedence for one string setting.
func Resolve(flagValue, fileValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}
