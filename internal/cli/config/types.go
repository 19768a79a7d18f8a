// Package config provides configuration management for the leapverb CLI.
//
// Values are layered from built-in defaults, a leapverb.yaml project file,
// LEAPVERB_ environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"strings"

	"github.com/leapstack-labs/leapverb/internal/state"
	"github.com/leapstack-labs/leapverb/pkg/lint"
)

// Default values applied before any file, environment or flag is read.
const (
	DefaultGrammarFile = "grammar.yaml"
	DefaultWorldFile   = ".leapverb/world.db"
	DefaultWorldSeed   = "world.yaml"
	DefaultScriptsDir  = "scripts"
	DefaultHistoryFile = ".leapverb/history"
	DefaultOutput      = "auto"
	DefaultAddr        = ":8080"
)

// ConfigFileNames lists the project file names searched for, in order.
var ConfigFileNames = []string{"leapverb.yaml", "leapverb.yml"}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	Addr  string `koanf:"addr"`
	Watch bool   `koanf:"watch"`
}

// Config holds all CLI configuration options.
type Config struct {
	Grammar      string      `koanf:"grammar"`
	World        string      `koanf:"world"`
	WorldDriver  string      `koanf:"world_driver"`
	WorldSeed    string      `koanf:"world_seed"`
	ScriptsDir   string      `koanf:"scripts_dir"`
	Articles     []string    `koanf:"articles"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	History      string      `koanf:"history"`
	Serve        ServeConfig `koanf:"serve"`
	Lint         LintConfig  `koanf:"lint"`

	// ProjectRoot is the directory relative paths were resolved against.
	ProjectRoot string `koanf:"-"`
}

// LintConfig selects and grades the lint rules run by check.
type LintConfig struct {
	// Disabled lists rule ids to skip, e.g. [GR01, WD03]
	Disabled []string `koanf:"disabled"`
	// Severity maps rule ids to error, warning, info or hint
	Severity map[string]lint.Severity `koanf:"severity"`
}

// Rules converts the settings into an analyzer configuration.
func (l LintConfig) Rules() *lint.Config {
	c := lint.NewConfig()
	for _, id := range l.Disabled {
		c.Disable(id)
	}
	for id, sev := range l.Severity {
		c.SetSeverity(id, sev)
	}
	return c
}

// IsFileWorld reports whether the world store lives in a local file that
// the CLI may need to create a directory for.
func (c *Config) IsFileWorld() bool {
	return c.WorldDriver == state.DriverSQLite && c.World != "" && c.World != ":memory:" &&
		!strings.HasPrefix(c.World, "file:")
}
