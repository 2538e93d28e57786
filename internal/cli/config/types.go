// Package config provides configuration management for the definepage CLI.
//
// Values are layered with koanf: built-in defaults, then the project's
// definepage.yaml, then DEFINEPAGE_* environment variables, then flags that
// were set explicitly on the command line.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/definepage/pkg/definepage"
)

// Config holds all CLI configuration options.
type Config struct {
	PagesDir    string   `koanf:"pages_dir"`
	Macro       string   `koanf:"macro"`
	Extensions  []string `koanf:"extensions"`
	Output      string   `koanf:"output"`
	Verbose     bool     `koanf:"verbose"`
	Verify      bool     `koanf:"verify"`
	SourceMap   bool     `koanf:"sourcemap"`
	Concurrency int      `koanf:"concurrency"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// TransformerOptions returns the transformer settings described by c.
func (c *Config) TransformerOptions(logger *slog.Logger) []definepage.Option {
	return []definepage.Option{
		definepage.WithMacro(c.Macro),
		definepage.WithLogger(logger),
		definepage.WithSourceMap(c.SourceMap),
		definepage.WithVerify(c.Verify),
	}
}

// NewTransformer builds a transformer from c.
func (c *Config) NewTransformer(logger *slog.Logger) *definepage.Transformer {
	return definepage.New(c.TransformerOptions(logger)...)
}
