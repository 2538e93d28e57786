// Package config holds the defaults and project discovery shared by the CLI
// and the route-table builder.
package config

import "github.com/leapstack-labs/definepage/pkg/definepage"

// Default configuration values.
const (
	DefaultPagesDir    = "src/pages"
	DefaultMacro       = definepage.DefaultMacro
	DefaultOutput      = "text"
	DefaultConcurrency = 0 // one worker per CPU
)

// DefaultExtensions are the page file extensions scanned by default.
func DefaultExtensions() []string {
	return []string{".vue"}
}

// OutputFormats lists the accepted route-table output formats.
func OutputFormats() []string {
	return []string{"text", "json", "yaml"}
}
