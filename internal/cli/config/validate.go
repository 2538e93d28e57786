package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	intconfig "github.com/leapstack-labs/definepage/internal/config"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !identifierPattern.MatchString(c.Macro) {
		return fmt.Errorf("macro must be a JavaScript identifier, got %q", c.Macro)
	}
	if !slices.Contains(intconfig.OutputFormats(), c.Output) {
		return fmt.Errorf("unknown output format %q (expected one of %s)", c.Output, strings.Join(intconfig.OutputFormats(), ", "))
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must list at least one file extension")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}
