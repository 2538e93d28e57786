package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/definepage/internal/testutil"
	"github.com/leapstack-labs/definepage/pkg/definepage"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "definepage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("pages-dir", "", "pages directory")
	flags.String("macro", "", "macro name")
	flags.StringSlice("ext", nil, "page extensions")
	flags.StringP("output", "o", "", "output format")
	flags.Bool("verify", false, "verify output")
	flags.Int("concurrency", 0, "workers")
	return flags
}

// TestLoadConfig_Defaults tests that an empty config file yields the defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "{}\n")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	root := filepath.Dir(cfgPath)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "src", "pages"), cfg.PagesDir)
	assert.Equal(t, definepage.DefaultMacro, cfg.Macro)
	assert.Equal(t, []string{".vue"}, cfg.Extensions)
	assert.Equal(t, "text", cfg.Output)
	assert.False(t, cfg.Verify)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

// TestLoadConfig_File tests that file values override defaults.
func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, `pages_dir: app/routes
macro: defineRoute
extensions: [vue, .MD]
output: yaml
verify: true
sourcemap: true
concurrency: 3
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "app", "routes"), cfg.PagesDir)
	assert.Equal(t, "defineRoute", cfg.Macro)
	assert.Equal(t, []string{".vue", ".md"}, cfg.Extensions)
	assert.Equal(t, "yaml", cfg.Output)
	assert.True(t, cfg.Verify)
	assert.True(t, cfg.SourceMap)
	assert.Equal(t, 3, cfg.Concurrency)
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "macro: fromFile\nextensions: [.vue]\n")

	t.Setenv("DEFINEPAGE_MACRO", "fromEnv")
	t.Setenv("DEFINEPAGE_EXTENSIONS", ".vue, .page")
	t.Setenv("DEFINEPAGE_CONCURRENCY", "2")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "fromEnv", cfg.Macro, "env var should override config file")
	assert.Equal(t, []string{".vue", ".page"}, cfg.Extensions)
	assert.Equal(t, 2, cfg.Concurrency)
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "macro: fromFile\noutput: yaml\n")
	t.Setenv("DEFINEPAGE_MACRO", "fromEnv")

	flags := newFlags()
	require.NoError(t, flags.Set("macro", "fromFlag"))
	require.NoError(t, flags.Set("ext", ".vue,.tsx"))
	require.NoError(t, flags.Set("pages-dir", "relative/pages"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	abs, err := filepath.Abs("relative/pages")
	require.NoError(t, err)

	assert.Equal(t, "fromFlag", cfg.Macro, "flag value should override config file and env var")
	assert.Equal(t, []string{".vue", ".tsx"}, cfg.Extensions)
	assert.Equal(t, abs, cfg.PagesDir, "flag paths are relative to the working directory")
	assert.Equal(t, "yaml", cfg.Output, "unset flags keep the file value")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "output: yaml\n")
	t.Setenv("DEFINEPAGE_OUTPUT", "json")

	cfg, err := LoadConfig(cfgPath, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output, "env var should be used when flag is not set")
}

func TestLoadConfig_Errors(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	_, err = LoadConfig(writeConfig(t, "output: xml\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{Macro: "definePage", Output: "json", Extensions: []string{".vue"}}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "dollar macro", mutate: func(c *Config) { c.Macro = "$page" }},
		{name: "empty macro", mutate: func(c *Config) { c.Macro = "" }, errSubstr: "JavaScript identifier"},
		{name: "dotted macro", mutate: func(c *Config) { c.Macro = "a.b" }, errSubstr: "JavaScript identifier"},
		{name: "bad output", mutate: func(c *Config) { c.Output = "markdown" }, errSubstr: "unknown output format"},
		{name: "no extensions", mutate: func(c *Config) { c.Extensions = nil }, errSubstr: "at least one"},
		{name: "extension without dot", mutate: func(c *Config) { c.Extensions = []string{"vue"} }, errSubstr: "start with a dot"},
		{name: "negative concurrency", mutate: func(c *Config) { c.Concurrency = -1 }, errSubstr: "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := testutil.NewTestLogger(t)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestConfig_NewTransformer(t *testing.T) {
	cfg := &Config{Macro: "defineRoute"}
	tr := cfg.NewTransformer(testutil.NewTestLogger(t))
	assert.Equal(t, "defineRoute", tr.Macro())
}
