package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/definepage/internal/cli/config"
	"github.com/leapstack-labs/definepage/internal/routes"
	"github.com/leapstack-labs/definepage/internal/testutil"
)

func TestNewTransformCommand(t *testing.T) {
	cmd := NewTransformCommand()

	assert.Equal(t, "transform <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"mode", "id", "out"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "auto", cmd.Flags().Lookup("mode").DefValue)
}

func TestNewRoutesCommand(t *testing.T) {
	cmd := NewRoutesCommand()

	assert.Equal(t, "routes", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	// Note: --output is a global persistent flag on root, not local to routes
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	require.NotNil(t, cmd.Flags().Lookup("debounce"))
	assert.Equal(t, routes.DefaultDebounce.String(), cmd.Flags().Lookup("debounce").DefValue)
}

func TestRoutesCommand_ConfigFromContext(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"index.vue": testutil.Page("definePage({ name: 'home' })"),
	})

	cfg := &config.Config{
		PagesDir:   dir,
		Macro:      "definePage",
		Extensions: []string{".vue"},
		Output:     "yaml",
	}
	ctx := context.WithValue(context.Background(), config.ConfigKey(), cfg)
	ctx = context.WithValue(ctx, config.LoggerKey(), testutil.NewTestLogger(t))

	cmd := NewRoutesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "name: home")
	assert.Contains(t, out.String(), "file: index.vue")
}

func TestTransformCommand_Stdin(t *testing.T) {
	cfg := &config.Config{Macro: "definePage", Extensions: []string{".vue"}, Output: "text"}
	ctx := context.WithValue(context.Background(), config.ConfigKey(), cfg)

	cmd := NewTransformCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(bytes.NewBufferString(testutil.Page("definePage({ path: '/x' })")))
	cmd.SetArgs([]string{"-", "--mode", "isolate"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Equal(t, "export default { path: '/x' }", out.String())
}

func TestTransformCommand_MissingFile(t *testing.T) {
	cfg := &config.Config{Macro: "definePage", Extensions: []string{".vue"}, Output: "text"}
	ctx := context.WithValue(context.Background(), config.ConfigKey(), cfg)

	cmd := NewTransformCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.vue")})
	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
