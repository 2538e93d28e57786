package routes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/definepage/internal/testutil"
	"github.com/leapstack-labs/definepage/pkg/definepage"
)

func TestBuilder_Discover(t *testing.T) {
	dir := testutil.SetupPagesDir(t)
	b := NewBuilder(Options{PagesDir: dir})

	files, err := b.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"[...missing].vue",
		"about.vue",
		"index.vue",
		"users/[id].vue",
		"users/index.vue",
	}, files)

	b = NewBuilder(Options{PagesDir: dir, Extensions: []string{".ts"}})
	files, err = b.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"components/Card.ts"}, files)
}

func TestBuilder_Discover_MissingDir(t *testing.T) {
	b := NewBuilder(Options{PagesDir: filepath.Join(t.TempDir(), "nope")})
	_, err := b.Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan pages directory")
}

func TestBuilder_Build(t *testing.T) {
	dir := testutil.SetupPagesDir(t)
	logger, logs := testutil.NewCaptureLogger()
	b := NewBuilder(Options{PagesDir: dir, Concurrency: 2, Logger: logger})

	table, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dir, table.Dir)
	require.Len(t, table.Routes, 5)

	assert.Equal(t, Route{File: "[...missing].vue", Name: "/[...missing]", Path: "/:missing(.*)"}, table.Routes[0])
	assert.Equal(t, Route{File: "about.vue", Name: "about", Path: "/about", Alias: []string{"/about-us", "/team"}, Macro: true}, table.Routes[1])
	assert.Equal(t, Route{File: "index.vue", Name: "/", Path: "/"}, table.Routes[2])
	assert.Equal(t, Route{File: "users/[id].vue", Name: "/users/[id]", Path: "/u/:id", Macro: true}, table.Routes[3])

	users := table.Routes[4]
	assert.Equal(t, "/users", users.Name, "non-literal name keeps the default")
	assert.True(t, users.Macro)
	require.Len(t, users.Warnings, 1)
	assert.Contains(t, users.Warnings[0], "route name must be a string literal")

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "built route table")

	route, ok := table.Lookup("about")
	require.True(t, ok)
	assert.Equal(t, "/about", route.Path)
	_, ok = table.Lookup("hidden")
	assert.False(t, ok)
}

func TestBuilder_Build_FatalError(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"ok.vue":  testutil.Page("definePage({ name: 'ok' })"),
		"dup.vue": testutil.Page("definePage({})\ndefinePage({})"),
	})

	_, err := NewBuilder(Options{PagesDir: dir}).Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, definepage.ErrDuplicateMacro)
	assert.Contains(t, err.Error(), "dup.vue")
}

func TestBuilder_Build_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"a.vue": testutil.Page("definePage({ name: 'same' })"),
		"b.vue": testutil.Page("definePage({ name: 'same' })"),
	})
	logger, logs := testutil.NewCaptureLogger()

	table, err := NewBuilder(Options{PagesDir: dir, Logger: logger}).Build(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Routes, 2)
	assert.Contains(t, logs.String(), "duplicate route name")
}

func TestBuilder_Build_CustomMacro(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"a.vue": testutil.Page("defineRoute({ name: 'custom' })"),
	})

	tr := definepage.New(definepage.WithMacro("defineRoute"))
	table, err := NewBuilder(Options{PagesDir: dir, Transformer: tr}).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Routes, 1)
	assert.Equal(t, "custom", table.Routes[0].Name)
}

func TestBuilder_Build_Cancelled(t *testing.T) {
	dir := testutil.SetupPagesDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(Options{PagesDir: dir}).Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilder_IsPage(t *testing.T) {
	b := NewBuilder(Options{PagesDir: os.TempDir(), Extensions: []string{".vue", ".md"}})
	assert.True(t, b.IsPage("a/b.vue"))
	assert.True(t, b.IsPage("README.MD"))
	assert.False(t, b.IsPage("a/b.ts"))
}
