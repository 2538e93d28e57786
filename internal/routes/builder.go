// Package routes builds a route table from a directory of page components,
// overlaying the static route information each page declares with its
// macro call.
package routes

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/definepage/pkg/definepage"
)

// Route is one entry of the route table.
type Route struct {
	File     string   `json:"file" yaml:"file"` // slash-separated, relative to the pages directory
	Name     string   `json:"name" yaml:"name"`
	Path     string   `json:"path" yaml:"path"`
	Alias    []string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Macro    bool     `json:"macro" yaml:"macro"` // the page calls the macro
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Table is a route table in page discovery order.
type Table struct {
	Dir    string  `json:"dir" yaml:"dir"`
	Routes []Route `json:"routes" yaml:"routes"`
}

// Lookup returns the route with the given name.
func (t *Table) Lookup(name string) (Route, bool) {
	for _, r := range t.Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Options configures a Builder.
type Options struct {
	PagesDir    string
	Extensions  []string // e.g. ".vue"; defaults to .vue
	Concurrency int      // 0 means one worker per CPU
	Transformer *definepage.Transformer
	Logger      *slog.Logger
}

// Builder scans a pages directory and extracts route information.
type Builder struct {
	dir         string
	exts        []string
	concurrency int
	transformer *definepage.Transformer
	logger      *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		dir:         opts.PagesDir,
		exts:        opts.Extensions,
		concurrency: opts.Concurrency,
		transformer: opts.Transformer,
		logger:      opts.Logger,
	}
	if len(b.exts) == 0 {
		b.exts = []string{".vue"}
	}
	if b.concurrency <= 0 {
		b.concurrency = runtime.NumCPU()
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	if b.transformer == nil {
		b.transformer = definepage.New(definepage.WithLogger(b.logger))
	}
	return b
}

// Dir returns the pages directory.
func (b *Builder) Dir() string {
	return b.dir
}

// IsPage reports whether path has one of the page extensions.
func (b *Builder) IsPage(path string) bool {
	return slices.Contains(b.exts, strings.ToLower(filepath.Ext(path)))
}

// Discover returns the page files under the pages directory, relative and
// slash-separated, in lexical order. Hidden entries and node_modules are
// skipped.
func (b *Builder) Discover() ([]string, error) {
	var files []string
	err := filepath.WalkDir(b.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != b.dir && skipEntry(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !b.IsPage(path) {
			return nil
		}
		rel, err := filepath.Rel(b.dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan pages directory %s: %w", b.dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func skipEntry(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}

// Build discovers the pages and extracts their route information in
// parallel. Routes keep discovery order. The first fatal extraction error
// cancels the build.
func (b *Builder) Build(ctx context.Context) (*Table, error) {
	files, err := b.Discover()
	if err != nil {
		return nil, err
	}

	routes := make([]Route, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			route, err := b.buildRoute(rel)
			if err != nil {
				return err
			}
			routes[i] = route
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.checkNames(routes)
	b.logger.Debug("built route table", "dir", b.dir, "routes", len(routes))
	return &Table{Dir: b.dir, Routes: routes}, nil
}

// buildRoute derives the default route for a page and overlays what its
// macro call declares.
func (b *Builder) buildRoute(rel string) (Route, error) {
	path := filepath.Join(b.dir, filepath.FromSlash(rel))
	code, err := os.ReadFile(path)
	if err != nil {
		return Route{}, fmt.Errorf("failed to read page %s: %w", rel, err)
	}

	route := Route{
		File: rel,
		Name: RouteName(rel),
		Path: RoutePath(rel),
	}

	info, warnings, err := b.transformer.ExtractRouteInfo(definepage.Document{ID: path, Code: string(code)})
	if err != nil {
		return Route{}, err
	}
	for _, w := range warnings {
		route.Warnings = append(route.Warnings, w.String())
	}
	if info == nil {
		return route, nil
	}

	route.Macro = true
	if info.Name != nil {
		route.Name = *info.Name
	}
	if info.Path != nil {
		route.Path = *info.Path
	}
	route.Alias = info.Alias
	return route, nil
}

// checkNames logs routes that share a name. The router keeps the last one
// registered, so the earlier page becomes unreachable by name.
func (b *Builder) checkNames(routes []Route) {
	seen := make(map[string]string, len(routes))
	for _, r := range routes {
		if prev, ok := seen[r.Name]; ok {
			b.logger.Warn("duplicate route name", "name", r.Name, "file", r.File, "previous", prev)
		}
		seen[r.Name] = r.File
	}
}
