package routes

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle
// before rebuilding.
const DefaultDebounce = 100 * time.Millisecond

// BuildFunc receives every route table built by Watch, or the error that
// prevented it.
type BuildFunc func(*Table, error)

// Watch builds the route table, then rebuilds it whenever a page file under
// the pages directory changes, until ctx is cancelled. Bursts of events
// within debounce produce a single rebuild. A zero debounce uses
// DefaultDebounce.
func (b *Builder) Watch(ctx context.Context, debounce time.Duration, onBuild BuildFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := b.watchDir(watcher, b.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", b.dir, err)
	}

	onBuild(b.Build(ctx))

	// Debounce timer; stopped until the first relevant event
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var changed string

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !b.relevant(watcher, event) {
				continue
			}
			changed = event.Name
			timer.Reset(debounce)

		case <-timer.C:
			b.logger.Info("change detected, rebuilding routes", "file", changed)
			onBuild(b.Build(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant reports whether event affects the route table. New directories
// are added to the watch list and count as a change, since files may have
// been moved in with them.
func (b *Builder) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == event.Op {
		return false
	}
	if skipEntry(filepath.Base(event.Name)) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := b.watchDir(watcher, event.Name); err != nil {
				b.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
			}
			return true
		}
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		// a removed directory may have held pages
		if filepath.Ext(event.Name) == "" {
			return true
		}
	}
	return b.IsPage(event.Name)
}

func (b *Builder) watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		// Skip node_modules and hidden directories
		if path != dir && skipEntry(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
