package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Page returns a page component whose setup script runs body.
func Page(body string) string {
	return "<template>\n  <div />\n</template>\n\n<script setup lang=\"ts\">\n" + body + "\n</script>\n"
}

// WriteFiles creates files under dir from a map of slash-separated relative
// paths to contents.
func WriteFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// SetupPagesDir creates a temporary pages directory with a small set of
// pages and returns its path.
func SetupPagesDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, map[string]string{
		"index.vue":          Page("const msg = 'home'"),
		"about.vue":          Page("definePage({ name: 'about', alias: ['/about-us', '/team'] })"),
		"users/[id].vue":     Page("definePage({ path: '/u/:id' })\nconst id = 1"),
		"users/index.vue":    Page("definePage({ name: dynamicName })"),
		"[...missing].vue":   Page(""),
		"components/Card.ts": "export const card = 1\n",
		".drafts/hidden.vue": Page("definePage({ name: 'hidden' })"),
		"node_modules/x.vue": Page("definePage({ name: 'dep' })"),
	})
	return dir
}
