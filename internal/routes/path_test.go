package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutePath(t *testing.T) {
	tests := []struct {
		file string
		name string
		path string
	}{
		{"index.vue", "/", "/"},
		{"about.vue", "/about", "/about"},
		{"users/index.vue", "/users", "/users"},
		{"users/[id].vue", "/users/[id]", "/users/:id"},
		{"users/[id]/posts.vue", "/users/[id]/posts", "/users/:id/posts"},
		{"docs/[[lang]].vue", "/docs/[[lang]]", "/docs/:lang?"},
		{"[...slug].vue", "/[...slug]", "/:slug(.*)"},
		{"files/[...path]/index.vue", "/files/[...path]", "/files/:path(.*)"},
		{"user-[id].vue", "/user-[id]", "/user-:id"},
		{"(admin)/settings.vue", "/(admin)/settings", "/settings"},
		{"nested/index/index.vue", "/nested/index", "/nested/index"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.name, RouteName(tt.file))
			assert.Equal(t, tt.path, RoutePath(tt.file))
		})
	}
}
