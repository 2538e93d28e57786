package routes

import (
	"path"
	"regexp"
	"strings"
)

var (
	catchAllSegment = regexp.MustCompile(`\[\.\.\.([A-Za-z0-9_]+)\]`)
	optionalParam   = regexp.MustCompile(`\[\[([A-Za-z0-9_]+)\]\]`)
	requiredParam   = regexp.MustCompile(`\[([A-Za-z0-9_]+)\]`)
)

// RouteName returns the default route name for a page file: its path relative
// to the pages directory, without extension and trailing index segment.
//
//	users/[id].vue   -> /users/[id]
//	users/index.vue  -> /users
func RouteName(rel string) string {
	segments := pageSegments(rel)
	return "/" + strings.Join(segments, "/")
}

// RoutePath returns the default route path for a page file.
//
//	index.vue              -> /
//	users/[id].vue         -> /users/:id
//	docs/[[lang]].vue      -> /docs/:lang?
//	[...slug].vue          -> /:slug(.*)
//	(admin)/settings.vue   -> /settings
func RoutePath(rel string) string {
	segments := pageSegments(rel)
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if isGroup(seg) {
			continue
		}
		seg = catchAllSegment.ReplaceAllString(seg, ":$1(.*)")
		seg = optionalParam.ReplaceAllString(seg, ":$1?")
		seg = requiredParam.ReplaceAllString(seg, ":$1")
		out = append(out, seg)
	}
	return "/" + strings.Join(out, "/")
}

// pageSegments splits a slash-separated relative file path into route
// segments, dropping the extension and a trailing index.
func pageSegments(rel string) []string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	segments := strings.Split(rel, "/")
	if n := len(segments); n > 0 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}
	out := segments[:0]
	for _, seg := range segments {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// isGroup reports whether seg is a route group such as "(admin)", which
// organizes files without adding a path segment.
func isGroup(seg string) bool {
	return len(seg) > 2 && seg[0] == '(' && seg[len(seg)-1] == ')'
}
