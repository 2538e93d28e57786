// Package definepage implements the definePage() compile-time macro for
// single-file page components.
//
// A page component declares its route configuration with a single call in
// its <script setup> block:
//
//	definePage({ name: 'user-detail', path: '/users/:id' })
//
// The macro has two compilation targets. In isolate mode the document is
// reduced to a module that default-exports the configuration object, for the
// route generator. In strip mode the call is erased and the rest of the
// document is left byte-for-byte intact, so the macro has no runtime cost.
//
// A Transformer is immutable after construction and safe for concurrent use.
package definepage

import (
	"log/slog"
	"strings"
)

// DefaultMacro is the recognized macro name.
const DefaultMacro = "definePage"

// ExportPrefix is written in front of the configuration expression in
// isolate mode.
const ExportPrefix = "export default "

// Document is a component source and its logical identifier (usually the
// module id used by the build pipeline, which may carry a query string).
type Document struct {
	ID   string
	Code string
}

// Mode selects the compilation target.
type Mode int

const (
	// ModeStrip removes the macro call and keeps everything else.
	ModeStrip Mode = iota
	// ModeIsolate keeps only the macro argument, as a default export.
	ModeIsolate
)

func (m Mode) String() string {
	switch m {
	case ModeIsolate:
		return "isolate"
	default:
		return "strip"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strip", "":
		return ModeStrip, true
	case "isolate":
		return ModeIsolate, true
	}
	return ModeStrip, false
}

// ModeFromID derives the mode from a module id. The build pipeline requests
// the isolated configuration by adding the macro name as a query key,
// e.g. "/src/pages/user.vue?definePage&vue".
func ModeFromID(id, macro string) Mode {
	_, query, ok := strings.Cut(id, "?")
	if !ok {
		return ModeStrip
	}
	for _, part := range strings.Split(query, "&") {
		key, _, _ := strings.Cut(part, "=")
		if key == macro {
			return ModeIsolate
		}
	}
	return ModeStrip
}

// Transformer runs the macro transform and route-info extraction.
type Transformer struct {
	macro     string
	logger    *slog.Logger
	sourceMap bool
	verify    bool
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithMacro overrides the recognized macro name.
func WithMacro(name string) Option {
	return func(t *Transformer) {
		if name != "" {
			t.macro = name
		}
	}
}

// WithLogger sets the logger that receives warnings and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithSourceMap enables source map generation for transform results.
func WithSourceMap(enabled bool) Option {
	return func(t *Transformer) {
		t.sourceMap = enabled
	}
}

// WithVerify re-parses every transform output with esbuild and fails the
// transform if the output is not valid.
func WithVerify(enabled bool) Option {
	return func(t *Transformer) {
		t.verify = enabled
	}
}

// New creates a Transformer.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		macro:  DefaultMacro,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Macro returns the recognized macro name.
func (t *Transformer) Macro() string {
	return t.macro
}

// mentionsMacro is a cheap pre-check that avoids parsing documents which
// cannot contain a call.
func (t *Transformer) mentionsMacro(code string) bool {
	return strings.Contains(code, t.macro)
}
