package definepage

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/definepage/pkg/token"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrDuplicateMacro = errors.New("duplicate macro call")
	ErrScopeLeak      = errors.New("macro argument references setup scope")
	ErrInvalidShape   = errors.New("invalid macro argument")
	ErrInvalidOutput  = errors.New("transform output does not parse")
)

// DuplicateMacroError is returned when a setup script calls the macro more
// than once.
type DuplicateMacroError struct {
	File      string
	Macro     string
	Positions []token.Position // one per call, in source order

	offsets []int
}

func (e *DuplicateMacroError) Error() string {
	msg := fmt.Sprintf("duplicate %s() call (%d calls", e.Macro, len(e.Positions))
	if len(e.Positions) > 1 && e.Positions[0].IsValid() {
		msg += fmt.Sprintf(", first at line %d, second at line %d", e.Positions[0].Line, e.Positions[1].Line)
	}
	msg += ")"
	return prefixFile(e.File, msg)
}

func (e *DuplicateMacroError) Unwrap() error { return ErrDuplicateMacro }

// ScopeLeakError is returned in isolate mode when the macro argument
// references a binding declared in the setup script.
type ScopeLeakError struct {
	File       string
	Macro      string
	Identifier string
	Pos        token.Position
}

func (e *ScopeLeakError) Error() string {
	msg := fmt.Sprintf("%s() in <script setup> cannot reference locally declared variable %q because it is extracted outside of the setup script", e.Macro, e.Identifier)
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, msg)
	}
	return prefixFile(e.File, msg)
}

func (e *ScopeLeakError) Unwrap() error { return ErrScopeLeak }

// ShapeError is returned when the macro argument is not a single object
// literal where one is required.
type ShapeError struct {
	File   string
	Macro  string
	Reason string
	Pos    token.Position
}

func (e *ShapeError) Error() string {
	return prefixFile(e.File, fmt.Sprintf("%s() %s", e.Macro, e.Reason))
}

func (e *ShapeError) Unwrap() error { return ErrInvalidShape }

// VerifyError is returned when WithVerify is set and the transform output
// fails to re-parse.
type VerifyError struct {
	File     string
	Messages []string
}

func (e *VerifyError) Error() string {
	msg := "transform output does not parse"
	for _, m := range e.Messages {
		msg += "\n  " + m
	}
	return prefixFile(e.File, msg)
}

func (e *VerifyError) Unwrap() error { return ErrInvalidOutput }

func prefixFile(file, msg string) string {
	if file == "" {
		return msg
	}
	return "[" + file + "]: " + msg
}
