package definepage

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/definepage/pkg/jsnode"
)

// MacroCall is a located macro invocation. Node offsets are relative to the
// script block that contains the call.
type MacroCall struct {
	Name string
	Call *sitter.Node   // the call expression
	Stmt *sitter.Node   // the statement wrapping the call, or Call itself
	Args []*sitter.Node // argument expressions in source order

	end int // end of the call plus an explicit semicolon
}

// Arg returns the configuration expression, or nil if the call has no
// arguments.
func (m *MacroCall) Arg() *sitter.Node {
	if len(m.Args) == 0 {
		return nil
	}
	return m.Args[0]
}

// StmtRange returns the block-local range erased by strip mode: the call
// and a semicolon that directly follows it. Comments next to the call are
// outside the range, even when the grammar attaches them to the statement.
func (m *MacroCall) StmtRange() (start, end int) {
	return int(m.Call.StartByte()), m.end
}

// LocateMacro finds the single top-level call to the macro name. It returns
// nil without error when there is no call. More than one call is a
// *DuplicateMacroError listing every call.
func LocateMacro(stmts []*sitter.Node, src []byte, name string) (*MacroCall, error) {
	var found []*MacroCall
	for _, stmt := range stmts {
		expr := stmt
		if stmt.Type() == jsnode.ExpressionStatement {
			inner := jsnode.Children(stmt)
			if len(inner) != 1 {
				continue
			}
			expr = inner[0]
		}
		if !jsnode.IsCallOf(expr, src, name) {
			continue
		}
		found = append(found, &MacroCall{
			Name: name,
			Call: expr,
			Stmt: stmt,
			Args: jsnode.CallArguments(expr),
			end:  statementEnd(expr, stmt, src),
		})
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	}

	err := &DuplicateMacroError{Macro: name}
	for _, call := range found {
		off := int(call.Call.StartByte())
		err.offsets = append(err.offsets, off)
		err.Positions = append(err.Positions, localPosition(src, off))
	}
	return nil, err
}

// statementEnd returns the end offset of call, extended over an explicit ';'
// on the same line, separated from the call by blanks only. An inserted semicolon has no
// text of its own and never extends the range.
func statementEnd(call, stmt *sitter.Node, src []byte) int {
	end := int(call.EndByte())
	limit := int(stmt.EndByte())
	for i := end; i < limit && i < len(src); i++ {
		switch src[i] {
		case ' ', '\t':
			continue
		case ';':
			return i + 1
		}
		return end
	}
	return end
}
