// Package jsnode holds small helpers for classifying and reading
// tree-sitter JavaScript/TypeScript syntax nodes.
package jsnode

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node type names shared by the javascript and typescript grammars.
const (
	Program                  = "program"
	Comment                  = "comment"
	HTMLComment              = "html_comment"
	ExpressionStatement      = "expression_statement"
	CallExpression           = "call_expression"
	Arguments                = "arguments"
	Identifier               = "identifier"
	ShorthandProperty        = "shorthand_property_identifier"
	ShorthandPropertyPattern = "shorthand_property_identifier_pattern"
	PropertyIdentifier       = "property_identifier"
	Object                   = "object"
	Array                    = "array"
	Pair                     = "pair"
	String                   = "string"
	TemplateString           = "template_string"
	Parenthesized            = "parenthesized_expression"
	StatementBlock           = "statement_block"
	ImportStatement          = "import_statement"
)

// Text returns the source text covered by n.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// Range returns the block-local byte range of n.
func Range(n *sitter.Node) (start, end int) {
	return int(n.StartByte()), int(n.EndByte())
}

// IsComment reports whether n is a comment node. Comments are extras in
// tree-sitter and can appear as named children anywhere.
func IsComment(n *sitter.Node) bool {
	return n != nil && (n.Type() == Comment || n.Type() == HTMLComment)
}

// Children returns the named, non-comment children of n in source order.
func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || IsComment(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Walk visits n and its named descendants depth-first. Returning false from
// fn skips the children of the current node.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Unwrap strips redundant parentheses around an expression.
func Unwrap(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == Parenthesized {
		inner := Children(n)
		if len(inner) != 1 {
			return n
		}
		n = inner[0]
	}
	return n
}

// IsCallOf reports whether n is a call expression whose callee is the plain
// identifier name.
func IsCallOf(n *sitter.Node, src []byte, name string) bool {
	if n == nil || n.Type() != CallExpression {
		return false
	}
	if args := n.ChildByFieldName("arguments"); args == nil || args.Type() != Arguments {
		return false // tagged template
	}
	callee := n.ChildByFieldName("function")
	return callee != nil && callee.Type() == Identifier && callee.Content(src) == name
}

// CallArguments returns the argument expressions of a call expression.
func CallArguments(call *sitter.Node) []*sitter.Node {
	if call == nil {
		return nil
	}
	return Children(call.ChildByFieldName("arguments"))
}

// IsObject reports whether n is an object literal.
func IsObject(n *sitter.Node) bool {
	return n != nil && n.Type() == Object
}

// IsArray reports whether n is an array literal.
func IsArray(n *sitter.Node) bool {
	return n != nil && n.Type() == Array
}

// IsStringLiteral reports whether n is a quoted string literal. Template
// literals are not string literals.
func IsStringLiteral(n *sitter.Node) bool {
	return n != nil && n.Type() == String
}

// StringValue returns the decoded value of a string literal.
func StringValue(n *sitter.Node, src []byte) (string, bool) {
	if !IsStringLiteral(n) {
		return "", false
	}
	raw := n.Content(src)
	if len(raw) < 2 {
		return "", false
	}
	return Unquote(raw[1 : len(raw)-1]), true
}

// PropertyKey returns the name of a pair whose key is a plain identifier.
// Quoted, numeric and computed keys report ok=false.
func PropertyKey(pair *sitter.Node, src []byte) (string, bool) {
	if pair == nil || pair.Type() != Pair {
		return "", false
	}
	key := pair.ChildByFieldName("key")
	if key == nil || key.Type() != PropertyIdentifier {
		return "", false
	}
	return key.Content(src), true
}
