package definepage

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/definepage/pkg/jsnode"
)

// Reference is a free identifier occurrence inside an expression.
type Reference struct {
	Name  string
	Start int // block-local offsets
	End   int
}

// nodes whose subtree is type syntax and never refers to runtime values
var typePositions = map[string]bool{
	"type_annotation":        true,
	"type_arguments":         true,
	"type_parameters":        true,
	"type_identifier":        true,
	"predefined_type":        true,
	"type_predicate":         true,
	"asserts":                true,
	"opting_type_annotation": true,
}

// functions and classes introduce their own names, which shadow outer ones
var scopeIntroducers = map[string]bool{
	"function":                       true,
	"function_expression":            true,
	"generator_function":             true,
	"arrow_function":                 true,
	"method_definition":              true,
	"class":                          true,
	"function_declaration":           true,
	"generator_function_declaration": true,
	"class_declaration":              true,
}

// FreeReferences returns the identifiers referenced by expr that are not
// bound inside expr itself, in source order. Property keys, member names and
// type positions are not references.
func FreeReferences(expr *sitter.Node, src []byte) []Reference {
	var refs []Reference
	var walk func(n *sitter.Node, shadowed map[string]bool)
	walk = func(n *sitter.Node, shadowed map[string]bool) {
		switch t := n.Type(); {
		case t == jsnode.Identifier || t == jsnode.ShorthandProperty:
			if name := n.Content(src); !shadowed[name] {
				refs = append(refs, Reference{Name: name, Start: int(n.StartByte()), End: int(n.EndByte())})
			}
			return
		case typePositions[t]:
			return
		case scopeIntroducers[t]:
			shadowed = withLocals(shadowed, n, src)
		}
		for _, c := range jsnode.Children(n) {
			walk(c, shadowed)
		}
	}
	if expr != nil {
		walk(expr, nil)
	}
	return refs
}

// withLocals returns a copy of outer extended with every name a function or
// class binds anywhere in its subtree: its own name, parameters and local
// declarations. Over-approximating the inner scopes only ever hides
// references to shadowed names.
func withLocals(outer map[string]bool, fn *sitter.Node, src []byte) map[string]bool {
	inner := make(map[string]bool, len(outer)+4)
	for k := range outer {
		inner[k] = true
	}
	if name := fn.ChildByFieldName("name"); name != nil && name.Type() == jsnode.Identifier {
		inner[name.Content(src)] = true
	}
	if param := fn.ChildByFieldName("parameter"); param != nil {
		inner[param.Content(src)] = true
	}
	jsnode.Walk(fn, func(n *sitter.Node) bool {
		switch n.Type() {
		case "formal_parameters":
			for _, p := range jsnode.Children(n) {
				for _, name := range patternNames(p, src) {
					inner[name] = true
				}
			}
		case "variable_declarator":
			for _, name := range patternNames(n.ChildByFieldName("name"), src) {
				inner[name] = true
			}
		case "catch_clause":
			for _, name := range patternNames(n.ChildByFieldName("parameter"), src) {
				inner[name] = true
			}
		case "function_declaration", "generator_function_declaration", "class_declaration":
			if n != fn {
				if name := n.ChildByFieldName("name"); name != nil {
					inner[name.Content(src)] = true
				}
			}
		}
		return !typePositions[n.Type()]
	})
	return inner
}

// CheckScopeReferences fails with a *ScopeLeakError on the first reference
// to a name declared in the setup script. Imports are module-level and are
// carried into the isolated module, so they are allowed.
func CheckScopeReferences(refs []Reference, bindings BindingSet) error {
	for _, ref := range refs {
		b, ok := bindings[ref.Name]
		if !ok || b.Kind == BindingImport {
			continue
		}
		return &ScopeLeakError{Identifier: ref.Name}
	}
	return nil
}

// referencedImports returns the import statements that bind names in refs,
// deduplicated and in source order.
func referencedImports(refs []Reference, bindings BindingSet) []*sitter.Node {
	seen := make(map[uint32]bool)
	var stmts []*sitter.Node
	for _, ref := range refs {
		b, ok := bindings[ref.Name]
		if !ok || b.Kind != BindingImport || seen[b.Decl.StartByte()] {
			continue
		}
		seen[b.Decl.StartByte()] = true
		stmts = append(stmts, b.Decl)
	}
	sortNodes(stmts)
	return stmts
}
