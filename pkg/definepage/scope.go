package definepage

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/definepage/pkg/jsnode"
)

// BindingKind classifies how a top-level name was introduced.
type BindingKind int

// Binding kinds.
const (
	BindingVariable BindingKind = iota // var, let, const
	BindingFunction
	BindingClass
	BindingEnum
	BindingImport
)

func (k BindingKind) String() string {
	switch k {
	case BindingFunction:
		return "function"
	case BindingClass:
		return "class"
	case BindingEnum:
		return "enum"
	case BindingImport:
		return "import"
	default:
		return "variable"
	}
}

// Binding is a name declared at the top level of a script.
type Binding struct {
	Name string
	Kind BindingKind
	Decl *sitter.Node // the declaring statement (the import statement for imports)
}

// BindingSet maps top-level names to their binding.
type BindingSet map[string]Binding

// Has reports whether name is bound.
func (s BindingSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the bound names in sorted order.
func (s BindingSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nodes that open a nested scope; nothing declared below them is top-level
var nestedScopes = map[string]bool{
	"statement_block":     true,
	"class_body":          true,
	"formal_parameters":   true,
	"function":            true,
	"function_expression": true,
	"generator_function":  true,
	"arrow_function":      true,
	"class":               true,
	"method_definition":   true,
}

// CollectBindings returns the names bound by a sequence of top-level
// statements. It descends into nested statements that are not blocks
// (e.g. the initializer of a for loop) and stops at every block body.
func CollectBindings(stmts []*sitter.Node, src []byte) BindingSet {
	set := make(BindingSet)
	for _, stmt := range stmts {
		collectBindings(set, stmt, stmt, src)
	}
	return set
}

func collectBindings(set BindingSet, n, stmt *sitter.Node, src []byte) {
	if nestedScopes[n.Type()] {
		return
	}

	switch n.Type() {
	case jsnode.ImportStatement:
		for _, name := range importNames(n, src) {
			set[name] = Binding{Name: name, Kind: BindingImport, Decl: n}
		}
		return
	case "variable_declarator":
		for _, name := range patternNames(n.ChildByFieldName("name"), src) {
			set[name] = Binding{Name: name, Kind: BindingVariable, Decl: stmt}
		}
		return
	case "function_declaration", "generator_function_declaration", "function_signature":
		addNamed(set, n, stmt, src, BindingFunction)
		return
	case "class_declaration", "abstract_class_declaration":
		addNamed(set, n, stmt, src, BindingClass)
		return
	case "enum_declaration":
		addNamed(set, n, stmt, src, BindingEnum)
		return
	case "for_statement":
		// let and const in the loop header are scoped to the loop
		for _, c := range jsnode.Children(n) {
			if c.Type() != "lexical_declaration" {
				collectBindings(set, c, stmt, src)
			}
		}
		return
	case "for_in_statement":
		left := n.ChildByFieldName("left")
		if kind := n.ChildByFieldName("kind"); kind != nil && kind.Type() == "var" {
			for _, name := range patternNames(left, src) {
				set[name] = Binding{Name: name, Kind: BindingVariable, Decl: stmt}
			}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			collectBindings(set, body, stmt, src)
		}
		return
	}

	for _, c := range jsnode.Children(n) {
		collectBindings(set, c, stmt, src)
	}
}

func addNamed(set BindingSet, n, stmt *sitter.Node, src []byte, kind BindingKind) {
	if name := jsnode.Text(n.ChildByFieldName("name"), src); name != "" {
		set[name] = Binding{Name: name, Kind: kind, Decl: stmt}
	}
}

// importNames returns the local names introduced by an import statement.
func importNames(n *sitter.Node, src []byte) []string {
	var names []string
	for _, c := range jsnode.Children(n) {
		if c.Type() != "import_clause" {
			continue
		}
		for _, part := range jsnode.Children(c) {
			switch part.Type() {
			case jsnode.Identifier:
				names = append(names, part.Content(src))
			case "namespace_import":
				for _, id := range jsnode.Children(part) {
					if id.Type() == jsnode.Identifier {
						names = append(names, id.Content(src))
					}
				}
			case "named_imports":
				for _, spec := range jsnode.Children(part) {
					if spec.Type() != "import_specifier" {
						continue
					}
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					if name := jsnode.Text(local, src); name != "" {
						names = append(names, name)
					}
				}
			}
		}
	}
	return names
}

// patternNames returns the identifiers bound by a binding pattern.
func patternNames(n *sitter.Node, src []byte) []string {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case jsnode.Identifier, jsnode.ShorthandPropertyPattern:
		return []string{n.Content(src)}
	case "object_pattern", "array_pattern", "rest_pattern":
		var names []string
		for _, c := range jsnode.Children(n) {
			names = append(names, patternNames(c, src)...)
		}
		return names
	case "pair_pattern":
		return patternNames(n.ChildByFieldName("value"), src)
	case "assignment_pattern", "object_assignment_pattern":
		return patternNames(n.ChildByFieldName("left"), src)
	case "required_parameter", "optional_parameter":
		return patternNames(n.ChildByFieldName("pattern"), src)
	}
	return nil
}
