package definepage

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/definepage/pkg/jsnode"
	"github.com/leapstack-labs/definepage/pkg/sfc"
	"github.com/leapstack-labs/definepage/pkg/token"
)

// RouteInfo is the statically known part of a page's route configuration.
// Unset fields are nil.
type RouteInfo struct {
	Name  *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Path  *string  `json:"path,omitempty" yaml:"path,omitempty"`
	Alias []string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Empty reports whether no field was extracted.
func (r *RouteInfo) Empty() bool {
	return r == nil || (r.Name == nil && r.Path == nil && r.Alias == nil)
}

// Warning reports a configuration property whose value could not be read
// statically. Warnings do not stop extraction.
type Warning struct {
	File    string
	Field   string
	Message string
	Pos     token.Position
}

func (w Warning) String() string {
	if w.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", w.File, w.Pos.Line, w.Pos.Column, w.Message)
	}
	return prefixFile(w.File, w.Message)
}

// ExtractRouteInfo reads name, path and alias from the macro argument. It
// returns nil info without error when the document has no macro call.
func (t *Transformer) ExtractRouteInfo(doc Document) (*RouteInfo, []Warning, error) {
	if !t.mentionsMacro(doc.Code) {
		return nil, nil, nil
	}

	desc, err := sfc.Parse(doc.Code, doc.ID)
	if err != nil {
		return nil, nil, err
	}
	defer desc.Close()

	setup := desc.ScriptSetup
	if setup == nil {
		return nil, nil, nil
	}

	call, err := LocateMacro(setup.Statements(), setup.Source(), t.macro)
	if err != nil {
		return nil, nil, t.annotate(err, doc, setup)
	}
	if call == nil {
		return nil, nil, nil
	}

	if len(call.Args) != 1 {
		return nil, nil, t.annotate(&ShapeError{
			Reason: fmt.Sprintf("expects exactly one argument, got %d", len(call.Args)),
		}, doc, setup, int(call.Call.StartByte()))
	}
	arg := jsnode.Unwrap(call.Arg())
	if !jsnode.IsObject(arg) {
		return nil, nil, t.annotate(&ShapeError{
			Reason: "expects an object expression as its argument",
		}, doc, setup, int(arg.StartByte()))
	}

	x := &extractor{
		file:  doc.ID,
		src:   setup.Source(),
		index: token.NewLineIndex(doc.Code),
		base:  setup.Start,
		info:  &RouteInfo{},
	}
	x.readObject(arg)

	for _, w := range x.warnings {
		t.logger.Warn(w.Message, "file", w.File, "field", w.Field, "line", w.Pos.Line)
	}
	return x.info, x.warnings, nil
}

type extractor struct {
	file     string
	src      []byte
	index    *token.LineIndex
	base     int
	info     *RouteInfo
	warnings []Warning
}

func (x *extractor) readObject(obj *sitter.Node) {
	for _, prop := range jsnode.Children(obj) {
		switch prop.Type() {
		case jsnode.Pair:
			key, ok := jsnode.PropertyKey(prop, x.src)
			if !ok {
				continue
			}
			x.readField(key, prop.ChildByFieldName("value"))
		case jsnode.ShorthandProperty:
			// { name } refers to a variable, never a literal
			x.readField(prop.Content(x.src), prop)
		}
	}
}

func (x *extractor) readField(key string, value *sitter.Node) {
	value = jsnode.Unwrap(value)
	switch key {
	case "name":
		if s, ok := jsnode.StringValue(value, x.src); ok {
			x.info.Name = &s
			return
		}
		x.warn(key, value, "route name must be a string literal")
	case "path":
		if s, ok := jsnode.StringValue(value, x.src); ok {
			x.info.Path = &s
			return
		}
		x.warn(key, value, "route path must be a string literal")
	case "alias":
		if s, ok := jsnode.StringValue(value, x.src); ok {
			x.info.Alias = []string{s}
			return
		}
		if jsnode.IsArray(value) {
			alias := []string{}
			for _, el := range jsnode.Children(value) {
				if s, ok := jsnode.StringValue(jsnode.Unwrap(el), x.src); ok {
					alias = append(alias, s)
				}
			}
			x.info.Alias = alias
			return
		}
		x.warn(key, value, "route alias must be a string literal or an array of string literals")
	}
}

func (x *extractor) warn(field string, at *sitter.Node, msg string) {
	w := Warning{
		File:    x.file,
		Field:   field,
		Message: fmt.Sprintf("%s. Found in %q.", msg, x.file),
	}
	if at != nil {
		w.Pos = x.index.Position(x.base + int(at.StartByte()))
	}
	x.warnings = append(x.warnings, w)
}

// ExtractRouteInfo reads route information with a default Transformer.
func ExtractRouteInfo(doc Document) (*RouteInfo, []Warning, error) {
	return New().ExtractRouteInfo(doc)
}
