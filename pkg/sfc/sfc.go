// Package sfc splits a single-file component into its top-level blocks and
// parses the script blocks into tree-sitter syntax trees.
package sfc

import (
	"context"
	"fmt"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/definepage/pkg/jsnode"
	"github.com/leapstack-labs/definepage/pkg/token"
)

// Block is a top-level element of a component document.
type Block struct {
	Type    string            // tag name: template, script, style or a custom block
	Attrs   map[string]string // attributes as written; boolean attributes map to ""
	Start   int               // offset of the first content byte in the document
	End     int               // offset just past the last content byte
	Content string
}

// Attr returns the value of an attribute and whether it is present.
func (b *Block) Attr(name string) (string, bool) {
	v, ok := b.Attrs[name]
	return v, ok
}

// Lang returns the lang attribute, or "" if absent.
func (b *Block) Lang() string {
	return b.Attrs["lang"]
}

// Script is a <script> or <script setup> block with its syntax tree.
// Node offsets in Root are relative to Start.
type Script struct {
	Block
	Setup bool
	Root  *sitter.Node
	tree  *sitter.Tree
	src   []byte
}

// Source returns the script content as parsed.
func (s *Script) Source() []byte {
	return s.src
}

// Statements returns the top-level statements of the script in source order.
func (s *Script) Statements() []*sitter.Node {
	return jsnode.Children(s.Root)
}

// Descriptor is a parsed component document.
type Descriptor struct {
	ID           string
	Source       string
	Template     *Block
	Script       *Script
	ScriptSetup  *Script
	Styles       []*Block
	CustomBlocks []*Block
}

// Close releases the syntax trees. Nodes must not be used afterwards.
func (d *Descriptor) Close() {
	for _, s := range []*Script{d.Script, d.ScriptSetup} {
		if s != nil && s.tree != nil {
			s.tree.Close()
			s.tree = nil
		}
	}
}

// Parse splits code into blocks and parses its script blocks. id is the
// logical identifier of the document and is only used in error messages.
func Parse(code, id string) (*Descriptor, error) {
	blocks, err := splitBlocks(code, id)
	if err != nil {
		return nil, err
	}

	desc := &Descriptor{ID: id, Source: code}
	for _, b := range blocks {
		switch b.Type {
		case "template":
			if desc.Template != nil {
				desc.Close()
				return nil, newParseError(code, id, b.Start, "single file component can contain only one <template> element")
			}
			desc.Template = b
		case "script":
			_, setup := b.Attr("setup")
			if setup && desc.ScriptSetup != nil {
				desc.Close()
				return nil, newParseError(code, id, b.Start, "single file component can contain only one <script setup> element")
			}
			if !setup && desc.Script != nil {
				desc.Close()
				return nil, newParseError(code, id, b.Start, "single file component can contain only one <script> element")
			}
			s, err := parseScript(code, id, b, setup)
			if err != nil {
				desc.Close()
				return nil, err
			}
			if setup {
				desc.ScriptSetup = s
			} else {
				desc.Script = s
			}
		case "style":
			desc.Styles = append(desc.Styles, b)
		default:
			desc.CustomBlocks = append(desc.CustomBlocks, b)
		}
	}

	return desc, nil
}

// splitBlocks tokenizes the document and returns its top-level elements.
// Offsets are tracked by summing the raw length of every token.
func splitBlocks(code, id string) ([]*Block, error) {
	z := html.NewTokenizer(strings.NewReader(code))

	var (
		blocks    []*Block
		open      *Block
		openStart int
		depth     int
		offset    int
	)

	for {
		tt := z.Next()
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return nil, newParseError(code, id, start, z.Err().Error())
			}
			if open != nil {
				return nil, newParseError(code, id, openStart, fmt.Sprintf("element <%s> is missing end tag", open.Type))
			}
			return blocks, nil

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if open == nil {
				open = &Block{Type: tag, Attrs: readAttrs(z, hasAttr), Start: offset}
				openStart = start
				depth = 1
			} else if tag == open.Type {
				depth++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if open == nil || string(name) != open.Type {
				continue
			}
			depth--
			if depth == 0 {
				open.End = start
				open.Content = code[open.Start:open.End]
				blocks = append(blocks, open)
				open = nil
			}
		}
	}
}

func readAttrs(z *html.Tokenizer, more bool) map[string]string {
	attrs := make(map[string]string)
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}

func languageFor(lang string) (*sitter.Language, bool) {
	switch lang {
	case "", "js", "jsx", "javascript", "mjs":
		return javascript.GetLanguage(), true
	case "ts", "typescript", "mts":
		return typescript.GetLanguage(), true
	case "tsx":
		return tsx.GetLanguage(), true
	}
	return nil, false
}

func parseScript(code, id string, b *Block, setup bool) (*Script, error) {
	lang, ok := languageFor(b.Lang())
	if !ok {
		return nil, newParseError(code, id, b.Start, fmt.Sprintf("unsupported script language %q", b.Lang()))
	}

	src := []byte(b.Content)
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, newParseError(code, id, b.Start, fmt.Sprintf("failed to parse script: %v", err))
	}

	root := tree.RootNode()
	if root.HasError() {
		tree.Close()
		at, msg := firstSyntaxError(root)
		return nil, newParseError(code, id, b.Start+at, msg)
	}

	return &Script{Block: *b, Setup: setup, Root: root, tree: tree, src: src}, nil
}

// firstSyntaxError returns the block-local offset and description of the
// first ERROR or MISSING node under n.
func firstSyntaxError(n *sitter.Node) (int, string) {
	if n.IsMissing() {
		return int(n.StartByte()), fmt.Sprintf("missing %s", n.Type())
	}
	if n.IsError() {
		return int(n.StartByte()), "unexpected token"
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.HasError() {
			return firstSyntaxError(c)
		}
	}
	return int(n.StartByte()), "syntax error"
}

// ParseError is a failure to parse a component document.
type ParseError struct {
	File    string
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newParseError(code, id string, offset int, msg string) *ParseError {
	return &ParseError{
		File:    id,
		Pos:     token.NewLineIndex(code).Position(offset),
		Message: msg,
	}
}
