package definepage

import (
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/definepage/pkg/jsnode"
	"github.com/leapstack-labs/definepage/pkg/sfc"
	"github.com/leapstack-labs/definepage/pkg/splice"
	"github.com/leapstack-labs/definepage/pkg/token"
)

// Result is the output of a transform.
type Result struct {
	Code string
	Mode Mode
	Map  *splice.SourceMap // nil unless WithSourceMap is set
}

// Transform runs the macro transform in the given mode. It returns nil
// without error when the document has no setup script or the setup script
// does not call the macro; the caller should then use the document as is.
func (t *Transformer) Transform(doc Document, mode Mode) (*Result, error) {
	if !t.mentionsMacro(doc.Code) {
		return nil, nil
	}

	desc, err := sfc.Parse(doc.Code, doc.ID)
	if err != nil {
		return nil, err
	}
	defer desc.Close()

	setup := desc.ScriptSetup
	if setup == nil {
		return nil, nil
	}

	call, err := LocateMacro(setup.Statements(), setup.Source(), t.macro)
	if err != nil {
		return nil, t.annotate(err, doc, setup)
	}
	if call == nil {
		return nil, nil
	}

	var res *Result
	switch mode {
	case ModeIsolate:
		res, err = t.isolate(doc, setup, call)
	default:
		res, err = t.strip(doc, setup, call)
	}
	if err != nil {
		return nil, err
	}

	t.logger.Debug("transformed macro",
		"file", doc.ID,
		"macro", t.macro,
		"mode", mode.String(),
		"bytes_in", len(doc.Code),
		"bytes_out", len(res.Code))
	return res, nil
}

// TransformID runs Transform with the mode derived from the document id.
func (t *Transformer) TransformID(doc Document) (*Result, error) {
	return t.Transform(doc, ModeFromID(doc.ID, t.macro))
}

// isolate reduces the document to "export default <argument>", preceded by
// the import declarations the argument refers to.
func (t *Transformer) isolate(doc Document, setup *sfc.Script, call *MacroCall) (*Result, error) {
	src := setup.Source()
	base := setup.Start

	if len(call.Args) != 1 {
		return nil, t.annotate(&ShapeError{
			Reason: fmt.Sprintf("expects exactly one argument, got %d", len(call.Args)),
		}, doc, setup, int(call.Call.StartByte()))
	}
	arg := call.Arg()

	bindings := CollectBindings(setup.Statements(), src)
	t.logger.Debug("collected setup bindings", "file", doc.ID, "names", bindings.Names())
	refs := FreeReferences(arg, src)
	if err := CheckScopeReferences(refs, bindings); err != nil {
		var leak *ScopeLeakError
		at := int(arg.StartByte())
		if errors.As(err, &leak) {
			for _, ref := range refs {
				if ref.Name == leak.Identifier {
					at = ref.Start
					break
				}
			}
		}
		return nil, t.annotate(err, doc, setup, at)
	}

	argStart, argEnd := jsnode.Range(arg)
	imports := referencedImports(refs, bindings)

	buf := splice.New(doc.Code)
	keep := 0
	for _, imp := range imports {
		start, end := jsnode.Range(imp)
		if start > argStart {
			// imports are hoisted, so one written after the call still applies
			if err := buf.Insert(base+argStart, imp.Content(src)+"\n"); err != nil {
				return nil, err
			}
			continue
		}
		if err := buf.Remove(keep, base+start); err != nil {
			return nil, err
		}
		if err := buf.Insert(base+end, "\n"); err != nil {
			return nil, err
		}
		keep = base + end
	}
	if err := buf.Remove(keep, base+argStart); err != nil {
		return nil, err
	}
	if err := buf.Insert(base+argStart, ExportPrefix); err != nil {
		return nil, err
	}
	if err := buf.Remove(base+argEnd, len(doc.Code)); err != nil {
		return nil, err
	}

	out := buf.Apply()
	if t.verify {
		if err := VerifyModule(out.Code, setup.Lang(), doc.ID); err != nil {
			return nil, err
		}
	}
	return t.result(doc, out, ModeIsolate), nil
}

// strip erases the statement holding the call and keeps every other byte.
func (t *Transformer) strip(doc Document, setup *sfc.Script, call *MacroCall) (*Result, error) {
	start, end := call.StmtRange()

	buf := splice.New(doc.Code)
	if err := buf.Remove(setup.Start+start, setup.Start+end); err != nil {
		return nil, err
	}
	out := buf.Apply()

	if t.verify {
		content := setup.Content[:start] + setup.Content[end:]
		if err := VerifyModule(content, setup.Lang(), doc.ID); err != nil {
			return nil, err
		}
	}
	return t.result(doc, out, ModeStrip), nil
}

func (t *Transformer) result(doc Document, out *splice.Output, mode Mode) *Result {
	res := &Result{Code: out.Code, Mode: mode}
	if t.sourceMap {
		res.Map = out.SourceMap(doc.ID, doc.Code, true)
	}
	return res
}

// annotate fills the file, macro and document positions of a core error.
// at holds block-local offsets for errors that carry a single position.
func (t *Transformer) annotate(err error, doc Document, setup *sfc.Script, at ...int) error {
	index := token.NewLineIndex(doc.Code)
	pos := func(local int) token.Position {
		return index.Position(setup.Start + local)
	}

	var (
		dup   *DuplicateMacroError
		leak  *ScopeLeakError
		shape *ShapeError
	)
	switch {
	case errors.As(err, &dup):
		dup.File, dup.Macro = doc.ID, t.macro
		for i, off := range dup.offsets {
			dup.Positions[i] = pos(off)
		}
	case errors.As(err, &leak):
		leak.File, leak.Macro = doc.ID, t.macro
		if len(at) > 0 {
			leak.Pos = pos(at[0])
		}
	case errors.As(err, &shape):
		shape.File, shape.Macro = doc.ID, t.macro
		if len(at) > 0 {
			shape.Pos = pos(at[0])
		}
	}
	return err
}

// localPosition converts a block-local offset to a position within src.
func localPosition(src []byte, offset int) token.Position {
	return token.NewLineIndex(string(src)).Position(offset)
}

func sortNodes(nodes []*sitter.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].StartByte() < nodes[j].StartByte()
	})
}

// Transform runs the macro transform with a default Transformer.
func Transform(doc Document, mode Mode) (*Result, error) {
	return New().Transform(doc, mode)
}
