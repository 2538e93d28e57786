package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Format is a route-table output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Render writes t to w in the given format.
func Render(w io.Writer, t *Table, format Format) error {
	switch format {
	case FormatText, "":
		return renderText(w, t)
	case FormatJSON:
		return renderJSON(w, t)
	case FormatYAML:
		return renderYAML(w, t)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderText(w io.Writer, t *Table) error {
	if len(t.Routes) == 0 {
		_, _ = fmt.Fprintf(w, "No pages found in %s\n", t.Dir)
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Path", "Alias", "File"})
	for _, r := range t.Routes {
		file := r.File
		if r.Macro {
			file += " *"
		}
		tw.AppendRow(table.Row{r.Name, r.Path, strings.Join(r.Alias, ", "), file})
	}
	tw.Render()

	_, _ = fmt.Fprintf(w, "(%d routes, * = declares route info)\n", len(t.Routes))
	for _, r := range t.Routes {
		for _, warning := range r.Warnings {
			_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
		}
	}
	return nil
}

func renderJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func renderYAML(w io.Writer, t *Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to encode route table: %w", err)
	}
	return enc.Close()
}
