package routes

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleTable() *Table {
	return &Table{
		Dir: "src/pages",
		Routes: []Route{
			{File: "index.vue", Name: "/", Path: "/"},
			{File: "about.vue", Name: "about", Path: "/about", Alias: []string{"/a", "/b"}, Macro: true},
			{File: "x.vue", Name: "/x", Path: "/x", Macro: true, Warnings: []string{"x.vue:3:20: route name must be a string literal"}},
		},
	}
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleTable(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "about.vue *")
	assert.Contains(t, out, "/a, /b")
	assert.Contains(t, out, "(3 routes")
	assert.Contains(t, out, "warning: x.vue:3:20: route name must be a string literal")
}

func TestRender_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &Table{Dir: "pages"}, FormatText))
	assert.Equal(t, "No pages found in pages\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleTable(), FormatJSON))

	var got Table
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleTable(), got)
	assert.NotContains(t, buf.String(), `"alias": null`)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleTable(), FormatYAML))

	assert.Contains(t, buf.String(), "dir: src/pages\n")
	assert.Contains(t, buf.String(), "  - file: about.vue\n")

	var got Table
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleTable(), got)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, sampleTable(), Format("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
