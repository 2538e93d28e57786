package splice

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/leapstack-labs/definepage/pkg/token"
)

// SourceMap is a version 3 source map.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// SourceMap derives a source map for the output. src must be the text the
// output was produced from; source is the name recorded in "sources".
func (o *Output) SourceMap(source, src string, includeContent bool) *SourceMap {
	m := &SourceMap{
		Version:  3,
		Sources:  []string{source},
		Names:    []string{},
		Mappings: o.mappings(src),
	}
	if includeContent {
		m.SourcesContent = []string{src}
	}
	return m
}

type mappingPoint struct {
	generated int
	original  int
}

func (o *Output) mappings(src string) string {
	var points []mappingPoint
	for _, seg := range o.Segments {
		points = append(points, mappingPoint{generated: seg.Generated, original: seg.Original})
		text := src[seg.Original : seg.Original+seg.Len]
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' && i+1 < len(text) {
				points = append(points, mappingPoint{generated: seg.Generated + i + 1, original: seg.Original + i + 1})
			}
		}
	}

	gen := token.NewLineIndex(o.Code)
	orig := token.NewLineIndex(src)

	var sb strings.Builder
	genLine := 0
	prevGenCol, prevOrigLine, prevOrigCol := 0, 0, 0
	firstInLine := true
	for _, p := range points {
		gp := gen.Position(p.generated)
		for genLine < gp.Line-1 {
			sb.WriteByte(';')
			genLine++
			prevGenCol = 0
			firstInLine = true
		}
		if !firstInLine {
			sb.WriteByte(',')
		}
		firstInLine = false

		genCol := gen.UTF16Column(p.generated)
		origLine := orig.Position(p.original).Line - 1
		origCol := orig.UTF16Column(p.original)

		encodeVLQ(&sb, genCol-prevGenCol)
		encodeVLQ(&sb, 0) // single source
		encodeVLQ(&sb, origLine-prevOrigLine)
		encodeVLQ(&sb, origCol-prevOrigCol)

		prevGenCol, prevOrigLine, prevOrigCol = genCol, origLine, origCol
	}
	return sb.String()
}

const vlqChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func encodeVLQ(sb *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 31
		u >>= 5
		if u > 0 {
			digit |= 32
		}
		sb.WriteByte(vlqChars[digit])
		if u == 0 {
			return
		}
	}
}

// JSON encodes the map.
func (m *SourceMap) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// Comment returns an inline sourceMappingURL comment carrying the map.
func (m *SourceMap) Comment() (string, error) {
	b, err := m.JSON()
	if err != nil {
		return "", err
	}
	return "//# sourceMappingURL=data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(b), nil
}
