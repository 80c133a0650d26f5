package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/matzehuels/graphlayers/pkg/layers"
)

const bom = "\ufeff"

var textTemplate = template.Must(template.New("report").Parse(`{{.Header}}
{{.Separator}}

{{range .Layers}}{{.Title}}
{{$.VerticesLabel}}{{range .Rows}}
  {{.}}{{end}}

{{end}}{{.Separator}}
{{.Footer}}
`))

type textLayer struct {
	Title string
	Rows  []string
}

type textData struct {
	Header        string
	Separator     string
	VerticesLabel string
	Footer        string
	Layers        []textLayer
}

// WriteText renders m in the text format using labels l.
func WriteText(w io.Writer, m *layers.Map, l Labels) error {
	data := textData{
		Header:        l.Header,
		Separator:     l.Separator,
		VerticesLabel: l.Vertices,
		Footer:        fmt.Sprintf(l.Total, m.Len()),
	}
	for _, e := range m.Entries() {
		data.Layers = append(data.Layers, textLayer{
			Title: fmt.Sprintf(l.Layer, e.Index, e.Count),
			Rows:  rows(e.Vertices, l.Wrap),
		})
	}

	if l.BOM {
		if _, err := io.WriteString(w, bom); err != nil {
			return err
		}
	}
	return textTemplate.Execute(w, data)
}

// rows splits ids into lines of at most wrap entries. Every line but the
// last ends with a comma.
func rows(ids []int, wrap int) []string {
	if len(ids) == 0 {
		return nil
	}
	if wrap <= 0 {
		wrap = len(ids)
	}

	var out []string
	for i := 0; i < len(ids); i += wrap {
		end := min(i+wrap, len(ids))
		parts := make([]string, 0, end-i)
		for _, id := range ids[i:end] {
			parts = append(parts, strconv.Itoa(id))
		}
		row := strings.Join(parts, ", ")
		if end < len(ids) {
			row += ","
		}
		out = append(out, row)
	}
	return out
}
