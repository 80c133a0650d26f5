package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/graphlayers/pkg/layers"
)

// Neighborer is the part of a graph the renderer reads edges from.
type Neighborer interface {
	Neighbors(id int) []int
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the layer index to every node label.
	// When false, only the vertex id is shown.
	Detailed bool
}

// ToDOT converts a layered component to Graphviz DOT format.
//
// Each layer becomes a rank=same subgraph in index order, and every
// undirected edge inside the component is emitted once with the smaller id
// first. The start vertex is highlighted.
func ToDOT(g Neighborer, m *layers.Map, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph layers {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for i, layer := range m.Layers() {
		fmt.Fprintf(&buf, "\n  subgraph layer_%d {\n", i)
		buf.WriteString("    rank=same;\n")
		for _, v := range layer {
			attrs := fmtAttrs(v, i, v == m.Start(), opts.Detailed)
			fmt.Fprintf(&buf, "    %q [%s];\n", strconv.Itoa(v), strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	edges := false
	for _, v := range m.Vertices() {
		for _, n := range g.Neighbors(v) {
			if n <= v {
				continue
			}
			if !edges {
				buf.WriteString("\n")
				edges = true
			}
			fmt.Fprintf(&buf, "  %q -- %q;\n", strconv.Itoa(v), strconv.Itoa(n))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(v, layer int, start, detailed bool) []string {
	label := strconv.Itoa(v)
	if detailed {
		label += fmt.Sprintf("\nlayer: %d", layer)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if start {
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
	}
	return attrs
}
