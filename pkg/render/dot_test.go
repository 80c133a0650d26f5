package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/graphlayers/pkg/graph"
	"github.com/matzehuels/graphlayers/pkg/layers"
)

func layered(t *testing.T, input string, start int) (*graph.Store, *layers.Map) {
	t.Helper()
	g := graph.New()
	if err := g.Load(strings.NewReader(input)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	m, err := layers.Compute(g, start)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return g, m
}

func TestToDOT_Basic(t *testing.T) {
	g, m := layered(t, "1 2 3\n3 4\n5 6\n", 1)

	got := ToDOT(g, m, Options{})
	want := `graph layers {
  rankdir=TB;
  bgcolor="transparent";
  node [shape=circle, style=filled, fillcolor=white, fontsize=14];
  ranksep=0.6;
  nodesep=0.3;

  subgraph layer_0 {
    rank=same;
    "1" [label="1", fillcolor=lightblue, penwidth=2];
  }

  subgraph layer_1 {
    rank=same;
    "2" [label="2"];
    "3" [label="3"];
  }

  subgraph layer_2 {
    rank=same;
    "4" [label="4"];
  }

  "1" -- "2";
  "1" -- "3";
  "3" -- "4";
}
`
	if got != want {
		t.Errorf("ToDOT() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestToDOT_ExcludesOtherComponents(t *testing.T) {
	g, m := layered(t, "1 2\n5 6\n", 1)

	dot := ToDOT(g, m, Options{})
	if strings.Contains(dot, `"5"`) || strings.Contains(dot, `"6"`) {
		t.Errorf("ToDOT() output contains unreachable vertices:\n%s", dot)
	}
}

func TestToDOT_EdgesOnce(t *testing.T) {
	g, m := layered(t, "1 2\n2 1\n2 3 1\n", 2)

	dot := ToDOT(g, m, Options{})
	if n := strings.Count(dot, `"1" -- "2"`); n != 1 {
		t.Errorf("edge 1--2 emitted %d times, want 1", n)
	}
	if strings.Contains(dot, `"2" -- "1"`) {
		t.Error("ToDOT() emitted reversed edge")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g, m := layered(t, "1 2\n", 1)

	dot := ToDOT(g, m, Options{Detailed: true})
	if !strings.Contains(dot, `label="2\nlayer: 1"`) {
		t.Errorf("ToDOT() detailed output missing layer info:\n%s", dot)
	}
}

func TestToDOT_NegativeIDs(t *testing.T) {
	g, m := layered(t, "-3 4\n", -3)

	dot := ToDOT(g, m, Options{})
	if !strings.Contains(dot, `"-3" -- "4"`) {
		t.Errorf("ToDOT() output missing quoted negative edge:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	g, m := layered(t, "1 2 3\n3 4\n", 1)

	svg, err := RenderSVG(context.Background(), ToDOT(g, m, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing svg element")
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Error("RenderSVG() output viewBox not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}
