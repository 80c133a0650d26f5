package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/graph"
	"github.com/matzehuels/graphlayers/pkg/layers"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		ids  []int
		n    int
		want string
	}{
		{[]int{1}, 8, "1"},
		{[]int{1, 2, 3}, 3, "1, 2, 3"},
		{[]int{1, 2, 3, 4}, 3, "1, 2, 3, …"},
		{[]int{-5, 0}, 8, "-5, 0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, preview(tt.ids, tt.n))
	}
}

func TestPrintLayerTable(t *testing.T) {
	_, stdout := isolate(t)

	// A path of maxTableRows+5 edges has maxTableRows+6 layers from 0.
	var lines []string
	for i := range maxTableRows + 5 {
		lines = append(lines, fmt.Sprintf("%d %d", i, i+1))
	}
	g := graph.New()
	require.NoError(t, g.Build(lines))
	m, err := layers.Compute(g, 0)
	require.NoError(t, err)

	printLayerTable(m)

	got := stdout.String()
	assert.Contains(t, got, "LAYER")
	assert.Contains(t, got, "VERTICES")
	assert.Contains(t, got, "6 more layers")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, gerrors.Wrap(gerrors.ErrCodeInputAccess, errors.New("no such file"), "cannot open input file g.txt"))
	assert.Contains(t, buf.String(), "cannot open input file g.txt: no such file")
	assert.NotContains(t, buf.String(), "INPUT_ACCESS")
}
