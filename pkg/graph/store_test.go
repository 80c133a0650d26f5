package graph

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, input string) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Load(strings.NewReader(input)))
	return s
}

func adjacency(s *Store) map[int][]int {
	out := make(map[int][]int)
	for _, v := range s.Vertices() {
		out[v] = s.Neighbors(v)
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[int][]int
	}{
		{
			name:  "two components",
			input: "1 2 3\n2 1\n3 1\n4 5\n5 4\n",
			want:  map[int][]int{1: {2, 3}, 2: {1}, 3: {1}, 4: {5}, 5: {4}},
		},
		{
			name:  "path",
			input: "1 2\n2 3\n3 4\n",
			want:  map[int][]int{1: {2}, 2: {1, 3}, 3: {2, 4}, 4: {3}},
		},
		{
			name:  "self loop dropped",
			input: "1 1 2\n",
			want:  map[int][]int{1: {2}, 2: {1}},
		},
		{
			name:  "duplicates collapse",
			input: "1 3 2 3 2\n",
			want:  map[int][]int{1: {2, 3}, 2: {1}, 3: {1}},
		},
		{
			name:  "reverse edges implied",
			input: "5 1\n",
			want:  map[int][]int{1: {5}, 5: {1}},
		},
		{
			name:  "comments and blanks",
			input: "# header\n\n1 2\n#2 9\n\n",
			want:  map[int][]int{1: {2}, 2: {1}},
		},
		{
			name:  "negative ids and tabs",
			input: "-1\t-3 +2\n",
			want:  map[int][]int{-3: {-1}, -1: {-3, 2}, 2: {-1}},
		},
		{
			name:  "isolated vertex not stored",
			input: "7\n1 2\n",
			want:  map[int][]int{1: {2}, 2: {1}},
		},
		{
			name:  "neighbors stop at junk",
			input: "1 2x 3\n",
			want:  map[int][]int{1: {2}, 2: {1}},
		},
		{
			name:  "neighbors stop at out of range",
			input: "1 2 99999999999 3\n",
			want:  map[int][]int{1: {2}, 2: {1}},
		},
		{
			name:  "crlf line endings",
			input: "1 2\r\n2 3\r\n",
			want:  map[int][]int{1: {2}, 2: {1, 3}, 3: {2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := load(t, tt.input)
			assert.Equal(t, tt.want, adjacency(s))
		})
	}
}

func TestBuildFormatError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"letters first", "abc 1 2\n", 1},
		{"after comment", "# c\n1 2\nx 3\n", 3},
		{"whitespace only", "1 2\n   \n", 2},
		{"indented comment", "1 2\n  # note\n", 2},
		{"leading out of range", "2147483648 1\n", 1},
		{"bare sign", "- 1\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.Load(strings.NewReader(tt.input))
			require.Error(t, err)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantLine, fe.Line)
			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.True(t, s.Empty(), "no partial graph may be retained")
		})
	}
}

func TestBuildFailureDiscardsPreviousGraph(t *testing.T) {
	s := load(t, "1 2\n")
	require.True(t, s.HasVertex(1))

	err := s.Build([]string{"1 2", "3 4", "oops"})
	require.Error(t, err)
	assert.False(t, s.HasVertex(1))
	assert.False(t, s.HasVertex(3))
	assert.Zero(t, s.VertexCount())
}

func TestBuildReplacesPreviousGraph(t *testing.T) {
	s := load(t, "1 2\n")
	require.NoError(t, s.Build([]string{"3 4"}))

	assert.False(t, s.HasVertex(1))
	assert.Equal(t, []int{3, 4}, s.Vertices())
}

func TestEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	s := New(WithLogger(logger))
	require.NoError(t, s.Load(strings.NewReader("# only comments\n\n#\n")))

	assert.True(t, s.Empty())
	assert.Zero(t, s.VertexCount())
	assert.Zero(t, s.EdgeCount())
	assert.Empty(t, s.Vertices())
	assert.Contains(t, buf.String(), "graph is empty")
}

func TestLoadReadError(t *testing.T) {
	s := load(t, "1 2\n")
	readErr := errors.New("disk on fire")

	err := s.Load(iotest.ErrReader(readErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.NotErrorIs(t, err, ErrInvalidFormat)
	assert.True(t, s.Empty())
}

func TestReset(t *testing.T) {
	s := load(t, "1 2 3\n")
	s.Reset()

	assert.True(t, s.Empty())
	assert.False(t, s.HasVertex(1))
	assert.Empty(t, s.Neighbors(1))
}

func TestNeighborsUnknownVertex(t *testing.T) {
	s := load(t, "1 2\n")
	assert.Empty(t, s.Neighbors(42))
	assert.Zero(t, s.Degree(42))
}

func TestNeighborsReturnsCopy(t *testing.T) {
	s := load(t, "1 2 3\n")
	n := s.Neighbors(1)
	n[0] = 99

	assert.Equal(t, []int{2, 3}, s.Neighbors(1))
}

func TestCounts(t *testing.T) {
	s := load(t, "1 2 3\n2 3\n4 5\n")

	assert.Equal(t, 5, s.VertexCount())
	assert.Equal(t, 4, s.EdgeCount())
	assert.Equal(t, 2, s.Degree(1))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.Vertices())
}

func TestZeroValueStore(t *testing.T) {
	var s Store
	assert.False(t, s.HasVertex(1))
	assert.True(t, s.Empty())
	require.NoError(t, s.Build([]string{"1 2"}))
	assert.True(t, s.HasVertex(2))
}

func TestSymmetry(t *testing.T) {
	inputs := []string{
		"1 2 3\n2 1\n3 1\n4 5\n5 4\n",
		"1 2 3 4 5\n2 6\n3 6 7\n7 8 9 10\n10 1\n",
		"0 -1 -2\n-2 5 5 5\n9 0\n",
	}

	for _, input := range inputs {
		s := load(t, input)
		for _, v := range s.Vertices() {
			for _, u := range s.Neighbors(v) {
				assert.Contains(t, s.Neighbors(u), v, "edge %d-%d not symmetric", v, u)
				assert.NotEqual(t, u, v, "self loop on %d", v)
			}
			n := s.Neighbors(v)
			for i := 1; i < len(n); i++ {
				assert.Less(t, n[i-1], n[i], "neighbors of %d not strictly ascending", v)
			}
		}
	}
}

func TestIdempotentReload(t *testing.T) {
	input := "1 2 3\n2 4\n# c\n4 1 1\n"
	s := load(t, input)
	first := adjacency(s)

	s.Reset()
	require.NoError(t, s.Load(strings.NewReader(input)))
	assert.Equal(t, first, adjacency(s))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line      string
		vertex    int
		neighbors []int
		ok        bool
	}{
		{"1", 1, nil, true},
		{"1 2 3", 1, []int{2, 3}, true},
		{"  4 4 5", 4, []int{5}, true},
		{"12abc 3", 12, nil, true},
		{"", 0, nil, false},
		{"abc", 0, nil, false},
		{"+", 0, nil, false},
	}

	for _, tt := range tests {
		v, n, ok := parseLine(tt.line)
		assert.Equal(t, tt.ok, ok, "parseLine(%q) ok", tt.line)
		assert.Equal(t, tt.vertex, v, "parseLine(%q) vertex", tt.line)
		assert.Equal(t, tt.neighbors, n, "parseLine(%q) neighbors", tt.line)
	}
}
