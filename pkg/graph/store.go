package graph

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// maxLineSize bounds a single declaration line read by Load.
const maxLineSize = 16 << 20

// Store is an undirected graph held as a symmetric adjacency map.
// Each vertex maps to its neighbors in ascending order, without duplicates
// or self-loops.
//
// The zero value is an empty store ready for use with a discarding logger.
type Store struct {
	adj    map[int][]int
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger that receives load progress and warnings.
// A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{adj: make(map[int][]int)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset discards all adjacency data.
func (s *Store) Reset() {
	s.adj = make(map[int][]int)
	s.log().Debug("graph data cleared")
}

// Build replaces the store contents with the graph declared by lines.
//
// Empty lines and lines starting with '#' are skipped. Each remaining line is
// parsed as a vertex id followed by neighbor ids; every (vertex, neighbor)
// pair is linked in both directions. A line without a leading integer aborts
// the build with a *FormatError and leaves the store empty.
//
// A store with zero vertices after Build is valid; it is logged as a warning.
func (s *Store) Build(lines []string) error {
	s.Reset()

	pending := make(map[int]*treeset.Set)
	link := func(from, to int) {
		set, ok := pending[from]
		if !ok {
			set = treeset.NewWith(utils.IntComparator)
			pending[from] = set
		}
		set.Add(to)
	}

	for i, line := range lines {
		if skipLine(line) {
			continue
		}
		v, neighbors, ok := parseLine(line)
		if !ok {
			err := &FormatError{Line: i + 1, Text: line}
			s.log().Error("graph load aborted", "line", err.Line, "err", err)
			return err
		}
		for _, n := range neighbors {
			link(v, n)
			link(n, v)
		}
	}

	adj := make(map[int][]int, len(pending))
	for v, set := range pending {
		neighbors := make([]int, 0, set.Size())
		for _, n := range set.Values() {
			neighbors = append(neighbors, n.(int))
		}
		adj[v] = neighbors
	}
	s.adj = adj

	if len(adj) == 0 {
		s.log().Warn("graph is empty after load")
	} else {
		s.log().Info("graph loaded", "vertices", s.VertexCount(), "edges", s.EdgeCount())
	}
	return nil
}

// Load reads declaration lines from r and builds the store from them.
// A read failure resets the store and is returned wrapped; format errors are
// returned as by Build.
func (s *Store) Load(r io.Reader) error {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		s.Reset()
		return fmt.Errorf("read graph: %w", err)
	}
	return s.Build(lines)
}

// HasVertex reports whether id is stored.
func (s *Store) HasVertex(id int) bool {
	_, ok := s.adj[id]
	return ok
}

// Neighbors returns the ascending neighbor list of id.
// An unknown vertex has no neighbors. The returned slice is a copy.
func (s *Store) Neighbors(id int) []int {
	return slices.Clone(s.adj[id])
}

// Degree returns the number of neighbors of id, or 0 for an unknown vertex.
func (s *Store) Degree(id int) int {
	return len(s.adj[id])
}

// Vertices returns all stored vertex ids in ascending order.
func (s *Store) Vertices() []int {
	return slices.Sorted(maps.Keys(s.adj))
}

// VertexCount returns the number of stored vertices.
func (s *Store) VertexCount() int {
	return len(s.adj)
}

// EdgeCount returns the number of undirected edges.
func (s *Store) EdgeCount() int {
	total := 0
	for _, neighbors := range s.adj {
		total += len(neighbors)
	}
	return total / 2
}

// Empty reports whether the store has no vertices.
func (s *Store) Empty() bool {
	return len(s.adj) == 0
}

func (s *Store) log() *log.Logger {
	if s.logger == nil {
		s.logger = discard()
	}
	return s.logger
}

func discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
