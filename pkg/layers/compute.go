package layers

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

var (
	// ErrUnknownStartVertex is returned by [Compute] when the start vertex is
	// not present in the graph.
	ErrUnknownStartVertex = errors.New("layers: unknown start vertex")

	// ErrGraphNil is returned by [Compute] when a nil graph is passed.
	ErrGraphNil = errors.New("layers: graph is nil")
)

// Graph is the read-only view Compute needs. Neighbors must return the
// neighbors of id in ascending order and an empty slice for unknown ids.
type Graph interface {
	HasVertex(id int) bool
	Neighbors(id int) []int
}

// Option configures Compute.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger makes Compute log each discovered vertex at debug level and a
// summary of every layer at info level. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Compute partitions the component of start into BFS distance layers.
//
// Returns ErrGraphNil for a nil graph and an error wrapping
// ErrUnknownStartVertex if start is not a vertex of g.
func Compute(g Graph, start int, opts ...Option) (*Map, error) {
	o := options{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	if g == nil {
		return nil, ErrGraphNil
	}
	logger.Info("calculating layers", "start", start)
	if !g.HasVertex(start) {
		err := fmt.Errorf("%w: %d", ErrUnknownStartVertex, start)
		logger.Error("start vertex not found in graph", "start", start)
		return nil, err
	}

	dist := map[int]int{start: 0}
	layers := [][]int{{start}}
	current := []int{start}
	var next []int
	depth := 0

	for {
		for len(current) > 0 {
			v := current[0]
			current = current[1:]

			for _, n := range g.Neighbors(v) {
				if _, seen := dist[n]; seen {
					continue
				}
				dist[n] = depth + 1
				if len(layers) == depth+1 {
					layers = append(layers, nil)
				}
				layers[depth+1] = append(layers[depth+1], n)
				next = append(next, n)
				logger.Debug("vertex added to layer", "vertex", n, "layer", depth+1)
			}
		}

		if len(next) == 0 {
			break
		}
		depth++
		current, next = next, nil
		slices.Sort(layers[depth])
	}

	// Every layer leaves sorted, the last one included.
	slices.Sort(layers[len(layers)-1])

	m := &Map{start: start, layers: layers, dist: dist}
	for i, layer := range layers {
		logger.Info("layer computed", "layer", i, "count", len(layer), "vertices", layer)
	}
	return m, nil
}
