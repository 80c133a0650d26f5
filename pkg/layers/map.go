package layers

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Map is the result of [Compute]: an ordered mapping from layer index to the
// ascending vertex ids at that distance from the start vertex.
//
// A Map is immutable; accessors return copies.
type Map struct {
	start  int
	layers [][]int
	dist   map[int]int
}

// Start returns the start vertex.
func (m *Map) Start() int { return m.start }

// Len returns the number of layers (always at least 1).
func (m *Map) Len() int { return len(m.layers) }

// Layer returns the vertices of layer i, or nil if i is out of range.
func (m *Map) Layer(i int) []int {
	if i < 0 || i >= len(m.layers) {
		return nil
	}
	return slices.Clone(m.layers[i])
}

// Layers returns a copy of all layers in index order.
func (m *Map) Layers() [][]int {
	out := make([][]int, len(m.layers))
	for i, layer := range m.layers {
		out[i] = slices.Clone(layer)
	}
	return out
}

// Distance returns the layer of v and whether v is reachable.
func (m *Map) Distance(v int) (int, bool) {
	d, ok := m.dist[v]
	return d, ok
}

// Size returns the total number of vertices across all layers.
func (m *Map) Size() int { return len(m.dist) }

// Vertices returns the reachable set in ascending order.
func (m *Map) Vertices() []int {
	out := make([]int, 0, len(m.dist))
	for _, layer := range m.layers {
		out = append(out, layer...)
	}
	slices.Sort(out)
	return out
}

// Layer is the serialized form of one layer.
type Layer struct {
	Index    int   `json:"index"`
	Count    int   `json:"count"`
	Vertices []int `json:"vertices"`
}

// document is the JSON shape of a Map.
type document struct {
	Start      int     `json:"start"`
	LayerCount int     `json:"layer_count"`
	Layers     []Layer `json:"layers"`
}

// Entries returns the layers as serializable records.
func (m *Map) Entries() []Layer {
	out := make([]Layer, len(m.layers))
	for i, layer := range m.layers {
		out[i] = Layer{Index: i, Count: len(layer), Vertices: slices.Clone(layer)}
	}
	return out
}

// MarshalJSON encodes the map as {"start", "layer_count", "layers"}.
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Start:      m.start,
		LayerCount: len(m.layers),
		Layers:     m.Entries(),
	})
}

// UnmarshalJSON decodes a map produced by MarshalJSON and checks the layer
// invariants, so a corrupt cache entry is rejected instead of trusted.
func (m *Map) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Layers) == 0 {
		return fmt.Errorf("layers: no layers")
	}

	layers := make([][]int, len(doc.Layers))
	dist := make(map[int]int)
	for i, l := range doc.Layers {
		if l.Index != i {
			return fmt.Errorf("layers: layer %d has index %d", i, l.Index)
		}
		if len(l.Vertices) == 0 {
			return fmt.Errorf("layers: layer %d is empty", i)
		}
		for j, v := range l.Vertices {
			if j > 0 && l.Vertices[j-1] >= v {
				return fmt.Errorf("layers: layer %d is not strictly ascending", i)
			}
			if _, dup := dist[v]; dup {
				return fmt.Errorf("layers: vertex %d appears twice", v)
			}
			dist[v] = i
		}
		layers[i] = slices.Clone(l.Vertices)
	}
	if len(layers[0]) != 1 || layers[0][0] != doc.Start {
		return fmt.Errorf("layers: layer 0 must hold exactly the start vertex %d", doc.Start)
	}

	*m = Map{start: doc.Start, layers: layers, dist: dist}
	return nil
}
