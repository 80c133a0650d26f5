// Package graph provides the undirected adjacency store used by graphlayers.
//
// A [Store] is built from declarative edge lines, one declaration per line:
//
//	# comment
//	<vertex_id> <neighbor_id_1> <neighbor_id_2> ...
//
// Empty lines and lines starting with '#' are skipped. Vertex ids are signed
// 32-bit integers. Every declared neighbor is linked in both directions, so
// the stored adjacency is always symmetric regardless of whether the reverse
// direction was declared.
//
// # Normalization
//
// After a build every vertex maps to an ascending, duplicate-free neighbor
// list that never contains the vertex itself:
//
//	1 1 2 2 3   →   1: [2 3]
//	                2: [1]
//	                3: [1]
//
// A vertex that only appears alone on its own line (no neighbors, and nobody
// lists it as a neighbor) is not stored.
//
// # Loading
//
// Loading is all-or-nothing. [Store.Build] and [Store.Load] always reset the
// store first; a line without a parseable leading vertex id aborts the load
// with a [*FormatError] carrying the 1-based line number and leaves the store
// empty.
//
//	s := graph.New(graph.WithLogger(logger))
//	if err := s.Load(f); err != nil {
//	    var fe *graph.FormatError
//	    if errors.As(err, &fe) {
//	        fmt.Println("bad line", fe.Line)
//	    }
//	}
//
// # Concurrency
//
// A Store is not safe for concurrent mutation. Concurrent reads after a
// completed load are safe.
package graph
