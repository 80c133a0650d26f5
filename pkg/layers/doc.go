// Package layers computes breadth-first distance layers of an undirected graph.
//
// Given a start vertex, [Compute] partitions the connected component of the
// start into layers: layer 0 holds the start vertex, layer d holds every
// vertex whose shortest path from the start has exactly d edges.
//
//	1 --- 2 --- 4    start = 1
//	 \         /
//	  `-- 3 --'      layer 0: [1]
//	                 layer 1: [2 3]
//	                 layer 2: [4]
//
// # Algorithm
//
// Compute runs a BFS with two explicit frontiers. Vertices of the current
// frontier are dequeued in order and their neighbors are expanded in
// ascending id order; every vertex not seen before is assigned distance d+1
// and pushed onto the next frontier. When the current frontier runs dry the
// frontiers are swapped and the finished layer is sorted.
//
// # Guarantees
//
// The returned [Map] satisfies:
//   - Layer 0 is exactly the start vertex
//   - Layer indices are contiguous from 0 to Len()-1
//   - Each reachable vertex appears in exactly one layer
//   - Vertices within a layer are strictly ascending
//   - Unreachable vertices never appear
//
// # Errors
//
// The only failure is a start vertex absent from the graph, reported as
// [ErrUnknownStartVertex]. Once started the computation cannot fail.
//
// # Performance
//
// Time complexity is O(V log V + E) for the reachable component (the log
// factor comes from sorting each layer). Space complexity is O(V).
package layers
