// Package render draws a layered graph as a node-link diagram.
//
// # Overview
//
// [ToDOT] turns a graph and its [layers.Map] into Graphviz DOT source where
// every layer is pinned to its own rank, so the start vertex sits on top and
// each following layer one row below. Only the component of the start
// vertex is drawn.
//
//	dot := render.ToDOT(g, m, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the layer index
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package render
