// Package report renders a layer partition for humans and machines.
//
// # Formats
//
// Four output formats are supported:
//
//   - text: a labelled listing rendered through a text/template
//   - json: the [layers.Map] JSON document
//   - dot: Graphviz source from [render.ToDOT]
//   - svg: the dot output rendered in-process
//
// # Labels
//
// The words used by the text format come from a [Labels] pack. English and
// Russian packs are built in; further packs are TOML files:
//
//	header    = "Graph layer partition:"
//	separator = "================================="
//	layer     = "Layer %d (vertex count: %d):"
//	vertices  = "Vertices:"
//	total     = "Total layers: %d"
//	bom       = false
//	wrap      = 10
//
// Keys missing from a file keep the value of the base pack.
//
// # Writing
//
// [WriteFile] renders into a temporary file next to the target and renames
// it over the target once the render completes. A failed render leaves the
// previous report untouched.
package report
