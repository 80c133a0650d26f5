// Package pipeline runs the load → layers → report sequence of graphlayers.
//
// The CLI and the HTTP server both go through a [Runner] so caching,
// logging, observability hooks and error classification behave the same
// everywhere.
//
// # Stages
//
//  1. Load: read the graph source and build a [graph.Store]
//  2. Layers: partition the component of the start vertex with [layers.Compute]
//  3. Report: write the partition with [report.WriteFile]
//
// Each stage can be run on its own ([Runner.Load], [Runner.Layers]) or as
// part of [Runner.Execute].
//
// # Errors
//
// Every error leaving this package is an [errors.Error] carrying one of
// INPUT_ACCESS, INVALID_FORMAT, UNKNOWN_START_VERTEX, OUTPUT_ACCESS or
// INVALID_ARGUMENT, except context cancellation which is returned as is.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "graph.txt",
//	    Start:  1,
//	    Output: "layers.txt",
//	})
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/graph"
	"github.com/matzehuels/graphlayers/pkg/layers"
	"github.com/matzehuels/graphlayers/pkg/report"
)

// DefaultTTL is how long cached layer partitions stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// Input is the path of the graph file.
	Input string
	// Start is the start vertex.
	Start int
	// Output is the report path. Empty skips the report stage.
	Output string
	// Report selects the report format and labels. Report.Graph is filled
	// in by the runner.
	Report report.Options
	// Refresh ignores cached partitions and overwrites them.
	Refresh bool
	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// Validate checks paths and the report format. The format is lower-cased
// in place.
func (o *Options) Validate() error {
	if err := errors.ValidatePath(o.Input); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "input path")
	}
	if o.Output != "" {
		if err := errors.ValidatePath(o.Output); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "output path")
		}
	}
	o.Report.Format = strings.ToLower(o.Report.Format)
	if o.Report.Format != "" && !report.ValidFormat(o.Report.Format) {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid report format %q", o.Report.Format)
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and traces.
	RunID string

	// Graph is the loaded graph.
	Graph *graph.Store

	// Layers is the computed partition.
	Layers *layers.Map

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the partition came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	LayerCount  int
	LoadTime    time.Duration
	LayerTime   time.Duration
	WriteTime   time.Duration
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func formatName(o report.Options) string {
	if o.Format == "" {
		return report.FormatText
	}
	return o.Format
}

func describe(source string) string {
	if source == "" {
		return "input"
	}
	return fmt.Sprintf("%q", source)
}
