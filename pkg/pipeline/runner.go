package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphlayers/pkg/cache"
	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/graph"
	"github.com/matzehuels/graphlayers/pkg/layers"
	"github.com/matzehuels/graphlayers/pkg/observability"
	"github.com/matzehuels/graphlayers/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// runs as long as its Cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
	// Hooks receives stage events. Nil uses the globally registered hooks.
	Hooks observability.PipelineHooks
	// TTL bounds the lifetime of cached partitions. Zero means DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger discards log output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs load → layers → report.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	hooks := r.hooks()
	ctx = hooks.OnRunStart(ctx, runID)
	runStart := time.Now()

	result, err := r.execute(ctx, runID, opts)
	hooks.OnRunComplete(ctx, time.Since(runStart), err)
	return result, err
}

func (r *Runner) execute(ctx context.Context, runID string, opts Options) (*Result, error) {
	result := &Result{RunID: runID}
	logger := r.logger(opts.Logger).With("run", runID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	data, err := r.read(opts.Input, logger)
	if err != nil {
		return nil, err
	}
	g, err := r.loadBytes(ctx, opts.Input, data, logger)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.VertexCount = g.VertexCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layers
	layerStart := time.Now()
	m, hit, err := r.layers(ctx, cache.Hash(data), g, opts.Start, opts.Refresh, logger)
	if err != nil {
		return nil, err
	}
	result.Layers = m
	result.CacheHit = hit
	result.Stats.LayerTime = time.Since(layerStart)
	result.Stats.LayerCount = m.Len()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Report
	if opts.Output != "" {
		writeStart := time.Now()
		if err := r.write(ctx, opts.Output, m, g, opts.Report, logger); err != nil {
			return nil, err
		}
		result.Stats.WriteTime = time.Since(writeStart)
	}

	return result, nil
}

// Load reads and parses the graph file at path.
func (r *Runner) Load(ctx context.Context, path string) (*graph.Store, error) {
	logger := r.logger(nil)
	data, err := r.read(path, logger)
	if err != nil {
		return nil, err
	}
	return r.loadBytes(ctx, path, data, logger)
}

// LoadBytes parses graph text held in memory. source names the data in
// logs and errors.
func (r *Runner) LoadBytes(ctx context.Context, source string, data []byte) (*graph.Store, error) {
	return r.loadBytes(ctx, source, data, r.logger(nil))
}

// Layers computes the partition of g from start, consulting the cache under
// the key derived from inputHash. It reports whether the cache was hit.
func (r *Runner) Layers(ctx context.Context, inputHash string, g *graph.Store, start int) (*layers.Map, bool, error) {
	return r.layers(ctx, inputHash, g, start, false, r.logger(nil))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) read(path string, logger *log.Logger) ([]byte, error) {
	logger.Info("loading graph from file", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("cannot open input file", "path", path, "err", err)
		return nil, errors.Wrap(errors.ErrCodeInputAccess, err, "cannot open input file %s", path)
	}
	return data, nil
}

func (r *Runner) loadBytes(ctx context.Context, source string, data []byte, logger *log.Logger) (*graph.Store, error) {
	hooks := r.hooks()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	g := graph.New(graph.WithLogger(logger))
	err := g.Load(bytes.NewReader(data))
	hooks.OnLoadComplete(ctx, source, g.VertexCount(), g.EdgeCount(), time.Since(start), err)
	if err != nil {
		var fe *graph.FormatError
		if stderrors.As(err, &fe) {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "cannot load graph from %s", describe(source))
		}
		return nil, errors.Wrap(errors.ErrCodeInputAccess, err, "cannot read graph from %s", describe(source))
	}
	return g, nil
}

func (r *Runner) layers(ctx context.Context, inputHash string, g *graph.Store, start int, refresh bool, logger *log.Logger) (*layers.Map, bool, error) {
	key := cache.LayersKey(inputHash, start)
	cacheHooks := observability.Cache()

	if !refresh {
		if data, hit, err := r.backend().Get(ctx, key); err == nil && hit {
			var m layers.Map
			if err := json.Unmarshal(data, &m); err == nil && m.Start() == start {
				cacheHooks.OnCacheHit(ctx, "layers")
				logger.Debug("layers loaded from cache", "start", start, "layers", m.Len())
				return &m, true, nil
			}
			logger.Warn("discarding unreadable cache entry", "key", key)
		} else if err != nil {
			logger.Warn("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "layers")
	}

	hooks := r.hooks()
	hooks.OnLayersStart(ctx, start, g.VertexCount())
	t0 := time.Now()
	m, err := layers.Compute(g, start, layers.WithLogger(logger))
	layerCount := 0
	if m != nil {
		layerCount = m.Len()
	}
	hooks.OnLayersComplete(ctx, start, layerCount, time.Since(t0), err)
	if err != nil {
		if stderrors.Is(err, layers.ErrUnknownStartVertex) {
			return nil, false, errors.Wrap(errors.ErrCodeUnknownStartVertex, err, "start vertex %d not found in graph", start)
		}
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "compute layers")
	}

	if data, err := json.Marshal(m); err == nil {
		if err := r.backend().Set(ctx, key, data, r.ttl()); err != nil {
			logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layers", len(data))
		}
	}
	return m, false, nil
}

func (r *Runner) write(ctx context.Context, path string, m *layers.Map, g *graph.Store, opts report.Options, logger *log.Logger) error {
	opts.Graph = g
	format := formatName(opts)

	hooks := r.hooks()
	hooks.OnReportStart(ctx, format)
	start := time.Now()
	err := report.WriteFile(ctx, path, m, opts)
	hooks.OnReportComplete(ctx, format, time.Since(start), err)
	if err != nil {
		logger.Error("cannot write output file", "path", path, "err", err)
		return errors.Wrap(errors.ErrCodeOutputAccess, err, "cannot write output file %s", path)
	}
	logger.Info("results saved to file", "path", path, "format", format)
	return nil
}

func (r *Runner) logger(override *log.Logger) *log.Logger {
	if override != nil {
		return override
	}
	if r.Logger != nil {
		return r.Logger
	}
	return discardLogger()
}

func (r *Runner) hooks() observability.PipelineHooks {
	if r.Hooks != nil {
		return r.Hooks
	}
	return observability.Pipeline()
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return DefaultTTL
}

func (r *Runner) backend() cache.Cache {
	if r.Cache != nil {
		return r.Cache
	}
	return cache.NewNullCache()
}
