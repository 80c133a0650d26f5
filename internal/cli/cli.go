// Package cli implements the graphlayers command-line interface.
//
// # Commands
//
// The root command partitions a graph into BFS layers:
//
//	graphlayers <input> <start> <output>
//
// Further commands:
//   - stats: print vertex and edge counts of a graph file
//   - serve: expose layering over HTTP
//   - cache: inspect or clear the layer cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Settings come from flags, GRAPHLAYERS_* environment variables and a TOML
// config file ($XDG_CONFIG_HOME/graphlayers/config.toml or --config), in
// that order of precedence.
//
// # Logging
//
// Logs go to stderr at info level, or debug level with --verbose. With
// --log-file every entry is also appended to the given file.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/graphlayers/pkg/buildinfo"
	"github.com/matzehuels/graphlayers/pkg/cache"
	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/observability"
	"github.com/matzehuels/graphlayers/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "graphlayers"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	console io.Writer
	config  *viper.Viper
	cfgFile string
	closers []func(context.Context) error
	tracing bool
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		console: w,
		config:  newConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.layersCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.setup(cmd)
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid flag")
	})

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/graphlayers/config.toml)")
	pf.BoolP("verbose", "v", false, "enable verbose logging")
	pf.String("log-file", "", "also append log entries to this file")
	pf.Bool("trace", false, "print OpenTelemetry spans to stderr")
	pf.Bool("no-cache", false, "disable the layer cache")
	_ = c.config.BindPFlag(keyVerbose, pf.Lookup("verbose"))
	_ = c.config.BindPFlag(keyLogFile, pf.Lookup("log-file"))
	_ = c.config.BindPFlag(keyTrace, pf.Lookup("trace"))

	root.AddCommand(c.statsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// HandleError logs err at error level, prints its message to the console
// and returns the process exit status. Cancellation is only logged at
// debug level.
func (c *CLI) HandleError(err error) int {
	if err == nil {
		return errors.ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		c.Logger.Debug("interrupted")
		return errors.ExitCode(err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	c.Logger.Error("command failed", "code", code, "err", errors.UserMessage(err))
	PrintError(c.console, err)
	return errors.ExitCode(err)
}

// Close flushes tracing and closes the log file. It is safe to call
// more than once.
func (c *CLI) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](context.Background()); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// setup loads configuration and applies it to logging and tracing before
// any command runs.
func (c *CLI) setup(cmd *cobra.Command) error {
	if err := readConfig(c.config, c.cfgFile); err != nil {
		return err
	}

	level := LogInfo
	if c.config.GetBool(keyVerbose) {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if path := c.config.GetString(keyLogFile); path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "open log file %s", path)
		}
		c.Logger = newTeeLogger(c.console, f, level)
		c.closers = append(c.closers, func(context.Context) error { return f.Close() })
	}

	if c.config.GetBool(keyTrace) && !c.tracing {
		shutdown, err := observability.InitTracing(cmd.Context(), os.Stderr, appName, buildinfo.Version)
		if err != nil {
			return err
		}
		hooks := observability.NewTracingHooks(nil)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
		c.tracing = true
		c.closers = append(c.closers, shutdown)
	}

	if f := cmd.Flags().Lookup("no-cache"); f != nil && f.Changed {
		noCache, _ := cmd.Flags().GetBool("no-cache")
		c.config.Set(keyCacheEnabled, !noCache)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, c.Logger)
	r.TTL = cacheTTL(c.config)
	return r, nil
}

// newCache opens the configured cache. A file cache that cannot be created
// degrades to no caching. A malformed Redis URL is an argument error and an
// unreachable Redis an internal one.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if !c.config.GetBool(keyCacheEnabled) {
		return cache.NewNullCache(), nil
	}
	if url := c.config.GetString(keyCacheRedisURL); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			if stderrors.Is(err, cache.ErrInvalidRedisURL) {
				return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "open redis cache")
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "open redis cache")
		}
		return rc, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config.GetString(keyCacheDir); dir != "" {
		return dir, nil
	}
	return cacheDir()
}
