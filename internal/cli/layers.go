package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/pipeline"
	"github.com/matzehuels/graphlayers/pkg/report"
)

// layersCommand creates the root command, which runs a full layering.
func (c *CLI) layersCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "graphlayers <input> <start> <output>",
		Short: "Partition an undirected graph into breadth-first layers",
		Long: `graphlayers reads an undirected graph from an adjacency list, computes the
breadth-first layers of the component containing the start vertex, and writes
them to a report file.

Each input line lists a vertex followed by its neighbors:

  # comment
  1 2 3
  2 4

Empty lines and lines starting with # are ignored.`,
		Example: `  graphlayers graph.txt 1 layers.txt
  graphlayers graph.txt 1 layers.txt --locale ru
  graphlayers graph.txt 1 layers.svg --format svg`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayers(cmd.Context(), args[0], args[1], args[2], refresh)
		},
	}

	f := cmd.Flags()
	f.StringP("format", "f", report.FormatText, "report format: text, json, dot, svg")
	f.String("locale", "en", "report labels: en, ru")
	f.String("labels", "", "TOML file with custom report labels")
	f.Bool("bom", false, "prefix the report with a UTF-8 byte order mark")
	f.Int("wrap", report.English.Wrap, "vertex ids per report line (0 disables wrapping)")
	f.Bool("detailed", false, "show layer indices in dot and svg diagrams")
	f.BoolVar(&refresh, "refresh", false, "recompute even if the result is cached")

	_ = c.config.BindPFlag(keyReportFormat, f.Lookup("format"))
	_ = c.config.BindPFlag(keyReportLocale, f.Lookup("locale"))
	_ = c.config.BindPFlag(keyReportLabels, f.Lookup("labels"))
	_ = c.config.BindPFlag(keyReportBOM, f.Lookup("bom"))
	_ = c.config.BindPFlag(keyReportWrap, f.Lookup("wrap"))
	_ = c.config.BindPFlag(keyReportDetail, f.Lookup("detailed"))

	return cmd
}

// exactArgs is cobra.ExactArgs with a usage message and a coded error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == n {
			return nil
		}
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return errors.New(errors.ErrCodeInvalidArgument, "expected %d arguments, got %d", n, len(args))
	}
}

func (c *CLI) runLayers(ctx context.Context, input, startArg, output string, refresh bool) error {
	logger := loggerFromContext(ctx)

	start, err := errors.ParseVertexID(startArg)
	if err != nil {
		logger.Error("invalid start vertex", "arg", startArg, "err", err)
		return err
	}
	ropts, err := reportOptions(c.config)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		Input:   input,
		Start:   start,
		Output:  output,
		Report:  ropts,
		Refresh: refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Partitioned %d vertices into %d layers", res.Layers.Size(), res.Layers.Len()))

	printSuccess("Layers from vertex %d", start)
	printStats(res.Stats.VertexCount, res.Stats.EdgeCount, res.CacheHit)
	printLayerTable(res.Layers)
	printFile(output)
	return nil
}
