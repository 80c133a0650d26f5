package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlayers/pkg/graph"
	"github.com/matzehuels/graphlayers/pkg/pipeline"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stats <input>",
		Short:   "Print vertex and edge counts of a graph file",
		Long:    `Parse a graph file and print its vertex count, edge count and largest vertex degree.`,
		Example: `  graphlayers stats graph.txt`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runStats(ctx context.Context, input string) error {
	runner := pipeline.NewRunner(nil, loggerFromContext(ctx))
	defer runner.Close()

	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	if g.Empty() {
		printWarning("Graph has no vertices")
	}

	printKeyValue("Vertices", strconv.Itoa(g.VertexCount()))
	printKeyValue("Edges", strconv.Itoa(g.EdgeCount()))
	printKeyValue("Max degree", strconv.Itoa(maxDegree(g)))
	return nil
}

func maxDegree(g *graph.Store) int {
	d := 0
	for _, v := range g.Vertices() {
		d = max(d, g.Degree(v))
	}
	return d
}
