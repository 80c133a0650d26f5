package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlayers/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layering over HTTP",
		Long: `Start an HTTP server that partitions posted graphs into layers.

Endpoints:
  GET  /healthz            liveness and build info
  POST /v1/layers?start=N  graph text in the body, layers as JSON

The format and locale query parameters select other report formats.`,
		Example: `  graphlayers serve --addr :8080
  curl --data-binary @graph.txt 'localhost:8080/v1/layers?start=1'`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), c.config.GetString(keyServeAddr))
		},
	}

	cmd.Flags().String("addr", defaultServeAddr, "listen address")
	_ = c.config.BindPFlag(keyServeAddr, cmd.Flags().Lookup("addr"))

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
}
