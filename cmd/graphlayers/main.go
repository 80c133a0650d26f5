package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/graphlayers/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := run(ctx)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) int {
	c := cli.New(os.Stderr, cli.LogInfo)
	defer c.Close()

	return c.HandleError(c.RootCommand().ExecuteContext(ctx))
}
