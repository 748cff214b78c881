package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/contentlist/internal/cli"
	"github.com/rshade/contentlist/pkg/version"
)

func main() {
	os.Exit(cli.ExitCode(run()))
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.String())
	return root.ExecuteContext(ctx)
}
