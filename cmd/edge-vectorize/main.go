package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ironsheep/edge-vectorize/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := cli.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
	if err := cli.Execute(ctx, os.Args[1:], info, os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
