package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"retail-records/internal/cli"
	"retail-records/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr, config.FromEnv())
	stop()
	os.Exit(code)
}
