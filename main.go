package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/saint0x/ggreview/pkg/cli"
)

func main() {
	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
