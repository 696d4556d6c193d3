package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"courier-tracking/internal/cli"
)

func main() {
	// запросы отменяются вместе с командой по Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
