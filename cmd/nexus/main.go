package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nexus/internal/errors"
)

var version = "dev"

// Entry point for the application
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			stop()
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, errorText(err.Error()))
		stop()
		os.Exit(1)
	}
}
