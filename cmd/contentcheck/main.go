// Package main validates studio content and choreography files.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	contentcheckcmd "github.com/louisbranch/royal.studio/internal/cmd/contentcheck"
	"github.com/louisbranch/royal.studio/internal/platform/config"
)

func main() {
	cfg, err := contentcheckcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := contentcheckcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("content check failed: %v", err)
	}
}
