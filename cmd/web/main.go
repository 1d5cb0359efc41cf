// Package main starts the browser-facing shop service.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	webcmd "github.com/louisbranch/bengkel/internal/cmd/web"
	entrypoint "github.com/louisbranch/bengkel/internal/platform/cmd"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceWeb))
	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
