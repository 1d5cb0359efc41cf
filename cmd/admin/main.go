// Package main runs operator maintenance commands against the shop database.
package main

import (
	"context"
	"os"

	admincmd "github.com/louisbranch/bengkel/internal/cmd/admin"
	entrypoint "github.com/louisbranch/bengkel/internal/platform/cmd"
	"github.com/louisbranch/bengkel/internal/platform/config"
)

func main() {
	cfg, err := admincmd.ParseConfig()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := entrypoint.SignalContext(context.Background())
	if err := admincmd.Execute(ctx, cfg, os.Args[1:]); err != nil {
		stop()
		config.Exitf("Error: %v", err)
	}
	stop()
}
