// Package admin builds the operator command line for shop maintenance.
package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	entrypoint "github.com/louisbranch/bengkel/internal/platform/cmd"
	"github.com/louisbranch/bengkel/internal/services/web/storage/sqlite"
)

// Config holds admin command defaults read from the environment.
type Config struct {
	DBPath string `env:"BENGKEL_WEB_DB_PATH" envDefault:"data/bengkel.db"`
}

// ParseConfig loads admin defaults from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type rootOptions struct {
	dbPath string
}

// NewRootCommand returns the admin command tree.
func NewRootCommand(cfg Config) *cobra.Command {
	opts := &rootOptions{dbPath: cfg.DBPath}
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Maintain the bengkel shop database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db-path", opts.dbPath, "SQLite database path")

	root.AddCommand(
		newUserCommand(opts),
		newSeedCommand(opts),
		newScoreCommand(),
	)
	return root
}

// Execute runs the admin command tree with args.
func Execute(ctx context.Context, cfg Config, args []string) error {
	root := NewRootCommand(cfg)
	root.SetArgs(args)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, root.ExecuteContext)
}

func (o *rootOptions) openStore() (*sqlite.Store, error) {
	path := strings.TrimSpace(o.dbPath)
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if dir := filepath.Dir(filepath.Clean(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func closeStore(cmd *cobra.Command, store *sqlite.Store) {
	if err := store.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: close store: %v\n", err)
	}
}
