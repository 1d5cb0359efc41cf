// Package web parses web service flags and launches the shop service.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	entrypoint "github.com/louisbranch/bengkel/internal/platform/cmd"
	"github.com/louisbranch/bengkel/internal/services/web"
	"github.com/louisbranch/bengkel/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/bengkel/internal/services/web/session"
	"github.com/louisbranch/bengkel/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"BENGKEL_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"BENGKEL_WEB_DB_PATH" envDefault:"data/bengkel.db"`
	SessionKey          string        `env:"BENGKEL_WEB_SESSION_KEY"`
	SessionTTL          time.Duration `env:"BENGKEL_WEB_SESSION_TTL" envDefault:"12h"`
	SessionRenewWindow  time.Duration `env:"BENGKEL_WEB_SESSION_RENEW_WINDOW" envDefault:"1h"`
	TrustForwardedProto bool          `env:"BENGKEL_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
	Timezone            string        `env:"BENGKEL_WEB_TIMEZONE" envDefault:"Asia/Jakarta"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "How long a sign-in stays valid")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto from the proxy")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA zone used for shop days and months")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot start a server.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("database path is required")
	}
	if len(c.SessionKey) < session.MinKeyLength {
		return fmt.Errorf("BENGKEL_WEB_SESSION_KEY must be at least %d bytes", session.MinKeyLength)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Run starts the web server and blocks until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		return serve(ctx, cfg)
	})
}

func serve(ctx context.Context, cfg Config) error {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	sessions, err := session.New(store, session.Config{
		Key:         []byte(cfg.SessionKey),
		TTL:         cfg.SessionTTL,
		RenewWindow: cfg.SessionRenewWindow,
	})
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Store:    store,
		Sessions: sessions,
		Auth:     sessions,
		Policy:   requestmeta.Policy{TrustForwardedProto: cfg.TrustForwardedProto},
		Location: location,
		Logger:   log.Default(),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
