package cmd

import (
	"context"
	"fmt"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/internal/store/postgres"
	"github.com/NomadCrew/splitly-backend/internal/store/supabase"
)

// pingableBackend is a store.Backend that can report its own reachability.
type pingableBackend interface {
	store.Backend
	store.Pinger
}

// openBackend builds the backing store selected by cfg.Backend.Driver. The
// returned func releases its connections.
func openBackend(ctx context.Context, cfg *config.Config) (pingableBackend, func(), error) {
	switch cfg.Backend.Driver {
	case config.DriverSupabase:
		b, err := supabase.New(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Schema)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create supabase backend: %w", err)
		}
		return b, func() {}, nil
	case config.DriverPostgres:
		pool, err := config.InitPostgres(ctx, &cfg.Database, cfg.Server.Environment)
		if err != nil {
			return nil, nil, err
		}
		return postgres.New(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend driver %q", cfg.Backend.Driver)
	}
}
