package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/leaderboard"
	"github.com/sells-group/pool-cli/internal/metrics"
	"github.com/sells-group/pool-cli/internal/scoring"
	"github.com/sells-group/pool-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "pool.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// openStore validates the config for store access, opens the store and
// applies migrations.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// serviceEnv is a store plus the leaderboard service built on it.
type serviceEnv struct {
	Store   store.Store
	Service *leaderboard.Service
}

func (e *serviceEnv) Close() {
	if e.Store != nil {
		e.Store.Close() //nolint:errcheck
	}
}

func initService(ctx context.Context, m *metrics.Metrics) (*serviceEnv, error) {
	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		return nil, eris.Wrap(err, "scoring rules")
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	return &serviceEnv{
		Store:   st,
		Service: leaderboard.NewService(st, engine, leaderboard.OptionsFromConfig(cfg, m)),
	}, nil
}
