package idemctl

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelane/hospital-billing/billing/idempotency"
	"github.com/carelane/hospital-billing/billing/idempotency/pgstore"
	"github.com/carelane/hospital-billing/billing/idempotency/sqlitestore"
)

// openCoordinator connects to the configured backend. The returned func releases it.
func openCoordinator(ctx context.Context, opts *RootOptions, logOut io.Writer) (*idempotency.Coordinator, func(), error) {
	cfg := idempotency.DefaultConfig()
	if opts.Config != "" {
		loaded, err := idempotency.LoadConfig(opts.Config)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}

	var (
		store   idempotency.Store
		release func()
	)
	if opts.Postgres != "" {
		pool, err := pgxpool.New(ctx, opts.Postgres)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to connect to postgres", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, WrapExitError(ExitCommandError, "failed to connect to postgres", err)
		}
		store = pgstore.New(pool)
		release = pool.Close
	} else {
		s, err := sqlitestore.Open(opts.Database)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		store = s
		release = func() { _ = s.Close() }
	}

	c, err := idempotency.NewCoordinator(store, nil, cfg, idempotency.WithLogger(newLogger(opts, logOut)))
	if err != nil {
		release()
		return nil, nil, WrapExitError(ExitCommandError, "failed to create coordinator", err)
	}
	return c, release, nil
}
