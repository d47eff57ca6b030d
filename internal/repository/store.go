package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/persistence"
)

// Store is an opened document store and the repositories bound to it.
type Store struct {
	*Repository
	Driver string
	ping   func(context.Context) error
	close  func()
}

// OpenStore connects the backend selected by cfg.Storage.Driver. Postgres
// migrations run first when enabled.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return &Store{
			Repository: NewPostgresRepository(pg.PoolHandle()),
			Driver:     cfg.Storage.Driver,
			ping:       pg.Ping,
			close:      pg.Close,
		}, nil

	case config.StorageDriverMongo:
		mg, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Repository: NewMongoRepository(mg.Database()),
			Driver:     cfg.Storage.Driver,
			ping:       mg.Ping,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				mg.Close(closeCtx)
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// Ping verifies the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
