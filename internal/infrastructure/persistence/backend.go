package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/infrastructure/config"
)

// Backend is the document store selected by configuration, together with
// whatever connection it owns.
type Backend struct {
	Store document.Store
	// DB is set only for the SQL drivers.
	DB *Database

	closeFn func() error
	pingFn  func(context.Context) error
}

// OpenBackend builds the document store for cfg.Driver. Options apply to
// the SQL drivers only.
func OpenBackend(ctx context.Context, cfg *config.DatabaseConfig, opts ...DatabaseOption) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &Backend{
			Store:   NewMemoryDocumentStore(),
			closeFn: func() error { return nil },
			pingFn:  func(context.Context) error { return nil },
		}, nil

	case config.DriverFirestore:
		client, err := NewFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := NewFirestoreDocumentStore(client)
		return &Backend{
			Store:   store,
			closeFn: store.Close,
			pingFn: func(ctx context.Context) error {
				_, err := store.Count(ctx, "about")
				return err
			},
		}, nil

	case config.DriverPostgres, config.DriverSQLite, "":
		db, err := NewDatabase(cfg, opts...)
		if err != nil {
			return nil, err
		}
		if cfg.Driver == config.DriverSQLite {
			if err := db.AutoMigrate(); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
			}
		}
		return &Backend{
			Store:   NewGormDocumentStore(db.DB),
			DB:      db,
			closeFn: db.Close,
			pingFn:  func(context.Context) error { return db.Ping() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Ping checks that the store is reachable
func (b *Backend) Ping(ctx context.Context) error {
	if b.pingFn == nil {
		return errors.New("backend not initialized")
	}
	return b.pingFn(ctx)
}

// Close releases the underlying connection
func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}
