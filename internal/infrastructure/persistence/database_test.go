package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB, driver: config.DriverPostgres}, mock, mockDB
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectPing()
	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverFirestore})
	assert.Error(t, err)
}

func TestOpenBackend_Memory(t *testing.T) {
	backend, err := OpenBackend(context.Background(), &config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer backend.Close()

	assert.Nil(t, backend.DB)
	assert.IsType(t, &MemoryDocumentStore{}, backend.Store)
	assert.NoError(t, backend.Ping(context.Background()))
}

func TestOpenBackend_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "portfolio.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}
	backend, err := OpenBackend(context.Background(), cfg)
	require.NoError(t, err)
	defer backend.Close()

	require.NotNil(t, backend.DB)
	assert.Equal(t, config.DriverSQLite, backend.DB.Driver())
	assert.NoError(t, backend.Ping(context.Background()))

	ctx := context.Background()
	store := backend.Store

	doc, err := store.Create(ctx, "projects", document.Fields{"title": "Site", "technologies": []string{"Go", "Gin"}})
	require.NoError(t, err)

	got, err := store.Get(ctx, "projects", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site", got.Fields["title"])
	assert.Equal(t, []any{"Go", "Gin"}, got.Fields["technologies"])

	updated, err := store.Update(ctx, "projects", doc.ID, document.Fields{"link": "https://x.dev"})
	require.NoError(t, err)
	assert.Equal(t, "Site", updated.Fields["title"])

	_, created, err := store.CreateIfAbsent(ctx, "about", "info", document.Fields{"aboutTitle": "Default"})
	require.NoError(t, err)
	assert.True(t, created)
	_, created, err = store.CreateIfAbsent(ctx, "about", "info", document.Fields{"aboutTitle": "Other"})
	require.NoError(t, err)
	assert.False(t, created)

	set, err := store.Set(ctx, "about", "info", document.Fields{"aboutTitle": "Edited"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", set.Fields["aboutTitle"])

	n, err := store.Count(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, store.Delete(ctx, "projects", doc.ID))
	assert.ErrorIs(t, store.Delete(ctx, "projects", doc.ID), shared.ErrNotFound)
}
