package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var storeNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// newMockDocumentStore creates a GormDocumentStore with a mocked SQL connection
func newMockDocumentStore(t *testing.T) (*GormDocumentStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	store := NewGormDocumentStore(gormDB)
	store.now = func() time.Time { return storeNow }
	store.ids = func() string { return "doc-1" }
	return store, mock, mockDB
}

func documentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"collection", "id", "data", "created_at", "updated_at"})
}

func TestGormDocumentStore_Get(t *testing.T) {
	t.Run("finds existing document", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE collection = \$1 AND id = \$2 LIMIT .*`).
			WithArgs("projects", "p1", 1).
			WillReturnRows(documentRows().AddRow("projects", "p1", `{"title":"Site"}`, storeNow, storeNow))

		doc, err := store.Get(context.Background(), "projects", "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", doc.ID)
		assert.Equal(t, "projects", doc.Collection)
		assert.Equal(t, "Site", doc.Fields["title"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing key", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE collection = \$1 AND id = \$2 LIMIT .*`).
			WithArgs("projects", "missing", 1).
			WillReturnRows(documentRows())

		_, err := store.Get(context.Background(), "projects", "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tags connection failures as transport errors", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "documents"`).
			WillReturnError(errors.New("connection refused"))

		_, err := store.Get(context.Background(), "projects", "p1")
		assert.ErrorIs(t, err, shared.ErrTransportFailure)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestGormDocumentStore_List(t *testing.T) {
	t.Run("lists documents oldest first", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE collection = \$1 ORDER BY created_at ASC, id ASC`).
			WithArgs("skills").
			WillReturnRows(documentRows().
				AddRow("skills", "s1", `{"name":"React"}`, storeNow, storeNow).
				AddRow("skills", "s2", `{"name":"Go"}`, storeNow.Add(time.Minute), storeNow))

		docs, err := store.List(context.Background(), "skills")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "s1", docs[0].ID)
		assert.Equal(t, "Go", docs[1].Fields["name"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty collection yields empty slice", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE collection = \$1`).
			WithArgs("skills").
			WillReturnRows(documentRows())

		docs, err := store.List(context.Background(), "skills")
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})
}

func TestGormDocumentStore_Create(t *testing.T) {
	store, mock, mockDB := newMockDocumentStore(t)
	defer mockDB.Close()

	mock.ExpectExec(`INSERT INTO "documents"`).
		WithArgs("certificates", "doc-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc, err := store.Create(context.Background(), "certificates", document.Fields{"title": "AWS"})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, storeNow, doc.CreatedAt)
	assert.Equal(t, "AWS", doc.Fields["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDocumentStore_Update(t *testing.T) {
	t.Run("merges into existing fields", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE collection = \$1 AND id = \$2 .*FOR UPDATE`).
			WithArgs("projects", "p1", 1).
			WillReturnRows(documentRows().AddRow("projects", "p1", `{"title":"Old","link":"https://a.dev"}`, storeNow, storeNow))
		mock.ExpectExec(`UPDATE "documents" SET .* WHERE collection = \$3 AND id = \$4`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "projects", "p1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		doc, err := store.Update(context.Background(), "projects", "p1", document.Fields{"title": "New"})
		require.NoError(t, err)
		assert.Equal(t, "New", doc.Fields["title"])
		assert.Equal(t, "https://a.dev", doc.Fields["link"], "untouched fields survive")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing document rolls back", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "documents"`).
			WillReturnRows(documentRows())
		mock.ExpectRollback()

		_, err := store.Update(context.Background(), "projects", "gone", document.Fields{"title": "x"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentStore_Set(t *testing.T) {
	store, mock, mockDB := newMockDocumentStore(t)
	defer mockDB.Close()

	mock.ExpectExec(`INSERT INTO "documents" .* ON CONFLICT \("collection","id"\) DO UPDATE SET`).
		WithArgs("about", "info", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc, err := store.Set(context.Background(), "about", "info", document.Fields{"aboutTitle": "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "info", doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDocumentStore_CreateIfAbsent(t *testing.T) {
	t.Run("creates when key is free", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "documents" .* ON CONFLICT DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		doc, created, err := store.CreateIfAbsent(context.Background(), "about", "info", document.Fields{"aboutTitle": "Default"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Default", doc.Fields["aboutTitle"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns the stored document when key is taken", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "documents" .* ON CONFLICT DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE collection = \$1 AND id = \$2`).
			WithArgs("about", "info", 1).
			WillReturnRows(documentRows().AddRow("about", "info", `{"aboutTitle":"Edited"}`, storeNow, storeNow))

		doc, created, err := store.CreateIfAbsent(context.Background(), "about", "info", document.Fields{"aboutTitle": "Default"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "Edited", doc.Fields["aboutTitle"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentStore_Delete(t *testing.T) {
	t.Run("deletes existing document", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "documents" WHERE collection = \$1 AND id = \$2`).
			WithArgs("blogPosts", "b1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Delete(context.Background(), "blogPosts", "b1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing document is not found", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "documents" WHERE collection = \$1 AND id = \$2`).
			WithArgs("blogPosts", "gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Delete(context.Background(), "blogPosts", "gone")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormDocumentStore_Count(t *testing.T) {
	store, mock, mockDB := newMockDocumentStore(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "documents" WHERE collection = \$1`).
		WithArgs("contactMessages").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := store.Count(context.Background(), "contactMessages")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
