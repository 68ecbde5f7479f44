package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/isdelr/taskdeck-be/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway sqlite database with the real schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T {
	return &v
}
