package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSetGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("tok-123")))

	got, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-123"), got)
}

func TestSet_Overwrites(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyActiveCourse, []byte("course-1")))
	require.NoError(t, r.Set(ctx, KeyActiveCourse, []byte("course-2")))

	got, err := r.Get(ctx, KeyActiveCourse)
	require.NoError(t, err)
	assert.Equal(t, []byte("course-2"), got)
}

func TestGet_MissingKeyIsNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("tok")))
	require.NoError(t, r.Clear(ctx))

	got, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Nil(t, got)
}
