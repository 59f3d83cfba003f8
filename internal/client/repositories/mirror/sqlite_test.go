package mirror

import (
	"context"
	"database/sql"
	"testing"

	"github.com/coursecopilot/copilot/internal/client/models"
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
CREATE TABLE mirror (
  course_id TEXT PRIMARY KEY,
  folders   TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	folders := models.FolderMap{
		models.DefaultFolder: {{FileID: "1", FileName: "syllabus.pdf", Status: models.StatusCheckedIn}},
		"week-2":             {{FileName: "draft.md", FileType: "text/markdown"}},
	}

	require.NoError(t, r.Save(ctx, "course-1", folders))

	got, err := r.Load(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, folders, got)
}

func TestSave_OverwritesPreviousValue(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "course-1", models.FolderMap{
		models.DefaultFolder: {{FileName: "old.pdf"}},
	}))
	require.NoError(t, r.Save(ctx, "course-1", models.FolderMap{
		models.DefaultFolder: {{FileName: "new.pdf"}},
	}))

	got, err := r.Load(ctx, "course-1")
	require.NoError(t, err)
	require.Len(t, got[models.DefaultFolder], 1)
	assert.Equal(t, "new.pdf", got[models.DefaultFolder][0].FileName)
}

func TestLoad_MissingCourseIsEmpty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_CorruptValueFailsSoft(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO mirror (course_id, folders) VALUES ('course-1', '{{{garbage')`)
	require.NoError(t, err)

	got, err := r.Load(ctx, "course-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_LegacyFlatList(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO mirror (course_id, folders) VALUES ('course-1', '[{"fileName":"a.pdf"}]')`)
	require.NoError(t, err)

	got, err := r.Load(ctx, "course-1")
	require.NoError(t, err)
	require.Len(t, got[models.DefaultFolder], 1)
	assert.Equal(t, "a.pdf", got[models.DefaultFolder][0].FileName)
}

func TestCoursesDoNotLeak(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "course-1", models.FolderMap{
		models.DefaultFolder: {{FileName: "mine.pdf"}},
	}))

	got, err := r.Load(ctx, "course-2")
	require.NoError(t, err)
	assert.Empty(t, got)
}
