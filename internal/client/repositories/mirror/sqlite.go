package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/dbx"
)

// SQLiteRepository keeps one row per course: the JSON-encoded folder mapping.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Load returns the persisted folder mapping for the course. No row, or a row
// whose payload no longer parses, both yield an empty mapping. Legacy payloads
// that hold a flat resource list are mapped into the default folder by
// models.DecodeFolderMap.
func (r *SQLiteRepository) Load(ctx context.Context, courseID string) (models.FolderMap, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT folders FROM mirror WHERE course_id = ?`, courseID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FolderMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mirror[%s]: %w", courseID, err)
	}

	m, err := models.DecodeFolderMap(data)
	if err != nil {
		// Corrupt persisted state is treated as absent.
		return models.FolderMap{}, nil
	}
	if m == nil {
		return models.FolderMap{}, nil
	}
	return m, nil
}

// Save upserts the folder mapping for the course as one write.
func (r *SQLiteRepository) Save(ctx context.Context, courseID string, folders models.FolderMap) error {
	data, err := models.EncodeFolderMap(folders)
	if err != nil {
		return fmt.Errorf("failed to encode mirror[%s]: %w", courseID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO mirror (course_id, folders) VALUES (?, ?)
		ON CONFLICT(course_id) DO UPDATE SET folders = excluded.folders
	`, courseID, data)
	if err != nil {
		return fmt.Errorf("failed to save mirror[%s]: %w", courseID, err)
	}
	return nil
}
