package pending

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, file *models.PendingFile) error {
	query := `INSERT INTO pending_files (id, course_id, file_name, file_type, content)
			values (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.CourseID, file.FileName, file.FileType, file.EncodeContent())
	if err != nil {
		return fmt.Errorf("failed to queue pending file: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, courseID, fileName string) error {
	query := `DELETE FROM pending_files WHERE rowid = (
			SELECT rowid FROM pending_files
			WHERE course_id = ? AND file_name = ?
			ORDER BY rowid LIMIT 1)`
	_, err := r.db.ExecContext(ctx, query, courseID, fileName)
	if err != nil {
		return fmt.Errorf("failed to remove pending file: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.PendingFile, error) {
	query := `SELECT id, file_name, file_type, content FROM pending_files
			WHERE course_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error selecting pending files: %w", err)
	}
	defer rows.Close()

	var result []*models.PendingFile

	for rows.Next() {
		item := &models.PendingFile{CourseID: courseID}
		var encoded string
		if err := rows.Scan(&item.ID, &item.FileName, &item.FileType, &encoded); err != nil {
			return nil, err
		}
		if err := item.DecodeContent(encoded); err != nil {
			// A batch that no longer decodes is treated as absent.
			return []*models.PendingFile{}, nil
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for n, id := range ids {
		args[n] = id
	}

	query := fmt.Sprintf(`DELETE FROM pending_files WHERE id IN (%s)`, placeholders)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete pending files: %w", err)
	}
	return nil
}
