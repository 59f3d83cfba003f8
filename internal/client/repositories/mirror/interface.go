package mirror

import (
	"context"

	"github.com/coursecopilot/copilot/internal/client/models"
)

// Repository persists the per-course folder mapping of resources.
// Implementations are typically backed by the local SQLite database.
type Repository interface {
	// Load returns the last-persisted folder mapping for the course.
	// A missing or malformed persisted value yields an empty mapping,
	// never an error: the mirror must fail soft.
	Load(ctx context.Context, courseID string) (models.FolderMap, error)

	// Save overwrites the persisted mapping for the course in a single write.
	Save(ctx context.Context, courseID string, folders models.FolderMap) error
}
