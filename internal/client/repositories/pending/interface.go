package pending

import (
	"context"

	"github.com/coursecopilot/copilot/internal/client/models"
)

// Repository persists the queue of files selected for upload but not yet
// committed, so a restart does not lose unsent selections.
type Repository interface {
	// Add appends a queue entry. Content is stored in its encoded text form.
	Add(ctx context.Context, file *models.PendingFile) error

	// Remove deletes the first (oldest) entry matching the file name within
	// the course. Removing a name that is not queued is not an error.
	Remove(ctx context.Context, courseID, fileName string) error

	// ListByCourse returns the queued entries for the course in insertion
	// order, with content decoded. A batch whose persisted encoding no longer
	// decodes yields an empty queue, never an error.
	ListByCourse(ctx context.Context, courseID string) ([]*models.PendingFile, error)

	// DeleteByIDs removes the given entries (used after a successful commit).
	DeleteByIDs(ctx context.Context, ids []string) error
}
