// Package api wraps the Course Copilot backend REST surface. It contains no
// business logic: listing, uploading and deleting resources, thread context
// sync, and the asset-studio chat stream. Failures are not retried here;
// any retry policy belongs to the caller.
package api

import (
	"context"

	"github.com/coursecopilot/copilot/internal/client/models"
)

type Client interface {
	Close() error

	// Login authenticates against the backend and returns a bearer token.
	Login(ctx context.Context, email string, password []byte) (string, error)

	// SetToken installs the bearer token used on subsequent requests.
	SetToken(token string)

	// Ping checks server liveness.
	Ping(ctx context.Context) error

	// ListCourseResources returns the course-level resource listing.
	ListCourseResources(ctx context.Context, courseID string) ([]models.Resource, error)

	// ListThreadResources returns the listing scoped to a conversation thread.
	ListThreadResources(ctx context.Context, courseID, threadID string) ([]models.Resource, error)

	// UploadCourse uploads files as one multipart batch at course scope and
	// returns the server's view of the created resources.
	UploadCourse(ctx context.Context, courseID string, files []*models.PendingFile) ([]models.Resource, error)

	// UploadThread is UploadCourse at thread scope.
	UploadThread(ctx context.Context, courseID, threadID string, files []*models.PendingFile) ([]models.Resource, error)

	// DeleteResource removes an uploaded resource by its server id.
	DeleteResource(ctx context.Context, courseID, fileID string) error

	// GetResourceContent returns the stored text content of a resource.
	GetResourceContent(ctx context.Context, courseID, fileID string) (string, error)

	// SyncThreadFromCheckedIn asks the backend to attach all currently
	// checked-in resources to the thread's AI context.
	SyncThreadFromCheckedIn(ctx context.Context, courseID, threadID string) error

	// StreamAssetChat sends a prompt to the thread's asset-studio chat and
	// streams answer tokens through onToken, returning the collected answer.
	StreamAssetChat(ctx context.Context, courseID, threadID, prompt string, onToken func(token string)) (string, error)
}
