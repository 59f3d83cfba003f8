package session

import "context"

// Repository is a small key/value store for session state that should survive
// a restart: the bearer token, the active course, checked-in name lists.
type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores or replaces the value for the key.
	Set(ctx context.Context, key string, value []byte) error

	// Clear wipes all session state (logout).
	Clear(ctx context.Context) error
}

// Well-known session keys.
const (
	KeyToken        = "token"
	KeyActiveCourse = "active_course"
)
