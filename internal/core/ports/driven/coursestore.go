package driven

import (
	"context"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

// CourseStore persists courses and their chunks across restarts.
// Backed by SQLite. The in-memory index is warmed from this store at
// startup, which keeps re-ingestion idempotent between runs.
type CourseStore interface {
	// SaveCourse stores course metadata.
	SaveCourse(ctx context.Context, course *domain.Course) error

	// SaveChunks stores chunks (with embeddings) for a course.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetCourse retrieves a course by exact title,
	// or domain.ErrNotFound.
	GetCourse(ctx context.Context, title string) (*domain.Course, error)

	// GetChunks retrieves all chunks for a course, ordered by index.
	GetChunks(ctx context.Context, courseTitle string) ([]domain.Chunk, error)

	// ListCourses returns all stored courses without lesson content.
	ListCourses(ctx context.Context) ([]domain.Course, error)

	// Close closes the store.
	Close() error
}

// SessionStore holds bounded conversation histories keyed by session id.
// Distinct session ids must be safe for concurrent use; no persistence
// across restarts is provided.
type SessionStore interface {
	// History returns the retained exchanges for a session, oldest
	// first. Unknown ids return an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]domain.Exchange, error)

	// Append records one exchange, creating the session if absent and
	// truncating from the front beyond the configured bound.
	Append(ctx context.Context, sessionID, query, response string) error

	// Clear removes a session entirely.
	Clear(ctx context.Context, sessionID string) error
}
