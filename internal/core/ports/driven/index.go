package driven

import (
	"context"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

// CourseIndex is the similarity-search capability over embedded chunks.
// The core defines this query contract only; index internals (storage
// layout, similarity algorithm) belong to the adapter.
type CourseIndex interface {
	// AddCourse registers course metadata in the catalog so titles can
	// be fuzzily resolved and outlines retrieved.
	AddCourse(ctx context.Context, course domain.Course) error

	// AddChunks indexes content chunks with their embeddings.
	// Chunks are write-once; re-adding an indexed chunk is undefined.
	AddChunks(ctx context.Context, chunks []domain.Chunk) error

	// Search runs one similarity query and returns results ordered by
	// descending score, ties broken by ascending chunk index.
	// opts.CourseTitle must be an exact indexed title.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// ResolveCourseTitle fuzzily matches a partial course name against
	// the catalog. Returns domain.ErrNotFound when nothing plausibly
	// matches.
	ResolveCourseTitle(ctx context.Context, name string) (string, error)

	// GetCourse returns catalog metadata for an exact title,
	// or domain.ErrNotFound.
	GetCourse(ctx context.Context, title string) (*domain.Course, error)

	// ListCourseTitles returns every indexed course title.
	ListCourseTitles(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}
