package driving

import "context"

// IngestService builds the searchable corpus from transcript files.
// Ingestion runs sequentially before the system accepts queries and is
// idempotent per course title.
type IngestService interface {
	// IngestFile ingests a single transcript file. Returns the course
	// title and the number of chunks produced (0 when skipped because
	// the title is already indexed).
	IngestFile(ctx context.Context, path string) (string, int, error)

	// IngestFolder ingests every transcript in a folder. Individual
	// file failures are logged and skipped; the batch never aborts.
	// Returns the number of courses and chunks added.
	IngestFolder(ctx context.Context, dir string) (int, int, error)
}
