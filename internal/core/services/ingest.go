package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/studyhall-cli/internal/logger"
	"github.com/studyhall-labs/studyhall-cli/internal/transcript"
)

var _ driving.IngestService = (*Ingester)(nil)

// Ingester builds the searchable corpus: parse transcripts, chunk them,
// embed the chunks, persist everything, and index it. Ingestion is
// idempotent per course title.
type Ingester struct {
	chunker  *transcript.Chunker
	embedder driven.EmbeddingService
	store    driven.CourseStore
	index    driven.CourseIndex
}

// NewIngester creates the ingestion service.
func NewIngester(
	chunker *transcript.Chunker,
	embedder driven.EmbeddingService,
	store driven.CourseStore,
	index driven.CourseIndex,
) *Ingester {
	return &Ingester{chunker: chunker, embedder: embedder, store: store, index: index}
}

// IngestFile processes one transcript. A course whose title is already
// indexed is skipped with a zero chunk count.
func (i *Ingester) IngestFile(ctx context.Context, path string) (string, int, error) {
	course, err := transcript.ParseFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	if _, err := i.index.GetCourse(ctx, course.Title); err == nil {
		logger.Debug("Course %q already indexed, skipping", course.Title)
		return course.Title, 0, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", 0, fmt.Errorf("checking course %q: %w", course.Title, err)
	}

	chunks := i.chunker.Chunk(course)
	if err := i.embed(ctx, chunks); err != nil {
		return "", 0, fmt.Errorf("embedding %q: %w", course.Title, err)
	}

	if err := i.store.SaveCourse(ctx, course); err != nil {
		return "", 0, fmt.Errorf("saving course %q: %w", course.Title, err)
	}
	if err := i.store.SaveChunks(ctx, chunks); err != nil {
		return "", 0, fmt.Errorf("saving chunks for %q: %w", course.Title, err)
	}

	if err := i.index.AddCourse(ctx, *course); err != nil {
		return "", 0, fmt.Errorf("indexing course %q: %w", course.Title, err)
	}
	if err := i.index.AddChunks(ctx, chunks); err != nil {
		return "", 0, fmt.Errorf("indexing chunks for %q: %w", course.Title, err)
	}

	logger.Debug("Ingested %q: %d chunks", course.Title, len(chunks))
	return course.Title, len(chunks), nil
}

// IngestFolder processes every .txt transcript in dir in name order.
// Individual file failures are logged and skipped so one bad transcript
// never aborts the batch.
func (i *Ingester) IngestFolder(ctx context.Context, dir string) (int, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("reading transcript folder: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	courses, chunks := 0, 0
	for _, name := range names {
		_, n, err := i.IngestFile(ctx, filepath.Join(dir, name))
		if err != nil {
			logger.Warn("Skipping %s: %v", name, err)
			continue
		}
		if n > 0 {
			courses++
			chunks += n
		}
	}
	return courses, chunks, nil
}

// embed fills in the embedding vector of every chunk in one batch call.
func (i *Ingester) embed(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for idx, chunk := range chunks {
		texts[idx] = chunk.Content
	}
	vectors, err := i.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingUnavailable, len(vectors), len(chunks))
	}
	for idx := range chunks {
		chunks[idx].Embedding = vectors[idx]
	}
	return nil
}
