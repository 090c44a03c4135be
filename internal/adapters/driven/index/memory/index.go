// Package memory provides an in-process course index with brute-force
// cosine similarity search. The corpus is small enough (hundreds of
// chunks per course) that a linear scan outperforms the bookkeeping of
// an approximate index.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.CourseIndex = (*Index)(nil)

// resolveThreshold is the minimum title similarity for a semantic
// course-name match.
const resolveThreshold = 0.45

// Index holds the course catalog and embedded chunks in memory.
type Index struct {
	embedder driven.EmbeddingService

	mu      sync.RWMutex
	courses map[string]domain.Course
	// titleVectors holds one embedding per course title, for fuzzy
	// resolution of partial course names.
	titleVectors map[string][]float32
	chunks       []domain.Chunk
}

// NewIndex creates an empty index. The embedder is used for queries and
// course-title resolution.
func NewIndex(embedder driven.EmbeddingService) *Index {
	return &Index{
		embedder:     embedder,
		courses:      make(map[string]domain.Course),
		titleVectors: make(map[string][]float32),
	}
}

// AddCourse registers course metadata and embeds its title for fuzzy
// resolution.
func (idx *Index) AddCourse(ctx context.Context, course domain.Course) error {
	vector, err := idx.embedder.Embed(ctx, course.Title)
	if err != nil {
		return fmt.Errorf("embedding course title: %w", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.courses[course.Title] = course
	idx.titleVectors[course.Title] = vector
	return nil
}

// AddChunks indexes embedded chunks. Chunks without a vector are rejected.
func (idx *Index) AddChunks(_ context.Context, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrInvalidInput, chunk.ID)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.chunks = append(idx.chunks, chunks...)
	return nil
}

// Search embeds the query and scans the chunk set, honouring filters.
// Results come back ordered by descending score, ties by ascending
// chunk index.
func (idx *Index) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	queryVector, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", domain.ErrIndexUnavailable, err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultMaxResults
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var results []domain.SearchResult
	for _, chunk := range idx.chunks {
		if opts.CourseTitle != "" && chunk.CourseTitle != opts.CourseTitle {
			continue
		}
		if opts.LessonNumber > 0 && chunk.LessonNumber != opts.LessonNumber {
			continue
		}
		results = append(results, domain.SearchResult{
			Chunk: chunk,
			Score: cosineSimilarity(queryVector, chunk.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Index < results[j].Chunk.Index
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ResolveCourseTitle matches a partial course name against the catalog.
// Exact and substring matches win before semantic similarity.
func (idx *Index) ResolveCourseTitle(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: course name must not be empty", domain.ErrInvalidInput)
	}

	if title, ok := idx.lexicalMatch(name); ok {
		return title, nil
	}
	return idx.semanticMatch(ctx, name)
}

// lexicalMatch resolves exact and substring matches, case-insensitively.
// Among several substring hits the shortest title wins as the most
// specific match.
func (idx *Index) lexicalMatch(name string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	best := ""
	for title := range idx.courses {
		lower := strings.ToLower(title)
		if lower == needle {
			return title, true
		}
		if strings.Contains(lower, needle) {
			if best == "" || len(title) < len(best) {
				best = title
			}
		}
	}
	return best, best != ""
}

// semanticMatch resolves by title-embedding similarity.
func (idx *Index) semanticMatch(ctx context.Context, name string) (string, error) {
	vector, err := idx.embedder.Embed(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%w: embedding course name: %w", domain.ErrIndexUnavailable, err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	best, bestScore := "", 0.0
	for title, titleVector := range idx.titleVectors {
		score := cosineSimilarity(vector, titleVector)
		if score > bestScore {
			best, bestScore = title, score
		}
	}
	if best == "" || bestScore < resolveThreshold {
		return "", domain.ErrNotFound
	}
	return best, nil
}

// GetCourse returns catalog metadata for an exact title.
func (idx *Index) GetCourse(_ context.Context, title string) (*domain.Course, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	course, ok := idx.courses[title]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &course, nil
}

// ListCourseTitles returns every indexed course title.
func (idx *Index) ListCourseTitles(_ context.Context) ([]string, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	titles := make([]string, 0, len(idx.courses))
	for title := range idx.courses {
		titles = append(titles, title)
	}
	return titles, nil
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.courses = nil
	idx.titleVectors = nil
	idx.chunks = nil
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
