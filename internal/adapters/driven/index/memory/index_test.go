package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

// keywordEmbedder maps texts to fixed directions so similarity is
// predictable: each known keyword owns one axis.
type keywordEmbedder struct {
	keywords []string
}

func newKeywordEmbedder(keywords ...string) *keywordEmbedder {
	return &keywordEmbedder{keywords: keywords}
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, len(e.keywords)+1)
	lower := strings.ToLower(text)
	hit := false
	for i, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			v[i] = 1
			hit = true
		}
	}
	if !hit {
		v[len(e.keywords)] = 1
	}
	return v, nil
}

func (e *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t)
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int              { return len(e.keywords) + 1 }
func (e *keywordEmbedder) ModelName() string            { return "keyword" }
func (e *keywordEmbedder) Ping(_ context.Context) error { return nil }
func (e *keywordEmbedder) Close() error                 { return nil }

func chunk(t *testing.T, embedder *keywordEmbedder, course string, lesson, index int, content string) domain.Chunk {
	t.Helper()
	v, err := embedder.Embed(context.Background(), content)
	require.NoError(t, err)
	return domain.Chunk{
		ID:           content,
		CourseTitle:  course,
		LessonNumber: lesson,
		Index:        index,
		Content:      content,
		Embedding:    v,
	}
}

func seededIndex(t *testing.T) (*Index, *keywordEmbedder) {
	t.Helper()
	embedder := newKeywordEmbedder("loops", "maps", "goroutines", "fundamentals", "concurrency")
	idx := NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.AddCourse(ctx, domain.Course{Title: "Go Fundamentals", Link: "https://example.com/go"}))
	require.NoError(t, idx.AddCourse(ctx, domain.Course{Title: "Advanced Concurrency Patterns"}))
	require.NoError(t, idx.AddChunks(ctx, []domain.Chunk{
		chunk(t, embedder, "Go Fundamentals", 1, 0, "loops repeat work"),
		chunk(t, embedder, "Go Fundamentals", 2, 3, "maps hold pairs"),
		chunk(t, embedder, "Advanced Concurrency Patterns", 1, 0, "goroutines run concurrently"),
	}))
	return idx, embedder
}

func TestSearchRanksBySimilarity(t *testing.T) {
	idx, _ := seededIndex(t)

	results, err := idx.Search(context.Background(), "tell me about loops", domain.SearchOptions{Limit: 2})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "loops repeat work", results[0].Chunk.Content)
	assert.Greater(t, results[0].Score, 0.9)
	assert.Len(t, results, 2, "limit is honoured")
}

func TestSearchCourseFilter(t *testing.T) {
	idx, _ := seededIndex(t)

	results, err := idx.Search(context.Background(), "loops", domain.SearchOptions{
		Limit: 5, CourseTitle: "Advanced Concurrency Patterns",
	})
	require.NoError(t, err)
	for _, res := range results {
		assert.Equal(t, "Advanced Concurrency Patterns", res.Chunk.CourseTitle)
	}
}

func TestSearchLessonFilter(t *testing.T) {
	idx, _ := seededIndex(t)

	results, err := idx.Search(context.Background(), "anything", domain.SearchOptions{
		Limit: 5, CourseTitle: "Go Fundamentals", LessonNumber: 2,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Chunk.LessonNumber)
}

func TestSearchTieBreaksOnChunkIndex(t *testing.T) {
	embedder := newKeywordEmbedder("topic")
	idx := NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.AddCourse(ctx, domain.Course{Title: "C"}))
	require.NoError(t, idx.AddChunks(ctx, []domain.Chunk{
		chunk(t, embedder, "C", 1, 5, "topic later"),
		chunk(t, embedder, "C", 1, 1, "topic earlier"),
	}))

	results, err := idx.Search(ctx, "topic", domain.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Chunk.Index)
	assert.Equal(t, 5, results[1].Chunk.Index)
}

func TestAddChunksRejectsMissingEmbedding(t *testing.T) {
	idx := NewIndex(newKeywordEmbedder())
	err := idx.AddChunks(context.Background(), []domain.Chunk{{ID: "x", Content: "no vector"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveCourseTitleExact(t *testing.T) {
	idx, _ := seededIndex(t)

	title, err := idx.ResolveCourseTitle(context.Background(), "go fundamentals")
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", title)
}

func TestResolveCourseTitleSubstring(t *testing.T) {
	idx, _ := seededIndex(t)

	title, err := idx.ResolveCourseTitle(context.Background(), "Concurrency")
	require.NoError(t, err)
	assert.Equal(t, "Advanced Concurrency Patterns", title)
}

func TestResolveCourseTitleNoMatch(t *testing.T) {
	idx, _ := seededIndex(t)

	_, err := idx.ResolveCourseTitle(context.Background(), "Underwater Basket Weaving")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveCourseTitleEmpty(t *testing.T) {
	idx, _ := seededIndex(t)

	_, err := idx.ResolveCourseTitle(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetCourse(t *testing.T) {
	idx, _ := seededIndex(t)

	course, err := idx.GetCourse(context.Background(), "Go Fundamentals")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/go", course.Link)

	_, err = idx.GetCourse(context.Background(), "Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCourseTitles(t *testing.T) {
	idx, _ := seededIndex(t)

	titles, err := idx.ListCourseTitles(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Go Fundamentals", "Advanced Concurrency Patterns"}, titles)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1}), "mismatched lengths")
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}), "zero vector")
}
