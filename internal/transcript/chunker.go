package transcript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

// sentencePattern matches a sentence-like unit: text up to sentence
// punctuation. Deliberately simple; occasional over-splitting on
// abbreviations is an accepted limitation.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// whitespacePattern collapses runs of whitespace (transcripts are full
// of hard wraps) into single spaces.
var whitespacePattern = regexp.MustCompile(`\s+`)

// Chunker splits course lessons into bounded, overlapping chunks.
// Chunks never break inside a sentence; the configured overlap carries
// trailing sentences of one chunk into the next.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker from validated settings.
func NewChunker(settings domain.ChunkingSettings) (*Chunker, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{
		chunkSize: settings.ChunkSize,
		overlap:   settings.ChunkOverlap,
	}, nil
}

// Chunk produces the ordered chunks for every lesson of a course.
// The chunk index is zero-based and increases monotonically across the
// whole course, so (course title, index) is globally addressable.
// Lessons with empty content produce no chunks.
func (c *Chunker) Chunk(course *domain.Course) []domain.Chunk {
	var chunks []domain.Chunk
	index := 0

	for _, lesson := range course.Lessons {
		for _, content := range c.chunkLesson(course, lesson) {
			chunks = append(chunks, domain.Chunk{
				ID:           uuid.New().String(),
				CourseTitle:  course.Title,
				LessonNumber: lesson.Number,
				Index:        index,
				Content:      content,
			})
			index++
		}
	}

	return chunks
}

// chunkLesson splits one lesson into chunk texts, each prefixed with
// the contextual header. The header counts toward the chunk budget.
func (c *Chunker) chunkLesson(course *domain.Course, lesson domain.Lesson) []string {
	sentences := SplitSentences(lesson.Content)
	if len(sentences) == 0 {
		return nil
	}

	header := contextHeader(course.Title, lesson)
	budget := c.chunkSize - len(header)
	if budget < 1 {
		// A pathological title can eat the whole budget; fall back to
		// the raw size so chunking still advances.
		budget = c.chunkSize
	}

	var texts []string
	start := 0
	for start < len(sentences) {
		end := start
		length := 0
		for end < len(sentences) {
			add := len(sentences[end])
			if length > 0 {
				add++ // joining space
			}
			if length+add > budget {
				break
			}
			length += add
			end++
		}

		// A single sentence above the budget still becomes its own
		// chunk; splitting mid-sentence would cost coherence.
		if end == start {
			end = start + 1
		}

		texts = append(texts, header+strings.Join(sentences[start:end], " "))

		if end >= len(sentences) {
			break
		}
		start = c.overlapStart(sentences, start, end)
	}

	return texts
}

// overlapStart picks where the next chunk begins: the trailing
// sentences of the previous chunk whose combined length is closest to,
// without exceeding, the configured overlap. It always returns an
// index after the previous chunk's start so chunking advances.
func (c *Chunker) overlapStart(sentences []string, prevStart, prevEnd int) int {
	start := prevEnd
	length := 0
	for start > prevStart+1 {
		add := len(sentences[start-1])
		if length > 0 {
			add++
		}
		if length+add > c.overlap {
			break
		}
		length += add
		start--
	}
	return start
}

// SplitSentences splits text into sentence-like units on punctuation
// followed by whitespace or end-of-text. Whitespace runs are collapsed
// first. Text without terminal punctuation becomes one final unit.
func SplitSentences(text string) []string {
	normalized := strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if normalized == "" {
		return nil
	}

	matches := sentencePattern.FindAllStringIndex(normalized, -1)
	var sentences []string
	last := 0
	for _, m := range matches {
		s := strings.TrimSpace(normalized[m[0]:m[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = m[1]
	}
	if rest := strings.TrimSpace(normalized[last:]); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}

// contextHeader renders the provenance prefix stored with each chunk,
// so a chunk retrieved in isolation stays interpretable.
func contextHeader(courseTitle string, lesson domain.Lesson) string {
	switch {
	case lesson.Title != "":
		return fmt.Sprintf("Course %s, Lesson %d (%s): ", courseTitle, lesson.Number, lesson.Title)
	case lesson.Number > 0:
		return fmt.Sprintf("Course %s, Lesson %d: ", courseTitle, lesson.Number)
	default:
		return fmt.Sprintf("Course %s: ", courseTitle)
	}
}
