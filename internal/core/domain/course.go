package domain

import "time"

// Course represents one ingested course transcript.
// It is the canonical unit of source material and is immutable after
// ingestion; the title doubles as its identity key.
type Course struct {
	// Title is the course title and the unique identifier for the course.
	Title string

	// Link is the course homepage URL, if the transcript carried one.
	Link string

	// Instructor is the optional authoring attribution.
	Instructor string

	// Lessons is the ordered sequence of lessons in the course.
	Lessons []Lesson

	// CreatedAt is when the course was first ingested.
	CreatedAt time.Time
}

// Lesson is a single lesson within a course.
type Lesson struct {
	// Number is the lesson sequence number as written in the transcript.
	Number int

	// Title is the lesson title.
	Title string

	// Link is the lesson URL, if the transcript carried one.
	Link string

	// Content is the raw lesson transcript text.
	// It is consumed by the chunker and not stored on the index.
	Content string
}

// LessonLink returns the link for the given lesson number,
// or "" when the lesson is unknown or has no link.
func (c *Course) LessonLink(number int) string {
	for i := range c.Lessons {
		if c.Lessons[i].Number == number {
			return c.Lessons[i].Link
		}
	}
	return ""
}

// Chunk is the unit of retrieval: a bounded span of lesson text with
// its provenance. Chunks are write-once into the course index.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// CourseTitle is the owning course.
	CourseTitle string

	// LessonNumber is the owning lesson's sequence number.
	LessonNumber int

	// Index is the zero-based position of this chunk within the course.
	// It increases monotonically across lessons, so (CourseTitle, Index)
	// is globally addressable.
	Index int

	// Content is the chunk text, including the contextual header.
	Content string

	// Embedding is the vector representation for semantic search.
	Embedding []float32
}
