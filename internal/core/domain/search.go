package domain

// SearchOptions configures a similarity query against the course index.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// CourseTitle filters results to a single course.
	// It must already be resolved to an exact indexed title.
	CourseTitle string

	// LessonNumber filters results to a single lesson when > 0.
	LessonNumber int
}

// SearchResult is a single similarity hit. Results are ephemeral:
// produced per query, never persisted.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the similarity score (higher is more similar).
	Score float64
}

// Source is a citation for content used in an answer.
type Source struct {
	// Label names the provenance, e.g. "Python Basics - Lesson 1".
	Label string

	// Link is the lesson or course URL when one is known.
	Link string
}

// Answer is the outcome of one query-answering cycle.
type Answer struct {
	// Text is the assistant's final response.
	Text string

	// Sources lists the citations for the answer in provenance order.
	Sources []Source

	// SessionID identifies the conversation the exchange was appended to.
	SessionID string
}
