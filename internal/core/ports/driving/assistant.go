package driving

import (
	"context"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

// AssistantService answers questions about the ingested course corpus.
type AssistantService interface {
	// Answer runs one full query-answering cycle: compose context,
	// drive the tool-calling loop, record the exchange, and return the
	// final answer with its sources. An empty sessionID starts a fresh
	// session; unknown ids are treated as fresh, not as errors.
	Answer(ctx context.Context, query, sessionID string) (*domain.Answer, error)

	// Analytics reports how many courses are indexed and their titles.
	Analytics(ctx context.Context) (*CourseAnalytics, error)
}

// CourseAnalytics summarises the indexed corpus.
type CourseAnalytics struct {
	// TotalCourses is the number of indexed courses.
	TotalCourses int `json:"total_courses"`

	// CourseTitles lists the indexed course titles.
	CourseTitles []string `json:"course_titles"`
}
