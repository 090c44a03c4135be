package cli

import (
	"context"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
)

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer    *domain.Answer
	analytics *driving.CourseAnalytics
	err       error

	queries  []string
	sessions []string
}

func (m *mockAssistantService) Answer(_ context.Context, query, sessionID string) (*domain.Answer, error) {
	m.queries = append(m.queries, query)
	m.sessions = append(m.sessions, sessionID)
	return m.answer, m.err
}

func (m *mockAssistantService) Analytics(_ context.Context) (*driving.CourseAnalytics, error) {
	return m.analytics, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	fileTitle  string
	fileChunks int
	courses    int
	chunks     int
	err        error

	paths []string
}

func (m *mockIngestService) IngestFile(_ context.Context, path string) (string, int, error) {
	m.paths = append(m.paths, path)
	return m.fileTitle, m.fileChunks, m.err
}

func (m *mockIngestService) IngestFolder(_ context.Context, dir string) (int, int, error) {
	m.paths = append(m.paths, dir)
	return m.courses, m.chunks, m.err
}

// setupTestServices wires mock services and returns a cleanup that
// restores the previous wiring and flag state.
func setupTestServices() (assistant *mockAssistantService, ingest *mockIngestService, cleanup func()) {
	oldAssistant := assistantService
	oldIngest := ingestService
	oldDocsDir := docsDir

	assistant = &mockAssistantService{
		answer: &domain.Answer{
			Text:      "Python is a programming language.",
			SessionID: "session-1",
		},
		analytics: &driving.CourseAnalytics{
			TotalCourses: 2,
			CourseTitles: []string{"Go Fundamentals", "Python Basics"},
		},
	}
	ingest = &mockIngestService{
		fileTitle:  "Go Fundamentals",
		fileChunks: 12,
		courses:    2,
		chunks:     40,
	}

	assistantService = assistant
	ingestService = ingest

	return assistant, ingest, func() {
		assistantService = oldAssistant
		ingestService = oldIngest
		docsDir = oldDocsDir
		askSessionID = ""
		ingestWatch = false
	}
}
