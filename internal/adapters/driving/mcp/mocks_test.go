package mcp

import (
	"context"
	"encoding/json"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
)

// stubTool is a scripted tools.Tool implementation.
type stubTool struct {
	name    string
	text    string
	sources []domain.Source
	err     error

	inputs []json.RawMessage
}

func (s *stubTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{Name: s.name}
}

func (s *stubTool) Execute(_ context.Context, input json.RawMessage) (string, []domain.Source, error) {
	s.inputs = append(s.inputs, input)
	return s.text, s.sources, s.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	analytics *driving.CourseAnalytics
	err       error
}

func (m *mockAssistantService) Answer(_ context.Context, _, _ string) (*domain.Answer, error) {
	return nil, m.err
}

func (m *mockAssistantService) Analytics(_ context.Context) (*driving.CourseAnalytics, error) {
	return m.analytics, m.err
}
