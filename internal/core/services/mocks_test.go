package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

// chatCall records one LLM dispatch for assertions.
type chatCall struct {
	system   string
	messages []driven.Message
	tools    []driven.ToolDefinition
}

// scriptedLLM replays canned responses in order.
type scriptedLLM struct {
	responses []*driven.ChatResponse
	err       error
	calls     []chatCall
}

func (s *scriptedLLM) Chat(_ context.Context, system string, messages []driven.Message, tools []driven.ToolDefinition, _ driven.ChatOptions) (*driven.ChatResponse, error) {
	s.calls = append(s.calls, chatCall{system: system, messages: messages, tools: tools})
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return &driven.ChatResponse{Content: []driven.ContentBlock{{Type: driven.ContentText, Text: "out of script"}}}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedLLM) ModelName() string            { return "scripted" }
func (s *scriptedLLM) Ping(_ context.Context) error { return nil }
func (s *scriptedLLM) Close() error                 { return nil }

func textResponse(text string) *driven.ChatResponse {
	return &driven.ChatResponse{
		Content:    []driven.ContentBlock{{Type: driven.ContentText, Text: text}},
		StopReason: "end_turn",
	}
}

func toolUseResponse(id, name string, input map[string]any) *driven.ChatResponse {
	raw, _ := json.Marshal(input)
	return &driven.ChatResponse{
		Content: []driven.ContentBlock{
			{Type: driven.ContentToolUse, ID: id, Name: name, Input: raw},
		},
		StopReason: driven.StopToolUse,
	}
}

// stubTool returns fixed output and records its invocations. When
// sourcesSeq is set, each call consumes the next source set instead of
// the fixed one.
type stubTool struct {
	name       string
	text       string
	sources    []domain.Source
	sourcesSeq [][]domain.Source
	err        error
	inputs     []json.RawMessage
}

func (t *stubTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        t.name,
		InputSchema: driven.ToolSchema{Type: "object"},
	}
}

func (t *stubTool) Execute(_ context.Context, input json.RawMessage) (string, []domain.Source, error) {
	t.inputs = append(t.inputs, input)
	if t.err != nil {
		return "", nil, t.err
	}
	if len(t.sourcesSeq) > 0 {
		sources := t.sourcesSeq[0]
		t.sourcesSeq = t.sourcesSeq[1:]
		return t.text, sources, nil
	}
	return t.text, t.sources, nil
}

// memSessions is an unbounded in-memory session store for tests.
type memSessions struct {
	mu       sync.Mutex
	sessions map[string][]domain.Exchange
	err      error
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string][]domain.Exchange)}
}

func (m *memSessions) History(_ context.Context, sessionID string) ([]domain.Exchange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sessions[sessionID], nil
}

func (m *memSessions) Append(_ context.Context, sessionID, query, response string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sessions[sessionID] = append(m.sessions[sessionID], domain.Exchange{Query: query, Response: response})
	return nil
}

func (m *memSessions) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// memIndex is a catalog-only index stub for service tests.
type memIndex struct {
	courses map[string]domain.Course
	chunks  []domain.Chunk
	titles  []string
}

func newMemIndex() *memIndex {
	return &memIndex{courses: make(map[string]domain.Course)}
}

func (m *memIndex) AddCourse(_ context.Context, course domain.Course) error {
	m.courses[course.Title] = course
	return nil
}

func (m *memIndex) AddChunks(_ context.Context, chunks []domain.Chunk) error {
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *memIndex) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *memIndex) ResolveCourseTitle(_ context.Context, name string) (string, error) {
	if _, ok := m.courses[name]; ok {
		return name, nil
	}
	return "", domain.ErrNotFound
}

func (m *memIndex) GetCourse(_ context.Context, title string) (*domain.Course, error) {
	if c, ok := m.courses[title]; ok {
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memIndex) ListCourseTitles(_ context.Context) ([]string, error) {
	if m.titles != nil {
		return m.titles, nil
	}
	titles := make([]string, 0, len(m.courses))
	for title := range m.courses {
		titles = append(titles, title)
	}
	return titles, nil
}

func (m *memIndex) Close() error { return nil }

// memStore is an in-memory CourseStore for ingestion tests.
type memStore struct {
	courses map[string]*domain.Course
	chunks  map[string][]domain.Chunk
}

func newMemStore() *memStore {
	return &memStore{courses: make(map[string]*domain.Course), chunks: make(map[string][]domain.Chunk)}
}

func (m *memStore) SaveCourse(_ context.Context, course *domain.Course) error {
	m.courses[course.Title] = course
	return nil
}

func (m *memStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		m.chunks[chunk.CourseTitle] = append(m.chunks[chunk.CourseTitle], chunk)
	}
	return nil
}

func (m *memStore) GetCourse(_ context.Context, title string) (*domain.Course, error) {
	if c, ok := m.courses[title]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) GetChunks(_ context.Context, courseTitle string) ([]domain.Chunk, error) {
	return m.chunks[courseTitle], nil
}

func (m *memStore) ListCourses(_ context.Context) ([]domain.Course, error) {
	courses := make([]domain.Course, 0, len(m.courses))
	for _, c := range m.courses {
		courses = append(courses, *c)
	}
	return courses, nil
}

func (m *memStore) Close() error { return nil }

// fakeEmbedder returns deterministic vectors keyed by text length.
type fakeEmbedder struct {
	dims  int
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = f.vector(text)
	}
	return vectors, nil
}

func (f *fakeEmbedder) vector(text string) []float32 {
	dims := f.dims
	if dims == 0 {
		dims = 4
	}
	v := make([]float32, dims)
	for i := range v {
		v[i] = float32(len(text)%(i+2)) + 0.5
	}
	return v
}

func (f *fakeEmbedder) Dimensions() int              { return f.dims }
func (f *fakeEmbedder) ModelName() string            { return "fake-embed" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

var errBoom = fmt.Errorf("boom")
