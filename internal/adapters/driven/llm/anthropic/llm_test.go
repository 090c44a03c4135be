package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*LLMService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return svc, server
}

func TestNewLLMServiceRequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)
}

func TestNewLLMServiceDefaults(t *testing.T) {
	svc, err := NewLLMService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestChatTextResponse(t *testing.T) {
	var captured map[string]any
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "Hello there."}],
			"stop_reason": "end_turn"
		}`))
	})

	tools := []driven.ToolDefinition{{
		Name:        "search_course_content",
		Description: "search",
		InputSchema: driven.ToolSchema{
			Type:       "object",
			Properties: map[string]driven.ToolProperty{"query": {Type: "string"}},
			Required:   []string{"query"},
		},
	}}

	resp, err := svc.Chat(context.Background(),
		"be helpful",
		[]driven.Message{driven.TextMessage(driven.RoleUser, "hi")},
		tools,
		driven.ChatOptions{MaxTokens: 800})
	require.NoError(t, err)

	assert.Equal(t, "Hello there.", resp.Text())
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Empty(t, resp.ToolUses())

	assert.Equal(t, "be helpful", captured["system"])
	assert.Equal(t, float64(800), captured["max_tokens"])

	declared, ok := captured["tools"].([]any)
	require.True(t, ok)
	require.Len(t, declared, 1)
	tool := declared[0].(map[string]any)
	assert.Equal(t, "search_course_content", tool["name"])
	schema := tool["input_schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
}

func TestChatToolUseResponse(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [
				{"type": "text", "text": "Let me search."},
				{"type": "tool_use", "id": "toolu_01", "name": "search_course_content",
				 "input": {"query": "variables"}}
			],
			"stop_reason": "tool_use"
		}`))
	})

	resp, err := svc.Chat(context.Background(), "", []driven.Message{
		driven.TextMessage(driven.RoleUser, "what are variables?"),
	}, nil, driven.ChatOptions{})
	require.NoError(t, err)

	assert.Equal(t, driven.StopToolUse, resp.StopReason)
	uses := resp.ToolUses()
	require.Len(t, uses, 1)
	assert.Equal(t, "toolu_01", uses[0].ID)
	assert.Equal(t, "search_course_content", uses[0].Name)
	assert.JSONEq(t, `{"query": "variables"}`, string(uses[0].Input))
}

func TestChatSerializesToolResultTurns(t *testing.T) {
	var captured struct {
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Type      string `json:"type"`
				ToolUseID string `json:"tool_use_id"`
				Content   string `json:"content"`
				IsError   bool   `json:"is_error"`
			} `json:"content"`
		} `json:"messages"`
	}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "done"}], "stop_reason": "end_turn"}`))
	})

	messages := []driven.Message{
		driven.TextMessage(driven.RoleUser, "q"),
		{Role: driven.RoleAssistant, Content: []driven.ContentBlock{
			{Type: driven.ContentToolUse, ID: "toolu_01", Name: "search_course_content",
				Input: json.RawMessage(`{"query":"x"}`)},
		}},
		{Role: driven.RoleUser, Content: []driven.ContentBlock{
			{Type: driven.ContentToolResult, ToolUseID: "toolu_01", Content: "results here"},
		}},
	}

	_, err := svc.Chat(context.Background(), "", messages, nil, driven.ChatOptions{})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 3)
	result := captured.Messages[2].Content[0]
	assert.Equal(t, "tool_result", result.Type)
	assert.Equal(t, "toolu_01", result.ToolUseID)
	assert.Equal(t, "results here", result.Content)
	assert.False(t, result.IsError)
}

func TestChatAPIError(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	})

	_, err := svc.Chat(context.Background(), "", []driven.Message{
		driven.TextMessage(driven.RoleUser, "hi"),
	}, nil, driven.ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestPing(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestPingFailure(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	assert.Error(t, svc.Ping(context.Background()))
}
