// Package openai provides an LLM service adapter using the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// LLMConfig holds configuration for the OpenAI LLM service.
type LLMConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the LLM model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides tool-capable chat using the OpenAI chat
// completions API.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// chatRequest is the OpenAI /chat/completions request format.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Tools       []chatTool    `json:"tools,omitempty"`
}

// chatMessage is the OpenAI chat message format.
type chatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// chatTool declares a callable function to the model.
type chatTool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

// toolFunction is the function half of a tool declaration.
type toolFunction struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  driven.ToolSchema `json:"parameters"`
}

// toolCall is one function invocation requested by the model.
// Arguments arrive as a JSON-encoded string.
type toolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// chatResponse is the OpenAI /chat/completions response format.
type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a new OpenAI LLM service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Chat sends one dispatch to /chat/completions and decodes the reply.
func (s *LLMService) Chat(
	ctx context.Context,
	system string,
	messages []driven.Message,
	tools []driven.ToolDefinition,
	opts driven.ChatOptions,
) (*driven.ChatResponse, error) {
	chatMessages := make([]chatMessage, 0, len(messages)+1)
	if system != "" {
		chatMessages = append(chatMessages, chatMessage{Role: "system", Content: system})
	}
	chatMessages = append(chatMessages, toWire(messages)...)

	reqBody := chatRequest{
		Model:    s.model,
		Messages: chatMessages,
		Tools:    toWireTools(tools),
	}
	if opts.MaxTokens > 0 {
		reqBody.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		reqBody.Temperature = opts.Temperature
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	return fromWire(chatResp.Choices[0].Message, chatResp.Choices[0].FinishReason), nil
}

// toWire flattens content-block messages into OpenAI's format. Tool
// results become "tool" role turns keyed by tool_call_id.
func toWire(messages []driven.Message) []chatMessage {
	var out []chatMessage
	for _, msg := range messages {
		var text string
		var calls []toolCall
		var results []chatMessage

		for _, block := range msg.Content {
			switch block.Type {
			case driven.ContentText:
				text += block.Text
			case driven.ContentToolUse:
				call := toolCall{ID: block.ID, Type: "function"}
				call.Function.Name = block.Name
				call.Function.Arguments = string(block.Input)
				calls = append(calls, call)
			case driven.ContentToolResult:
				results = append(results, chatMessage{
					Role:       "tool",
					Content:    block.Content,
					ToolCallID: block.ToolUseID,
				})
			}
		}

		if text != "" || len(calls) > 0 {
			out = append(out, chatMessage{Role: msg.Role, Content: text, ToolCalls: calls})
		}
		out = append(out, results...)
	}
	return out
}

// toWireTools converts tool definitions to OpenAI's function wrapper.
func toWireTools(tools []driven.ToolDefinition) []chatTool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]chatTool, len(tools))
	for i, def := range tools {
		out[i] = chatTool{
			Type: "function",
			Function: toolFunction{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.InputSchema,
			},
		}
	}
	return out
}

// fromWire converts the reply message into port content blocks.
func fromWire(msg chatMessage, finishReason string) *driven.ChatResponse {
	resp := &driven.ChatResponse{}
	if msg.Content != "" {
		resp.Content = append(resp.Content, driven.ContentBlock{
			Type: driven.ContentText,
			Text: msg.Content,
		})
	}
	for _, call := range msg.ToolCalls {
		resp.Content = append(resp.Content, driven.ContentBlock{
			Type:  driven.ContentToolUse,
			ID:    call.ID,
			Name:  call.Function.Name,
			Input: json.RawMessage(call.Function.Arguments),
		})
	}
	if finishReason == "tool_calls" || len(msg.ToolCalls) > 0 {
		resp.StopReason = driven.StopToolUse
	} else {
		resp.StopReason = finishReason
	}
	return resp
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
