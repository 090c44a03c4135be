// Package ollama provides an LLM service adapter using Ollama.
package ollama

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
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig holds configuration for the Ollama LLM service.
type LLMConfig struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the LLM model to use (default: llama3.2).
	// Tool calling requires a tool-capable model.
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides tool-capable chat using the Ollama chat API.
type LLMService struct {
	client  *http.Client
	baseURL string
	model   string
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Tools    []chatTool    `json:"tools,omitempty"`
	Options  *options      `json:"options,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
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
type toolCall struct {
	Function struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"function"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// NewLLMService creates a new Ollama LLM service.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Chat sends one dispatch to /api/chat and decodes the reply. Tool-use
// requests come back with synthesized ids since Ollama does not assign
// any; results are matched positionally within one round.
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
		Stream:   false,
		Tools:    toWireTools(tools),
	}
	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		reqBody.Options = &options{
			NumPredict:  opts.MaxTokens,
			Temperature: opts.Temperature,
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/chat",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return fromWire(chatResp.Message), nil
}

// toWire flattens content-block messages into Ollama's flat format.
// Tool results become "tool" role turns.
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
				call := toolCall{}
				call.Function.Name = block.Name
				call.Function.Arguments = block.Input
				calls = append(calls, call)
			case driven.ContentToolResult:
				results = append(results, chatMessage{Role: "tool", Content: block.Content})
			}
		}

		if text != "" || len(calls) > 0 {
			out = append(out, chatMessage{Role: msg.Role, Content: text, ToolCalls: calls})
		}
		out = append(out, results...)
	}
	return out
}

// toWireTools converts tool definitions to Ollama's function wrapper.
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
func fromWire(msg chatMessage) *driven.ChatResponse {
	resp := &driven.ChatResponse{}
	if msg.Content != "" {
		resp.Content = append(resp.Content, driven.ContentBlock{
			Type: driven.ContentText,
			Text: msg.Content,
		})
	}
	for i, call := range msg.ToolCalls {
		resp.Content = append(resp.Content, driven.ContentBlock{
			Type:  driven.ContentToolUse,
			ID:    fmt.Sprintf("call_%d", i),
			Name:  call.Function.Name,
			Input: call.Function.Arguments,
		})
	}
	if len(msg.ToolCalls) > 0 {
		resp.StopReason = driven.StopToolUse
	} else {
		resp.StopReason = "stop"
	}
	return resp
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
