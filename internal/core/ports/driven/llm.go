package driven

import (
	"context"
	"encoding/json"
)

// Message roles and content block types follow the Anthropic messages
// wire format; other adapters translate to their native shapes.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	ContentText       = "text"
	ContentToolUse    = "tool_use"
	ContentToolResult = "tool_result"

	// StopToolUse is the stop reason signalling a tool-invocation
	// request rather than a final answer.
	StopToolUse = "tool_use"
)

// ContentBlock is one piece of a message: assistant text, an assistant
// tool-use request, or a user-side tool result.
type ContentBlock struct {
	// Type is one of ContentText, ContentToolUse, ContentToolResult.
	Type string

	// Text carries ContentText blocks.
	Text string

	// ID identifies a tool-use request so its result can be matched.
	ID string

	// Name is the requested tool for ContentToolUse blocks.
	Name string

	// Input is the raw JSON arguments for ContentToolUse blocks.
	Input json.RawMessage

	// ToolUseID links a ContentToolResult block to its request.
	ToolUseID string

	// Content is the rendered tool result text.
	Content string

	// IsError marks a failed tool execution result.
	IsError bool
}

// Message is a single conversation turn.
type Message struct {
	// Role is RoleUser or RoleAssistant. System instructions are
	// passed separately, not as a message.
	Role string

	// Content is the ordered content blocks of the turn.
	Content []ContentBlock
}

// TextMessage builds a message with a single text block.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: []ContentBlock{{Type: ContentText, Text: text}}}
}

// ToolDefinition declares a callable tool to the language model.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema ToolSchema `json:"input_schema"`
}

// ToolSchema is a JSON-schema object describing tool parameters.
type ToolSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required"`
}

// ToolProperty describes one tool parameter.
type ToolProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ChatOptions configures a chat dispatch.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// ChatResponse is the model's reply to one dispatch.
type ChatResponse struct {
	// Content is the ordered content blocks of the reply.
	Content []ContentBlock

	// StopReason explains why generation stopped; StopToolUse means
	// the reply contains tool-use requests to execute.
	StopReason string
}

// Text concatenates the text blocks of the response.
func (r *ChatResponse) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == ContentText {
			out += block.Text
		}
	}
	return out
}

// ToolUses returns the tool-use request blocks of the response.
func (r *ChatResponse) ToolUses() []ContentBlock {
	var uses []ContentBlock
	for _, block := range r.Content {
		if block.Type == ContentToolUse {
			uses = append(uses, block)
		}
	}
	return uses
}

// LLMService conducts tool-capable conversations with a language model.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - Ollama (local models with tool support)
type LLMService interface {
	// Chat sends the system instructions, conversation turns, and
	// declared tools, and returns the model's reply. A nil or empty
	// tools slice declares no tools for that dispatch.
	Chat(ctx context.Context, system string, messages []Message, tools []ToolDefinition, opts ChatOptions) (*ChatResponse, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
