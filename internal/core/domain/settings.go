package domain

import "fmt"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// CitationMode controls how sources from multiple tool calls within one
// answering cycle are combined.
type CitationMode string

// Available citation modes.
const (
	// CitationModeLast keeps only the most recent tool call's sources.
	CitationModeLast CitationMode = "last"

	// CitationModeMerge keeps sources from every tool call,
	// deduplicated by label in first-seen order.
	CitationModeMerge CitationMode = "merge"
)

// IsValid returns true if the citation mode is recognised.
func (m CitationMode) IsValid() bool {
	return m == CitationModeLast || m == CitationModeMerge
}

// Default settings values.
const (
	DefaultChunkSize     = 800
	DefaultChunkOverlap  = 100
	DefaultMaxResults    = 5
	DefaultMaxHistory    = 2
	DefaultMaxToolRounds = 2
)

// ChunkingSettings holds transcript chunking configuration.
type ChunkingSettings struct {
	// ChunkSize is the maximum chunk length in characters,
	// including the contextual header.
	ChunkSize int

	// ChunkOverlap is the target character overlap between adjacent
	// chunks of the same lesson. Must be strictly less than ChunkSize.
	ChunkOverlap int
}

// Validate checks the chunking settings for internal consistency.
func (s ChunkingSettings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidSettings, s.ChunkSize)
	}
	if s.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", ErrInvalidSettings, s.ChunkOverlap)
	}
	// Overlap equal to or above the chunk size would never advance.
	if s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("%w: chunk overlap (%d) must be less than chunk size (%d)",
			ErrInvalidSettings, s.ChunkOverlap, s.ChunkSize)
	}
	return nil
}

// LLMSettings holds language model provider configuration.
type LLMSettings struct {
	// Provider selects the LLM backend.
	Provider AIProvider

	// Model is the model name; empty selects the adapter default.
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// BaseURL overrides the provider endpoint (mainly for Ollama).
	BaseURL string
}

// Validate checks the LLM settings.
func (s LLMSettings) Validate() error {
	if !s.Provider.IsValid() {
		return fmt.Errorf("%w: unknown LLM provider %q", ErrInvalidSettings, s.Provider)
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return fmt.Errorf("%w: %s LLM provider requires an API key", ErrInvalidSettings, s.Provider)
	}
	return nil
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider AIProvider

	// Model is the model name; empty selects the adapter default.
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// BaseURL overrides the provider endpoint (mainly for Ollama).
	BaseURL string
}

// Validate checks the embedding settings.
func (s EmbeddingSettings) Validate() error {
	if !s.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidSettings, s.Provider)
	}
	if s.Provider == AIProviderAnthropic {
		return fmt.Errorf("%w: anthropic does not offer an embedding API", ErrInvalidSettings)
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return fmt.Errorf("%w: %s embedding provider requires an API key", ErrInvalidSettings, s.Provider)
	}
	return nil
}

// ChatSettings holds answering loop configuration.
type ChatSettings struct {
	// MaxResults is the similarity query result cap per search.
	MaxResults int

	// MaxHistory is the number of exchanges retained per session.
	MaxHistory int

	// MaxToolRounds bounds the tool-calling loop per query.
	MaxToolRounds int

	// Citations selects how multi-call sources are combined.
	Citations CitationMode
}

// Validate checks the chat settings.
func (s ChatSettings) Validate() error {
	if s.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive, got %d", ErrInvalidSettings, s.MaxResults)
	}
	if s.MaxHistory < 0 {
		return fmt.Errorf("%w: max history must not be negative, got %d", ErrInvalidSettings, s.MaxHistory)
	}
	if s.MaxToolRounds <= 0 {
		return fmt.Errorf("%w: max tool rounds must be positive, got %d", ErrInvalidSettings, s.MaxToolRounds)
	}
	if !s.Citations.IsValid() {
		return fmt.Errorf("%w: unknown citation mode %q", ErrInvalidSettings, s.Citations)
	}
	return nil
}

// Settings aggregates all runtime configuration.
type Settings struct {
	// DocsDir is the transcript folder ingested at startup.
	DocsDir string

	Chunking  ChunkingSettings
	LLM       LLMSettings
	Embedding EmbeddingSettings
	Chat      ChatSettings
}

// Validate checks every settings section. Any failure is fatal at
// startup; the process must not begin serving.
func (s Settings) Validate() error {
	if err := s.Chunking.Validate(); err != nil {
		return err
	}
	if err := s.LLM.Validate(); err != nil {
		return err
	}
	if err := s.Embedding.Validate(); err != nil {
		return err
	}
	return s.Chat.Validate()
}

// DefaultSettings returns the settings used when no configuration exists.
func DefaultSettings() Settings {
	return Settings{
		DocsDir: "docs",
		Chunking: ChunkingSettings{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
		LLM: LLMSettings{
			Provider: AIProviderAnthropic,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
		},
		Chat: ChatSettings{
			MaxResults:    DefaultMaxResults,
			MaxHistory:    DefaultMaxHistory,
			MaxToolRounds: DefaultMaxToolRounds,
			Citations:     CitationModeLast,
		},
	}
}
