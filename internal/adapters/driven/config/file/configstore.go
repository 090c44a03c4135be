// Package file provides TOML-backed configuration loading.
//
// Configuration lives in config.toml inside the studyhall config
// directory (~/.studyhall by default). Missing files yield defaults;
// API keys can always be supplied through the environment instead of
// the file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

// Environment variables that override file values.
const (
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvDocsDir         = "STUDYHALL_DOCS_DIR"
)

// fileConfig mirrors the TOML layout of config.toml.
type fileConfig struct {
	DocsDir string `toml:"docs_dir,omitempty"`

	Chunking struct {
		ChunkSize    int `toml:"chunk_size,omitempty"`
		ChunkOverlap int `toml:"chunk_overlap,omitempty"`
	} `toml:"chunking,omitempty"`

	LLM struct {
		Provider string `toml:"provider,omitempty"`
		Model    string `toml:"model,omitempty"`
		APIKey   string `toml:"api_key,omitempty"`
		BaseURL  string `toml:"base_url,omitempty"`
	} `toml:"llm,omitempty"`

	Embedding struct {
		Provider string `toml:"provider,omitempty"`
		Model    string `toml:"model,omitempty"`
		APIKey   string `toml:"api_key,omitempty"`
		BaseURL  string `toml:"base_url,omitempty"`
	} `toml:"embedding,omitempty"`

	Chat struct {
		MaxResults    int    `toml:"max_results,omitempty"`
		MaxHistory    int    `toml:"max_history,omitempty"`
		MaxToolRounds int    `toml:"max_tool_rounds,omitempty"`
		Citations     string `toml:"citations,omitempty"`
	} `toml:"chat,omitempty"`
}

// ConfigStore loads and saves runtime settings.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.studyhall.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".studyhall")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads settings from the config file, layering file values over
// defaults and environment overrides over both. A missing file is not
// an error.
func (s *ConfigStore) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return settings, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		var cfg fileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return settings, fmt.Errorf("parsing %s: %w", s.filePath, err)
		}
		applyFile(&settings, cfg)
	}

	applyEnv(&settings)
	return settings, nil
}

// Save writes settings to the config file. API keys are never written;
// they stay in the environment.
func (s *ConfigStore) Save(settings domain.Settings) error {
	var cfg fileConfig
	cfg.DocsDir = settings.DocsDir
	cfg.Chunking.ChunkSize = settings.Chunking.ChunkSize
	cfg.Chunking.ChunkOverlap = settings.Chunking.ChunkOverlap
	cfg.LLM.Provider = settings.LLM.Provider.String()
	cfg.LLM.Model = settings.LLM.Model
	cfg.LLM.BaseURL = settings.LLM.BaseURL
	cfg.Embedding.Provider = settings.Embedding.Provider.String()
	cfg.Embedding.Model = settings.Embedding.Model
	cfg.Embedding.BaseURL = settings.Embedding.BaseURL
	cfg.Chat.MaxResults = settings.Chat.MaxResults
	cfg.Chat.MaxHistory = settings.Chat.MaxHistory
	cfg.Chat.MaxToolRounds = settings.Chat.MaxToolRounds
	cfg.Chat.Citations = string(settings.Chat.Citations)

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// applyFile overlays non-zero file values onto settings.
func applyFile(settings *domain.Settings, cfg fileConfig) {
	if cfg.DocsDir != "" {
		settings.DocsDir = cfg.DocsDir
	}
	if cfg.Chunking.ChunkSize > 0 {
		settings.Chunking.ChunkSize = cfg.Chunking.ChunkSize
	}
	if cfg.Chunking.ChunkOverlap > 0 {
		settings.Chunking.ChunkOverlap = cfg.Chunking.ChunkOverlap
	}
	if cfg.LLM.Provider != "" {
		settings.LLM.Provider = domain.AIProvider(cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "" {
		settings.LLM.Model = cfg.LLM.Model
	}
	if cfg.LLM.APIKey != "" {
		settings.LLM.APIKey = cfg.LLM.APIKey
	}
	if cfg.LLM.BaseURL != "" {
		settings.LLM.BaseURL = cfg.LLM.BaseURL
	}
	if cfg.Embedding.Provider != "" {
		settings.Embedding.Provider = domain.AIProvider(cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "" {
		settings.Embedding.Model = cfg.Embedding.Model
	}
	if cfg.Embedding.APIKey != "" {
		settings.Embedding.APIKey = cfg.Embedding.APIKey
	}
	if cfg.Embedding.BaseURL != "" {
		settings.Embedding.BaseURL = cfg.Embedding.BaseURL
	}
	if cfg.Chat.MaxResults > 0 {
		settings.Chat.MaxResults = cfg.Chat.MaxResults
	}
	if cfg.Chat.MaxHistory > 0 {
		settings.Chat.MaxHistory = cfg.Chat.MaxHistory
	}
	if cfg.Chat.MaxToolRounds > 0 {
		settings.Chat.MaxToolRounds = cfg.Chat.MaxToolRounds
	}
	if cfg.Chat.Citations != "" {
		settings.Chat.Citations = domain.CitationMode(cfg.Chat.Citations)
	}
}

// applyEnv overlays environment values onto settings. Provider API keys
// are filled from the conventional variables when absent.
func applyEnv(settings *domain.Settings) {
	if dir := os.Getenv(EnvDocsDir); dir != "" {
		settings.DocsDir = dir
	}
	if key := os.Getenv(EnvAnthropicAPIKey); key != "" && settings.LLM.Provider == domain.AIProviderAnthropic {
		settings.LLM.APIKey = key
	}
	if key := os.Getenv(EnvOpenAIAPIKey); key != "" {
		if settings.LLM.Provider == domain.AIProviderOpenAI {
			settings.LLM.APIKey = key
		}
		if settings.Embedding.Provider == domain.AIProviderOpenAI {
			settings.Embedding.APIKey = key
		}
	}
}
