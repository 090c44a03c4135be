package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  domain.LLMSettings
		wantErr   bool
		wantModel string
	}{
		{
			name:      "anthropic provider",
			settings:  domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantModel: "claude-sonnet-4-20250514",
		},
		{
			name:      "openai provider",
			settings:  domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"},
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "ollama provider",
			settings:  domain.LLMSettings{Provider: domain.AIProviderOllama},
			wantModel: "llama3.2",
		},
		{
			name:     "anthropic without key",
			settings: domain.LLMSettings{Provider: domain.AIProviderAnthropic},
			wantErr:  true,
		},
		{
			name:     "unknown provider",
			settings: domain.LLMSettings{Provider: "bedrock"},
			wantErr:  true,
		},
		{
			name:      "model override",
			settings:  domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "qwen2.5"},
			wantModel: "qwen2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.EmbeddingSettings
		wantErr  string
	}{
		{
			name:     "ollama provider",
			settings: domain.EmbeddingSettings{Provider: domain.AIProviderOllama},
		},
		{
			name:     "openai provider",
			settings: domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"},
		},
		{
			name:     "anthropic has no embedding API",
			settings: domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantErr:  "does not support embeddings",
		},
		{
			name:     "unknown provider",
			settings: domain.EmbeddingSettings{Provider: "voyage"},
			wantErr:  "unsupported embedding provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrInvalidSettings)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}
