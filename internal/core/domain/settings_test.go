package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkingSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       ChunkingSettings
		wantErr bool
	}{
		{"valid", ChunkingSettings{ChunkSize: 800, ChunkOverlap: 100}, false},
		{"zero overlap", ChunkingSettings{ChunkSize: 800, ChunkOverlap: 0}, false},
		{"zero size", ChunkingSettings{ChunkSize: 0, ChunkOverlap: 0}, true},
		{"negative overlap", ChunkingSettings{ChunkSize: 800, ChunkOverlap: -1}, true},
		{"overlap equals size", ChunkingSettings{ChunkSize: 100, ChunkOverlap: 100}, true},
		{"overlap exceeds size", ChunkingSettings{ChunkSize: 100, ChunkOverlap: 150}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLLMSettingsValidate(t *testing.T) {
	err := LLMSettings{Provider: AIProviderAnthropic}.Validate()
	require.Error(t, err, "cloud provider without API key must fail")
	assert.ErrorIs(t, err, ErrInvalidSettings)

	assert.NoError(t, LLMSettings{Provider: AIProviderAnthropic, APIKey: "sk-test"}.Validate())
	assert.NoError(t, LLMSettings{Provider: AIProviderOllama}.Validate())
	assert.Error(t, LLMSettings{Provider: "mystery"}.Validate())
}

func TestEmbeddingSettingsValidate(t *testing.T) {
	assert.NoError(t, EmbeddingSettings{Provider: AIProviderOllama}.Validate())
	assert.NoError(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}.Validate())
	assert.Error(t, EmbeddingSettings{Provider: AIProviderOpenAI}.Validate())
	assert.Error(t, EmbeddingSettings{Provider: AIProviderAnthropic, APIKey: "sk-test"}.Validate())
}

func TestDefaultSettingsAreInvalidWithoutKey(t *testing.T) {
	// Defaults select anthropic, which needs a key from the environment.
	s := DefaultSettings()
	require.Error(t, s.Validate())

	s.LLM.APIKey = "sk-test"
	assert.NoError(t, s.Validate())
}

func TestCitationModeIsValid(t *testing.T) {
	assert.True(t, CitationModeLast.IsValid())
	assert.True(t, CitationModeMerge.IsValid())
	assert.False(t, CitationMode("all").IsValid())
}
