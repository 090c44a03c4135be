package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSettings indicates the configuration failed validation.
	// Startup must not proceed when this is returned.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrLLMUnavailable indicates the language model service is not
	// configured or unreachable. Answering is impossible without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Ingestion and search are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexUnavailable indicates the course index is not configured.
	ErrIndexUnavailable = errors.New("course index unavailable")
)
