package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/studyhall-labs/studyhall-cli/internal/adapters/driven/ai"
	configfile "github.com/studyhall-labs/studyhall-cli/internal/adapters/driven/config/file"
	indexmemory "github.com/studyhall-labs/studyhall-cli/internal/adapters/driven/index/memory"
	storagememory "github.com/studyhall-labs/studyhall-cli/internal/adapters/driven/storage/memory"
	"github.com/studyhall-labs/studyhall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/studyhall-labs/studyhall-cli/internal/adapters/driving/cli"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/studyhall-cli/internal/core/services"
	"github.com/studyhall-labs/studyhall-cli/internal/logger"
	"github.com/studyhall-labs/studyhall-cli/internal/tools"
	"github.com/studyhall-labs/studyhall-cli/internal/transcript"
)

func main() {
	// A local .env is optional; the environment always wins.
	_ = godotenv.Load()

	cli.SetBootstrap(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices assembles the application from configuration. It runs
// lazily, after flag parsing, for the first command that needs it.
func buildServices(ctx context.Context, configDir string) (*cli.Services, error) {
	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}

	settings, err := configStore.Load()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(settings.Embedding)
	if err != nil {
		return nil, err
	}
	llm, err := ai.CreateAndValidateLLMService(settings.LLM)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, fmt.Errorf("opening course store: %w", err)
	}

	index := indexmemory.NewIndex(embedder)
	if err := warmIndex(ctx, store, index); err != nil {
		return nil, fmt.Errorf("warming course index: %w", err)
	}

	chunker, err := transcript.NewChunker(settings.Chunking)
	if err != nil {
		return nil, err
	}

	sessions := storagememory.NewSessionStore(settings.Chat.MaxHistory)
	registry := tools.NewRegistry(
		tools.NewSearchTool(index, settings.Chat.MaxResults),
		tools.NewOutlineTool(index),
	)

	ingester := services.NewIngester(chunker, embedder, store, index)

	// Ingestion runs before any query is accepted. Already-indexed
	// courses are skipped, so repeat startups are cheap.
	if info, err := os.Stat(settings.DocsDir); err == nil && info.IsDir() {
		courses, chunks, err := ingester.IngestFolder(ctx, settings.DocsDir)
		if err != nil {
			return nil, fmt.Errorf("ingesting %s: %w", settings.DocsDir, err)
		}
		if courses > 0 {
			logger.Info("Ingested %d courses (%d chunks) from %s", courses, chunks, settings.DocsDir)
		}
	}

	return &cli.Services{
		Assistant: services.NewAssistant(llm, index, sessions, registry, settings.Chat),
		Ingest:    ingester,
		Registry:  registry,
		DocsDir:   settings.DocsDir,
	}, nil
}

// warmIndex rebuilds the in-memory index from the persisted corpus, so
// previously ingested courses are searchable without re-embedding.
func warmIndex(ctx context.Context, store driven.CourseStore, index driven.CourseIndex) error {
	courses, err := store.ListCourses(ctx)
	if err != nil {
		return err
	}

	total := 0
	for i := range courses {
		if err := index.AddCourse(ctx, courses[i]); err != nil {
			return err
		}
		chunks, err := store.GetChunks(ctx, courses[i].Title)
		if err != nil {
			return err
		}
		if len(chunks) == 0 {
			continue
		}
		if err := index.AddChunks(ctx, chunks); err != nil {
			return err
		}
		total += len(chunks)
	}

	if len(courses) > 0 {
		logger.Info("Restored %d courses (%d chunks) from store", len(courses), total)
	}
	return nil
}
