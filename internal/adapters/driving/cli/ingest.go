package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyhall-labs/studyhall-cli/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest course transcripts",
	Long: `Ingest a transcript file or a folder of transcripts into the index.
Without an argument the configured docs folder is used. Courses whose
title is already indexed are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

// ingestWatch is a flag for the ingest command.
var ingestWatch bool

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "Keep watching the folder for new transcripts")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := docsDir
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no path given and no docs folder configured")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	ctx := cmd.Context()

	if !info.IsDir() {
		title, chunks, err := ingestService.IngestFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		if chunks == 0 {
			cmd.Printf("Course %q already indexed.\n", title)
			return nil
		}
		cmd.Printf("Ingested %q (%d chunks).\n", title, chunks)
		return nil
	}

	courses, chunks, err := ingestService.IngestFolder(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	cmd.Printf("Ingested %s courses (%d chunks).\n", countStyle.Render(fmt.Sprint(courses)), chunks)

	if !ingestWatch {
		return nil
	}

	cmd.Printf("Watching %s for new transcripts. Press Ctrl+C to stop.\n", path)
	watcher := ingest.NewWatcher(ingestService, path)
	return watcher.Run(ctx)
}
