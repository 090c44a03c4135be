// Package ingest provides a filesystem watcher that feeds new
// transcripts into the ingestion pipeline while the process runs.
package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/studyhall-cli/internal/logger"
)

// settleDelay is how long a file must be quiet before ingestion; copies
// into the docs folder arrive as bursts of write events.
const settleDelay = 500 * time.Millisecond

// Watcher ingests transcripts dropped into the docs folder at runtime.
type Watcher struct {
	service driving.IngestService
	dir     string
}

// NewWatcher creates a watcher over dir.
func NewWatcher(service driving.IngestService, dir string) *Watcher {
	return &Watcher{service: service, dir: dir}
}

// Run watches until the context is cancelled. Events for non-transcript
// files are ignored; ingestion failures are logged, never fatal.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	logger.Debug("Watching %s for new transcripts", w.dir)

	// pending tracks paths awaiting their settle deadline.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".txt") {
				continue
			}
			pending[event.Name] = time.Now().Add(settleDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, deadline := range pending {
				if now.Before(deadline) {
					continue
				}
				delete(pending, path)

				title, chunks, err := w.service.IngestFile(ctx, path)
				if err != nil {
					logger.Warn("Ingesting %s: %v", filepath.Base(path), err)
					continue
				}
				if chunks > 0 {
					logger.Info("Ingested %q (%d chunks)", title, chunks)
				}
			}
		}
	}
}
