// Package cli provides the cobra command-line interface for studyhall.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/studyhall-cli/internal/logger"
	"github.com/studyhall-labs/studyhall-cli/internal/tools"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Services injected by main (or lazily through the bootstrap hook).
var (
	assistantService driving.AssistantService
	ingestService    driving.IngestService
	toolRegistry     *tools.Registry
	docsDir          string
)

// Services aggregates everything the commands need.
type Services struct {
	Assistant driving.AssistantService
	Ingest    driving.IngestService
	Registry  *tools.Registry

	// DocsDir is the default transcript folder for the ingest command.
	DocsDir string
}

// Bootstrap builds the services after flags are parsed, so --config-dir
// can influence where configuration is read from.
type Bootstrap func(ctx context.Context, configDir string) (*Services, error)

var bootstrap Bootstrap

// SetBootstrap registers the lazy service constructor. Commands that
// need services call it at most once per process.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices wires the services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	assistantService = s.Assistant
	ingestService = s.Ingest
	toolRegistry = s.Registry
	docsDir = s.DocsDir
}

// ensureServices runs the bootstrap if nothing has been wired yet.
// Commands still nil-check the specific service they use.
func ensureServices(cmd *cobra.Command) error {
	if assistantService != nil || ingestService != nil {
		return nil
	}
	if bootstrap == nil {
		return nil
	}
	svcs, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	SetServices(svcs)
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "studyhall",
	Short: "Ask questions about your course materials",
	Long: `Studyhall ingests course transcripts, indexes them for semantic
search, and answers questions about them with cited sources.

Start by ingesting a folder of transcripts, then ask away:

  studyhall ingest ./docs
  studyhall ask "What is covered in lesson 5 of the MCP course?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.studyhall)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
