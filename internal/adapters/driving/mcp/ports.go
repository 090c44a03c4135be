package mcp

import (
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/studyhall-cli/internal/tools"
)

// Ports aggregates everything the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Tools dispatches the course content tools.
	Tools *tools.Registry

	// Assistant backs the course catalog resource.
	Assistant driving.AssistantService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Tools == nil {
		return ErrMissingToolRegistry
	}
	// Assistant is optional; without it the catalog resource is empty.
	return nil
}
