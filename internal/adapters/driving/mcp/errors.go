// Package mcp provides a Model Context Protocol server adapter for
// studyhall. It exposes the course search and outline tools plus a
// course catalog resource to MCP-compatible AI assistants.
package mcp

import "errors"

// ErrMissingToolRegistry is returned when the tool registry is not provided.
var ErrMissingToolRegistry = errors.New("mcp: tool registry is required")
