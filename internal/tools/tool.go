// Package tools defines the operations the language model may invoke
// during an answering cycle, and the registry that dispatches them.
//
// Tools return rendered text (the model consumes text, never raw
// structures) alongside the structured source list for the citations
// the caller reports. Sources are an explicit return value: tools hold
// no per-invocation state.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

// Tool is a single operation callable by the language model.
type Tool interface {
	// Definition returns the schema declared to the model.
	Definition() driven.ToolDefinition

	// Execute runs the tool with raw JSON arguments. The returned text
	// is what the model reads; sources carry the provenance of any
	// content the text was built from. A nil source slice means the
	// call contributes no citations; a non-nil empty slice is an
	// authoritative empty set (a search that ran and matched nothing),
	// which callers tracking the latest citations must honour. An
	// error marks infrastructure failure, not a "no results" outcome.
	Execute(ctx context.Context, input json.RawMessage) (string, []domain.Source, error)
}

// Registry holds the available tools by name.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry with the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Definition().Name] = t
	}
	return r
}

// Definitions returns every tool schema, ordered by name so the
// serialized declaration is stable across dispatches.
func (r *Registry) Definitions() []driven.ToolDefinition {
	defs := make([]driven.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Execute dispatches a tool call by name. An unknown tool name yields
// explanatory text for the model rather than an error.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) (string, []domain.Source, error) {
	tool, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Tool '%s' not found", name), nil, nil
	}
	return tool.Execute(ctx, input)
}
