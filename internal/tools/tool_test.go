package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDefinitionsSorted(t *testing.T) {
	index := newMockIndex()
	reg := NewRegistry(NewSearchTool(index, 5), NewOutlineTool(index))

	defs := reg.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "get_course_outline", defs[0].Name)
	assert.Equal(t, "search_course_content", defs[1].Name)
}

func TestRegistryUnknownTool(t *testing.T) {
	reg := NewRegistry()

	text, sources, err := reg.Execute(context.Background(), "bogus_tool", nil)
	require.NoError(t, err)
	assert.Equal(t, "Tool 'bogus_tool' not found", text)
	assert.Empty(t, sources)
}

func TestRegistryDispatchesByName(t *testing.T) {
	index := newMockIndex()
	reg := NewRegistry(NewSearchTool(index, 5), NewOutlineTool(index))

	text, _, err := reg.Execute(context.Background(), SearchToolName,
		args(t, map[string]any{"query": "anything"}))
	require.NoError(t, err)
	assert.Equal(t, "No relevant content found.", text)
}
