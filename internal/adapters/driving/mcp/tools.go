package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the course content search tool.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"what to search for in the course content"`
	CourseTitle  string `json:"course_title,omitempty" jsonschema:"course title to search within (partial matches allowed)"`
	LessonNumber int    `json:"lesson_number,omitempty" jsonschema:"specific lesson number to search within"`
}

// OutlineInput is the input schema for the course outline tool.
type OutlineInput struct {
	CourseTitle string `json:"course_title" jsonschema:"course title to get the outline for (partial matches allowed)"`
}

// ToolOutput is the shared output schema for both tools.
type ToolOutput struct {
	Text    string         `json:"text"`
	Sources []SourceOutput `json:"sources,omitempty"`
}

// SourceOutput is a single citation.
type SourceOutput struct {
	Label string `json:"label"`
	Link  string `json:"link,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_course_content",
		Description: "Search course materials with optional course and lesson filters",
	}, s.handleSearchCourseContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_course_outline",
		Description: "Get the full lesson list of a course",
	}, s.handleGetCourseOutline)
}

// handleSearchCourseContent handles the content search tool invocation.
func (s *Server) handleSearchCourseContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	return s.dispatch(ctx, "search_course_content", input)
}

// handleGetCourseOutline handles the outline tool invocation.
func (s *Server) handleGetCourseOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OutlineInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	return s.dispatch(ctx, "get_course_outline", input)
}

// dispatch runs a registry tool and converts its outcome to the MCP
// output schema.
func (s *Server) dispatch(ctx context.Context, name string, input any) (*mcp.CallToolResult, ToolOutput, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, ToolOutput{}, fmt.Errorf("encoding %s input: %w", name, err)
	}

	text, sources, err := s.ports.Tools.Execute(ctx, name, raw)
	if err != nil {
		return nil, ToolOutput{}, err
	}

	output := ToolOutput{Text: text}
	for _, src := range sources {
		output.Sources = append(output.Sources, SourceOutput{
			Label: src.Label,
			Link:  src.Link,
		})
	}
	return nil, output, nil
}
