package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for studyhall resources.
const uriScheme = "studyhall://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "courses",
		Name:        "courses",
		Description: "Count and titles of the indexed courses",
		MIMEType:    "application/json",
	}, s.handleCoursesResource)
}

// handleCoursesResource returns the course catalog analytics.
func (s *Server) handleCoursesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type catalog struct {
		TotalCourses int      `json:"total_courses"`
		CourseTitles []string `json:"course_titles"`
	}

	out := catalog{CourseTitles: []string{}}
	if s.ports.Assistant != nil {
		analytics, err := s.ports.Assistant.Analytics(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting course analytics: %w", err)
		}
		out.TotalCourses = analytics.TotalCourses
		if analytics.CourseTitles != nil {
			out.CourseTitles = analytics.CourseTitles
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling course catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
