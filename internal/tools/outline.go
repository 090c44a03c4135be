package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

// OutlineToolName is the name declared to the language model.
const OutlineToolName = "get_course_outline"

// Ensure OutlineTool implements the interface.
var _ Tool = (*OutlineTool)(nil)

// outlineInput is the tool's argument schema.
type outlineInput struct {
	CourseTitle string `json:"course_title"`
}

// OutlineTool renders a course's structure: title, link, and the full
// lesson list. It reads the catalog only and never queries content.
type OutlineTool struct {
	index driven.CourseIndex
}

// NewOutlineTool creates the course outline tool.
func NewOutlineTool(index driven.CourseIndex) *OutlineTool {
	return &OutlineTool{index: index}
}

// Definition returns the schema declared to the model.
func (t *OutlineTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        OutlineToolName,
		Description: "Get the complete outline of a course: title, link, and all lesson numbers and titles",
		InputSchema: driven.ToolSchema{
			Type: "object",
			Properties: map[string]driven.ToolProperty{
				"course_title": {
					Type:        "string",
					Description: "Course title (partial matches work)",
				},
			},
			Required: []string{"course_title"},
		},
	}
}

// Execute resolves the course fuzzily and renders its outline.
func (t *OutlineTool) Execute(ctx context.Context, input json.RawMessage) (string, []domain.Source, error) {
	var in outlineInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, fmt.Errorf("%w: decoding outline arguments: %w", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(in.CourseTitle) == "" {
		return "", nil, fmt.Errorf("%w: course_title is required", domain.ErrInvalidInput)
	}

	title, err := t.index.ResolveCourseTitle(ctx, in.CourseTitle)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("No course found matching '%s'", in.CourseTitle), nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("resolving course title: %w", err)
	}

	course, err := t.index.GetCourse(ctx, title)
	if err != nil {
		return "", nil, fmt.Errorf("loading course metadata: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Course**: %s\n", course.Title)
	if course.Link != "" {
		fmt.Fprintf(&b, "**Course Link**: %s\n", course.Link)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&b, "**Instructor**: %s\n", course.Instructor)
	}
	fmt.Fprintf(&b, "**Total Lessons**: %d\n\n**Lessons**:\n", len(course.Lessons))
	for _, lesson := range course.Lessons {
		fmt.Fprintf(&b, "%d. %s\n", lesson.Number, lesson.Title)
	}

	source := domain.Source{Label: course.Title, Link: course.Link}
	return strings.TrimRight(b.String(), "\n"), []domain.Source{source}, nil
}
