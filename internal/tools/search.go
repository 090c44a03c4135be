package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/studyhall-cli/internal/logger"
)

// SearchToolName is the name declared to the language model.
const SearchToolName = "search_course_content"

// Ensure SearchTool implements the interface.
var _ Tool = (*SearchTool)(nil)

// searchInput is the tool's argument schema.
type searchInput struct {
	Query        string `json:"query"`
	CourseTitle  string `json:"course_title"`
	LessonNumber int    `json:"lesson_number"`
}

// SearchTool searches course content through the course index.
type SearchTool struct {
	index      driven.CourseIndex
	maxResults int
}

// NewSearchTool creates the course content search tool.
func NewSearchTool(index driven.CourseIndex, maxResults int) *SearchTool {
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}
	return &SearchTool{index: index, maxResults: maxResults}
}

// Definition returns the schema declared to the model: one required
// query parameter and two optional filters.
func (t *SearchTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        SearchToolName,
		Description: "Search course materials with smart course name matching and lesson filtering",
		InputSchema: driven.ToolSchema{
			Type: "object",
			Properties: map[string]driven.ToolProperty{
				"query": {
					Type:        "string",
					Description: "What to search for in the course content",
				},
				"course_title": {
					Type:        "string",
					Description: "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
				"lesson_number": {
					Type:        "integer",
					Description: "Specific lesson number to search within (e.g. 1, 2, 3)",
				},
			},
			Required: []string{"query"},
		},
	}
}

// Execute runs exactly one similarity query against the index.
// Unresolvable course filters and empty result sets are normal
// outcomes rendered as text, never errors.
func (t *SearchTool) Execute(ctx context.Context, input json.RawMessage) (string, []domain.Source, error) {
	var in searchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, fmt.Errorf("%w: decoding search arguments: %w", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(in.Query) == "" {
		return "", nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	logger.Debug("Search tool: query=%q course=%q lesson=%d", in.Query, in.CourseTitle, in.LessonNumber)

	// Resolve the fuzzy course filter before touching the content
	// index; an unknown course must not silently search unfiltered.
	resolvedTitle := ""
	if in.CourseTitle != "" {
		title, err := t.index.ResolveCourseTitle(ctx, in.CourseTitle)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Sprintf("No course found matching '%s'", in.CourseTitle), nil, nil
		}
		if err != nil {
			return "", nil, fmt.Errorf("resolving course title: %w", err)
		}
		resolvedTitle = title
		logger.Debug("Resolved course filter %q -> %q", in.CourseTitle, resolvedTitle)
	}

	results, err := t.index.Search(ctx, in.Query, domain.SearchOptions{
		Limit:        t.maxResults,
		CourseTitle:  resolvedTitle,
		LessonNumber: in.LessonNumber,
	})
	if err != nil {
		return "", nil, fmt.Errorf("searching course content: %w", err)
	}

	if len(results) == 0 {
		// The query ran and matched nothing: an authoritative empty
		// source set, not a missing one.
		return t.emptyMessage(resolvedTitle, in.LessonNumber), []domain.Source{}, nil
	}

	// Deterministic ordering regardless of index behaviour: descending
	// score, ties by ascending chunk index.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Index < results[j].Chunk.Index
	})

	return t.format(ctx, results)
}

// emptyMessage renders the "no results" outcome, naming any filters.
func (t *SearchTool) emptyMessage(courseTitle string, lessonNumber int) string {
	var filters strings.Builder
	if courseTitle != "" {
		fmt.Fprintf(&filters, " in course '%s'", courseTitle)
	}
	if lessonNumber > 0 {
		fmt.Fprintf(&filters, " in lesson %d", lessonNumber)
	}
	return fmt.Sprintf("No relevant content found%s.", filters.String())
}

// format renders provenance-labelled result blocks and the matching
// source list, both in result order.
func (t *SearchTool) format(ctx context.Context, results []domain.SearchResult) (string, []domain.Source, error) {
	blocks := make([]string, 0, len(results))
	sources := make([]domain.Source, 0, len(results))

	// Catalog lookups are cached per call; results usually share a course.
	courses := make(map[string]*domain.Course)

	for _, res := range results {
		label := res.Chunk.CourseTitle
		if res.Chunk.LessonNumber > 0 {
			label = fmt.Sprintf("%s - Lesson %d", res.Chunk.CourseTitle, res.Chunk.LessonNumber)
		}

		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", label, res.Chunk.Content))

		link := ""
		course, ok := courses[res.Chunk.CourseTitle]
		if !ok {
			var err error
			course, err = t.index.GetCourse(ctx, res.Chunk.CourseTitle)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return "", nil, fmt.Errorf("loading course metadata: %w", err)
			}
			courses[res.Chunk.CourseTitle] = course
		}
		if course != nil {
			if res.Chunk.LessonNumber > 0 {
				link = course.LessonLink(res.Chunk.LessonNumber)
			}
			if link == "" {
				link = course.Link
			}
		}

		sources = append(sources, domain.Source{Label: label, Link: link})
	}

	return strings.Join(blocks, "\n\n"), sources, nil
}
