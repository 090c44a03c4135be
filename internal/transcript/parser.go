package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
)

// Recognised header labels. Matching is case-insensitive.
const (
	labelCourseTitle      = "course title:"
	labelCourseLink       = "course link:"
	labelCourseInstructor = "course instructor:"
	labelLessonLink       = "lesson link:"
)

// lessonMarker matches a lesson heading like "Lesson 3: Tool Calling".
var lessonMarker = regexp.MustCompile(`(?i)^lesson\s+(\d+)\s*:\s*(.+)$`)

// ParseFile reads and parses one transcript file. The file name (minus
// extension) is the fallback course title for malformed headers.
func ParseFile(path string) (*domain.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	fallback := strings.TrimSuffix(base, filepath.Ext(base))
	return Parse(f, fallback)
}

// Parse parses a course transcript. The expected structure is a header
// (course title, then optional link and instructor lines) followed by
// repeated lesson blocks, each opened by a "Lesson N: Title" marker and
// an optional "Lesson Link:" line.
//
// Parsing is tolerant: a malformed header falls back to treating the
// whole input as a single untitled lesson under the fallback title,
// rather than rejecting the file.
func Parse(r io.Reader, fallbackTitle string) (*domain.Course, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	course := &domain.Course{CreatedAt: time.Now().UTC()}

	// Header: the title must be on the first non-empty line.
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i < len(lines) {
		if title, ok := labelValue(lines[i], labelCourseTitle); ok {
			course.Title = title
			i++
			for i < len(lines) {
				line := lines[i]
				if v, ok := labelValue(line, labelCourseLink); ok {
					course.Link = v
				} else if v, ok := labelValue(line, labelCourseInstructor); ok {
					course.Instructor = v
				} else if strings.TrimSpace(line) != "" {
					break
				}
				i++
			}
		}
	}

	if course.Title == "" {
		// Malformed header: the whole file becomes one untitled lesson.
		course.Title = fallbackTitle
		body := strings.TrimSpace(strings.Join(lines, "\n"))
		if body != "" {
			course.Lessons = []domain.Lesson{{Number: 0, Content: body}}
		}
		return course, nil
	}

	course.Lessons = parseLessons(lines[i:])
	return course, nil
}

// parseLessons splits the post-header lines into lesson blocks.
// Text before the first marker is ignored; real transcripts have none.
func parseLessons(lines []string) []domain.Lesson {
	var lessons []domain.Lesson
	var current *domain.Lesson
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		lessons = append(lessons, *current)
		current = nil
		body = nil
	}

	for _, line := range lines {
		if m := lessonMarker.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			number, _ := strconv.Atoi(m[1])
			current = &domain.Lesson{Number: number, Title: strings.TrimSpace(m[2])}
			continue
		}
		if current != nil {
			if v, ok := labelValue(line, labelLessonLink); ok && current.Link == "" && len(body) == 0 {
				current.Link = v
				continue
			}
			body = append(body, line)
		}
	}
	flush()

	return lessons
}

// labelValue returns the value after a recognised label, case-insensitively.
func labelValue(line, label string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(label) {
		return "", false
	}
	if !strings.EqualFold(trimmed[:len(label)], label) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(label):]), true
}
