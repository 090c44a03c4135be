package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseLessonLink(t *testing.T) {
	course := Course{
		Title: "Python Programming Basics",
		Lessons: []Lesson{
			{Number: 1, Title: "Introduction", Link: "https://example.com/lesson1"},
			{Number: 2, Title: "Variables"},
		},
	}

	assert.Equal(t, "https://example.com/lesson1", course.LessonLink(1))
	assert.Empty(t, course.LessonLink(2), "lesson without link")
	assert.Empty(t, course.LessonLink(9), "unknown lesson")
}
