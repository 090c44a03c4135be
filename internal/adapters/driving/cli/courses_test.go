package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
)

func TestCoursesCmd_Use(t *testing.T) {
	assert.Equal(t, "courses", coursesCmd.Use)
}

func TestCoursesCmd_ListsTitles(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"courses"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Indexed courses:")
	assert.Contains(t, buf.String(), "Go Fundamentals")
	assert.Contains(t, buf.String(), "Python Basics")
}

func TestCoursesCmd_EmptyCorpus(t *testing.T) {
	assistant, _, cleanup := setupTestServices()
	defer cleanup()

	assistant.analytics = &driving.CourseAnalytics{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"courses"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No courses indexed yet.")
}

func TestCoursesCmd_AnalyticsFailure(t *testing.T) {
	assistant, _, cleanup := setupTestServices()
	defer cleanup()

	assistant.analytics = nil
	assistant.err = errors.New("index unavailable")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"courses"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get course analytics")
}

func TestCoursesCmd_ErrorsWithoutServices(t *testing.T) {
	oldAssistant := assistantService
	assistantService = nil
	defer func() {
		assistantService = oldAssistant
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"courses"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
