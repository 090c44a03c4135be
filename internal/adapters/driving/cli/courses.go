package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the indexed courses",
	RunE:  runCourses,
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	analytics, err := assistantService.Analytics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get course analytics: %w", err)
	}

	if analytics.TotalCourses == 0 {
		cmd.Println("No courses indexed yet. Run 'studyhall ingest' first.")
		return nil
	}

	cmd.Printf("Indexed courses: %s\n\n", countStyle.Render(fmt.Sprint(analytics.TotalCourses)))
	for _, title := range analytics.CourseTitles {
		cmd.Printf("  %s\n", title)
	}
	return nil
}
