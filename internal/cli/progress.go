package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var progressCourseKey string

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show streak, XP, and completed days",
	RunE:  runProgress,
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List your enrolled courses",
	RunE:  runCourses,
}

func init() {
	progressCmd.Flags().StringVar(&progressCourseKey, "course", "", "course identity key (defaults to your only course)")
}

func runProgress(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return trackCLIError("progress", err)
	}
	defer a.close()

	key, err := a.resolveCourseKey(progressCourseKey)
	if err != nil {
		return trackCLIError("progress", err)
	}

	enr, err := a.service.GetEnrollment(cmd.Context(), a.userID, key)
	if err != nil {
		return trackCLIError("progress", fmt.Errorf("load course: %w", err))
	}

	completed := 0
	dayNumbers := make([]int, 0, len(enr.Days))
	for n, day := range enr.Days {
		dayNumbers = append(dayNumbers, n)
		if day.Completed() {
			completed++
		}
	}
	sort.Ints(dayNumbers)

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s: day %d of %d", enr.Roadmap.Skill, enr.LastGeneratedDay, enr.Roadmap.TotalDays())))
	fmt.Println(statStyle.Render(fmt.Sprintf("Streak: %d days  XP: %d  Completed: %d", enr.Streak, enr.XPTotal, completed)))
	fmt.Println()

	for _, n := range dayNumbers {
		day := enr.Days[n]
		status := mutedStyle.Render("generated")
		if day.Completed() {
			status = statStyle.Render("completed")
			if day.Score != nil {
				status = statStyle.Render(fmt.Sprintf("completed (%.0f%%)", *day.Score*100))
			}
		}
		fmt.Printf("  Day %d: %s [%s]\n", n, day.Title, status)
	}

	if enr.Finished() && completed == len(enr.Days) {
		fmt.Println()
		fmt.Println(titleStyle.Render("Course finished!"))
	}
	return nil
}

func runCourses(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return trackCLIError("courses", err)
	}
	defer a.close()

	keys, err := a.service.ListCourses(cmd.Context(), a.userID)
	if err != nil {
		return trackCLIError("courses", err)
	}

	if len(keys) == 0 {
		fmt.Println("No courses yet. Run 'skillpath onboard' to start one.")
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("COURSES (%d)", len(keys))))
	for _, key := range keys {
		enr, err := a.service.GetEnrollment(cmd.Context(), a.userID, key)
		if err != nil {
			fmt.Printf("  %s %s\n", key, mutedStyle.Render("(unreadable)"))
			continue
		}
		fmt.Printf("  %s  %s, day %d of %d\n", key, enr.Roadmap.Skill, enr.LastGeneratedDay, enr.Roadmap.TotalDays())
	}
	return nil
}
