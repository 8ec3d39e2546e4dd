package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	dayCourseKey  string
	doneCourseKey string
	doneScore     float64
	doneFeedback  string
)

var dayCmd = &cobra.Command{
	Use:   "day [number]",
	Short: "Show a day's learning content",
	Long: `Display the content for a day of your course. Without an argument,
shows the most recently generated day.

If you never generated content for that day, the shared roadmap's latest
outline for it is shown instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Complete today's session and generate the next day",
	Long: `Mark the current day as completed, bank its XP, extend your streak,
and generate tomorrow's content. Completing the final day finishes the
course.`,
	RunE: runDone,
}

func init() {
	dayCmd.Flags().StringVar(&dayCourseKey, "course", "", "course identity key (defaults to your only course)")
	doneCmd.Flags().StringVar(&doneCourseKey, "course", "", "course identity key (defaults to your only course)")
	doneCmd.Flags().Float64Var(&doneScore, "score", -1, "score for today's exercises, 0.0 to 1.0 (optional)")
	doneCmd.Flags().StringVar(&doneFeedback, "feedback", "", "notes about today's session (optional)")
}

func runDay(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return trackCLIError("day", err)
	}
	defer a.close()

	key, err := a.resolveCourseKey(dayCourseKey)
	if err != nil {
		return trackCLIError("day", err)
	}

	enr, err := a.service.GetEnrollment(cmd.Context(), a.userID, key)
	if err != nil {
		return trackCLIError("day", fmt.Errorf("load course: %w", err))
	}

	dayNumber := enr.LastGeneratedDay
	if len(args) == 1 {
		dayNumber, err = strconv.Atoi(args[0])
		if err != nil || dayNumber < 1 {
			return trackCLIError("day", fmt.Errorf("invalid day number %q", args[0]))
		}
	}
	if dayNumber == 0 {
		return trackCLIError("day", fmt.Errorf("no day generated yet: run 'skillpath onboard'"))
	}

	day, err := a.service.GetDay(cmd.Context(), a.userID, key, dayNumber)
	if err != nil {
		return trackCLIError("day", fmt.Errorf("day %d not found", dayNumber))
	}

	fmt.Print(renderMarkdown(dayMarkdown(dayNumber, day)))
	if day.Completed() {
		fmt.Println(statStyle.Render(fmt.Sprintf("Completed on %s", day.CompletedAt.Format("2006-01-02"))))
	}
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return trackCLIError("done", err)
	}
	defer a.close()

	key, err := a.resolveCourseKey(doneCourseKey)
	if err != nil {
		return trackCLIError("done", err)
	}

	var score *float64
	if cmd.Flags().Changed("score") {
		if doneScore < 0 || doneScore > 1 {
			return trackCLIError("done", fmt.Errorf("invalid score %.2f: must be between 0.0 and 1.0", doneScore))
		}
		score = &doneScore
	}

	result, err := a.service.CompleteAndAdvance(cmd.Context(), a.userID, key, score, doneFeedback)
	if err != nil {
		return trackCLIError("done", err)
	}

	fmt.Println(statStyle.Render(fmt.Sprintf("Streak: %d days  XP: %d", result.Streak, result.XPTotal)))

	if result.Finished {
		fmt.Println(titleStyle.Render("Course complete! That was the last day of your roadmap."))
		return nil
	}

	fmt.Printf("\n%s\n\n", actionStyle.Render(fmt.Sprintf("Day %d is ready:", result.DayNumber)))
	fmt.Print(renderMarkdown(dayMarkdown(result.DayNumber, result.Day)))
	return nil
}
