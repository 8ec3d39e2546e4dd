package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCourseKey string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show your learning roadmap",
	Long: `Display the full roadmap for your course, with completed and
generated days checked off.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planCourseKey, "course", "", "course identity key (defaults to your only course)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return trackCLIError("plan", err)
	}
	defer a.close()

	key, err := a.resolveCourseKey(planCourseKey)
	if err != nil {
		return trackCLIError("plan", err)
	}

	enr, err := a.service.GetEnrollment(cmd.Context(), a.userID, key)
	if err != nil {
		return trackCLIError("plan", fmt.Errorf("load course: %w", err))
	}

	fmt.Print(renderMarkdown(roadmapMarkdown(&enr.Roadmap, enr.LastGeneratedDay)))
	return nil
}
