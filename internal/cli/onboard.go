package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/skillpath/internal/models"
)

var (
	onboardSkill      string
	onboardExperience string
	onboardTime       string
	onboardStyle      string
	onboardGoal       string
	onboardMotivation string
	onboardName       string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Set up a new course and generate your first day",
	Long: `Answer a few questions about what you want to learn, then Skillpath
builds your roadmap and generates day 1.

All answers can be given as flags; anything missing is asked interactively.
If someone already learned the same skill at your level, their roadmap is
reused and you start immediately.`,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().StringVar(&onboardSkill, "skill", "", "skill to learn (e.g. \"mate\", \"chess openings\")")
	onboardCmd.Flags().StringVar(&onboardExperience, "experience", "", "experience level: beginner, intermediate, advanced")
	onboardCmd.Flags().StringVar(&onboardTime, "time", "", "daily time budget: 5 minutes, 10 minutes, 20 minutes, 30+ minutes")
	onboardCmd.Flags().StringVar(&onboardStyle, "style", "", "preferred learning style (optional)")
	onboardCmd.Flags().StringVar(&onboardGoal, "goal", "", "what you want to achieve (optional)")
	onboardCmd.Flags().StringVar(&onboardMotivation, "motivation", "", "why you want to learn this (optional)")
	onboardCmd.Flags().StringVar(&onboardName, "name", "", "your name (optional)")
}

func runOnboard(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	skill := onboardSkill
	if skill == "" {
		skill = prompt(reader, "What do you want to learn? ")
	}
	if skill == "" {
		return trackCLIError("onboard", fmt.Errorf("invalid input: skill is required"))
	}

	experience := onboardExperience
	if experience == "" {
		experience = promptDefault(reader, "Experience level (beginner/intermediate/advanced) [beginner]: ", models.ExperienceBeginner)
	}
	if !validExperience(experience) {
		return trackCLIError("onboard", fmt.Errorf("invalid experience %q (valid: %s)",
			experience, strings.Join(models.ValidExperienceLevels(), ", ")))
	}

	timeBudget := onboardTime
	if timeBudget == "" {
		timeBudget = promptDefault(reader, "Daily time (5 minutes/10 minutes/20 minutes/30+ minutes) [10 minutes]: ", "10 minutes")
	}

	prefs := &models.UserPreferences{
		Name:          onboardName,
		Skill:         skill,
		Experience:    strings.ToLower(strings.TrimSpace(experience)),
		Time:          timeBudget,
		LearningStyle: onboardStyle,
		Goal:          onboardGoal,
		Motivation:    onboardMotivation,
	}

	a, err := newApp(true)
	if err != nil {
		return trackCLIError("onboard", err)
	}
	defer a.close()

	fmt.Println(mutedStyle.Render("Building your roadmap..."))

	result, err := a.service.CreateCourse(cmd.Context(), a.userID, prefs)
	if err != nil {
		return trackCLIError("onboard", err)
	}

	telemetryClient.TrackOnboardingCompleted(prefs.Skill, prefs.Experience, prefs.Time)

	if result.RoadmapReused {
		fmt.Println(statStyle.Render("Found an existing roadmap for this skill, reusing it."))
	}
	fmt.Printf("%s\n\n", titleStyle.Render(fmt.Sprintf("Course ready: %s (%d days)", result.Roadmap.Skill, result.Roadmap.TotalDays())))
	fmt.Print(renderMarkdown(roadmapMarkdown(result.Roadmap, 1)))
	fmt.Print(renderMarkdown(dayMarkdown(1, result.FirstDay)))
	fmt.Println(mutedStyle.Render("When you finish today's session, run 'skillpath done'."))
	return nil
}

func validExperience(experience string) bool {
	normalized := strings.ToLower(strings.TrimSpace(experience))
	for _, level := range models.ValidExperienceLevels() {
		if normalized == level {
			return true
		}
	}
	return false
}

func prompt(reader *bufio.Reader, question string) string {
	fmt.Print(question)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptDefault(reader *bufio.Reader, question, fallback string) string {
	answer := prompt(reader, question)
	if answer == "" {
		return fallback
	}
	return answer
}
