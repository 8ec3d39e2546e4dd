package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/skillpath/internal/content"
	"github.com/asteroid-belt/skillpath/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	actionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// renderMarkdown renders markdown for terminal display, falling back to the
// raw text when the renderer cannot be constructed.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// roadmapMarkdown formats the shared roadmap as markdown.
func roadmapMarkdown(doc *models.RoadmapDocument, lastGenerated int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Learning roadmap: %s\n\n", doc.Skill)
	for _, section := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		if section.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", section.Description)
		}
		for _, day := range section.Days {
			marker := " "
			if day.DayNumber <= lastGenerated {
				marker = "x"
			}
			label := ""
			if day.IsActionDay {
				label = " *(action day)*"
			}
			fmt.Fprintf(&b, "- [%s] Day %d: %s%s\n", marker, day.DayNumber, day.Title, label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// dayMarkdown formats one day's content as markdown.
func dayMarkdown(dayNumber int, day *models.EnrollmentDay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Day %d: %s\n\n", dayNumber, day.Title)

	if day.IsActionDay {
		b.WriteString("**Action day!** No reading today.\n\n")
		b.WriteString(day.ActionTask)
		b.WriteString("\n")
		return b.String()
	}

	for i, block := range day.Blocks {
		switch blk := block.(type) {
		case *content.ReadBlock:
			if blk.Title != "" {
				fmt.Fprintf(&b, "## %s\n\n", blk.Title)
			}
			fmt.Fprintf(&b, "%s\n\n", blk.Body)
		case *content.AudioBlock:
			fmt.Fprintf(&b, "## Listen\n\n%s\n\n", blk.Text)
		case *content.QuizMCQBlock:
			fmt.Fprintf(&b, "### Quiz %d\n\n%s\n\n", i+1, blk.Question)
			writeOptions(&b, blk.Options)
		case *content.QuizTFBlock:
			fmt.Fprintf(&b, "### True or false?\n\n%s\n\n", blk.Statement)
		case *content.SentenceShuffleBlock:
			fmt.Fprintf(&b, "### Rebuild the sentence\n\nTokens: %s\n\n", strings.Join(blk.Tokens, " / "))
		case *content.MatchingPairsBlock:
			fmt.Fprintf(&b, "### Match the pairs\n\n")
			for _, left := range blk.LeftItems {
				fmt.Fprintf(&b, "- %s -> ?\n", left)
			}
			fmt.Fprintf(&b, "\nMeanings: %s\n\n", strings.Join(blk.RightItems, ", "))
		case *content.ImageMCQBlock:
			fmt.Fprintf(&b, "### Picture quiz\n\n%s\n\n", blk.Prompt)
			writeOptions(&b, blk.Options)
		case *content.ClozeMCQBlock:
			fmt.Fprintf(&b, "### Fill the blank\n\n%s ____ %s\n\n", blk.BeforeText, blk.AfterText)
			writeOptions(&b, blk.Options)
		case *content.ScenarioMCQBlock:
			fmt.Fprintf(&b, "### What would you do?\n\n%s\n\n", blk.Context)
			writeOptions(&b, blk.Options)
		}
	}

	fmt.Fprintf(&b, "---\n\n*%d XP available today*\n", day.Blocks.TotalXP())
	return b.String()
}

// writeOptions renders lettered answer options.
func writeOptions(b *strings.Builder, options []string) {
	for i, opt := range options {
		fmt.Fprintf(b, "%c) %s\n", 'A'+i, opt)
	}
	b.WriteString("\n")
}
