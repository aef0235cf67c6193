package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const planSeparator = "********************"

// PlanCommit is one commit line inside a plan block
type PlanCommit struct {
	ShortHash string
	Summary   string
}

// PlanBlock is one branch block of the upload plan
type PlanBlock struct {
	Branch    string
	Decision  string // planner decision label, empty when none applies
	UpToDate  bool   // renders the decision dimmed instead of highlighted
	DependsOn []string
	Commits   []PlanCommit
}

// RenderPlan renders the upload plan the operator confirms against
func RenderPlan(blocks []PlanBlock) string {
	var b strings.Builder
	b.WriteString("Prepared to upload:\n")
	for _, block := range blocks {
		b.WriteString(ColorDim(planSeparator) + "\n")

		line := "Branch: " + ColorBranchName(block.Branch)
		if block.Decision != "" {
			line += " " + ColorDecision("("+block.Decision+")", block.UpToDate)
		}
		b.WriteString(line + "\n")

		if len(block.DependsOn) > 0 {
			b.WriteString(ColorMagenta("Depends on: "+strings.Join(block.DependsOn, ", ")) + "\n")
		}

		for _, commit := range block.Commits {
			b.WriteString("  " + ColorDim(commit.ShortHash) + " " + commit.Summary + "\n")
		}
	}
	b.WriteString(ColorDim(planSeparator) + "\n")
	return b.String()
}

// ColorBranchName colors a branch name
func ColorBranchName(branchName string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(branchName)
}

// ColorDecision colors a planner decision label
func ColorDecision(text string, upToDate bool) string {
	if upToDate {
		return ColorDim(text)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorMagenta colors text magenta
func ColorMagenta(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(text)
}
