// Package ui renders plans and execution reports for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"forge/internal/engine"
	"forge/internal/plan"
	"forge/internal/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(10)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22CC66"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DD4444")).Bold(true)
	reasonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
)

// RenderPlan writes the ordered execution plan as a dry-run table.
func RenderPlan(out io.Writer, p *plan.ExecutionPlan) {
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Execution plan (%d steps)", p.Len())))
	for i, s := range p.Steps {
		deps := ""
		if len(s.Requires) > 0 {
			deps = reasonStyle.Render("after " + strings.Join(s.Requires, ", "))
		}
		fmt.Fprintf(out, "  %2d. %s %-24s %s\n", i+1, categoryStyle.Render(string(s.Category)), s.ID, deps)
	}
}

// RenderSteps writes the full catalog listing used by `forge steps`.
func RenderSteps(out io.Writer, stepList []registry.Step) {
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Step catalog (%d steps)", len(stepList))))
	for _, s := range stepList {
		fmt.Fprintf(out, "  %s %-24s %s\n", categoryStyle.Render(string(s.Category)), s.ID, s.Description)
		if len(s.Requires) > 0 {
			fmt.Fprintf(out, "  %s %-24s %s\n", categoryStyle.Render(""), "", reasonStyle.Render("requires "+strings.Join(s.Requires, ", ")))
		}
	}
}

// RenderReport writes the per-step outcomes and the overall summary.
func RenderReport(out io.Writer, report *engine.Report) {
	for _, res := range report.Results {
		switch res.Outcome {
		case engine.OutcomeSucceeded:
			fmt.Fprintf(out, "  %s %s\n", successStyle.Render("✓"), res.ID)
		case engine.OutcomeSkipped:
			fmt.Fprintf(out, "  %s %s %s\n", skipStyle.Render("○"), res.ID, reasonStyle.Render(res.Reason))
		case engine.OutcomeFailed:
			fmt.Fprintf(out, "  %s %s %s\n", failStyle.Render("✗"), res.ID, failStyle.Render(res.Err.Error()))
		}
	}

	succeeded, skipped, failed := len(report.Succeeded()), len(report.Skipped()), len(report.Failed())
	summary := fmt.Sprintf("%d succeeded, %d skipped, %d failed", succeeded, skipped, failed)
	if report.OK() {
		fmt.Fprintln(out, successStyle.Render("Generation complete: "+summary))
	} else {
		fmt.Fprintln(out, failStyle.Render("Generation finished with failures: "+summary))
	}
}
