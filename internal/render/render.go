// Package render is the terminal Renderer implementation of the host
// contract (blocksworld.Renderer). It lives outside internal/blocksworld —
// the core package never formats or prints anything itself.
package render

import (
	"fmt"
	"io"

	"blocksplanner/internal/blocksworld"

	"github.com/charmbracelet/lipgloss"
)

var (
	planStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
)

// Terminal renders plans, prompts, and errors as styled lines to an
// io.Writer (typically os.Stdout).
type Terminal struct {
	out io.Writer
}

// New builds a Terminal renderer writing to out.
func New(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// RenderPlan prints every narrated line, styling action tokens distinctly
// from narration text.
func (t *Terminal) RenderPlan(plan blocksworld.NarratedPlan) {
	for _, line := range plan.Lines {
		if isActionToken(line) {
			fmt.Fprintln(t.out, planStyle.Render("  "+actionWord(line)))
			continue
		}
		fmt.Fprintln(t.out, line)
	}
}

// RenderPrompt prints a clarification question in the prompt style.
func (t *Terminal) RenderPrompt(question string) {
	fmt.Fprintln(t.out, promptStyle.Render(question))
}

// RenderError prints a PlanError's message in the error style.
func (t *Terminal) RenderError(err *blocksworld.PlanError) {
	fmt.Fprintln(t.out, errorStyle.Render(err.Message))
}

func isActionToken(line string) bool {
	return len(line) == 1 && (line == "l" || line == "r" || line == "p" || line == "d")
}

func actionWord(token string) string {
	switch token {
	case "l":
		return "<- move arm left"
	case "r":
		return "-> move arm right"
	case "p":
		return "^ pick up"
	case "d":
		return "v drop"
	default:
		return token
	}
}
