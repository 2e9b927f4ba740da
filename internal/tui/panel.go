package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/drawdemo/internal/view"
)

// panel draws a BorderView frame around pre-rendered content. The content
// area is the frame's Rect.Inner(1).
type panel struct {
	Title   string
	Classes view.ClassSet
	Focused bool
	Content string
}

func (p panel) Render(width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor(p.Classes, p.Focused))
	headStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	if p.Focused {
		headStyle = headStyle.Foreground(colorFocus)
	}

	innerWidth := width - 2
	innerHeight := height - 2

	titleText := ""
	if t := strings.TrimSpace(p.Title); t != "" && innerWidth > 2 {
		prefix := "  "
		if p.Focused {
			prefix = "● "
		}
		titleText = " " + ansi.Truncate(prefix+t, innerWidth-2, "") + " "
	}
	dashes := innerWidth - ansi.StringWidth(titleText)
	leftDash := min(1, dashes)
	rightDash := dashes - leftDash

	v := borderStyle.Render("│")
	top := borderStyle.Render("╭"+strings.Repeat("─", leftDash)) +
		headStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)+"╮")

	lines := splitLines(p.Content)
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, v+padRight(ansi.Truncate(line, innerWidth, ""), innerWidth)+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}
