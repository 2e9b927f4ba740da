package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// blank returns a width x height grid of spaces.
func blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// overlayAt pastes block onto base with its top-left corner at (x, y).
// Cells of block that fall outside the width x height grid are dropped.
func overlayAt(base, block string, x, y, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	blockLines := splitLines(block)
	blockWidth := maxLineWidth(blockLines)
	for i, line := range blockLines {
		row := y + i
		if row < 0 || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		line = padRight(line, blockWidth)
		if avail := width - x; avail < blockWidth {
			line = ansi.Truncate(line, max(avail, 0), "")
		}
		end := x + ansi.StringWidth(line)
		right := ansi.TruncateLeft(target, end, "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines[:height], "\n")
}

// splitLines splits on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces to the given visual width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return padRight(ansi.Truncate(s, width, "…"), width)
}
