package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/drawdemo/internal/view"
)

// Catppuccin Mocha palette
// https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

// Semantic aliases
const (
	colorAccent  = colorPink
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)
	statusOKStyle  = lipgloss.NewStyle().Foreground(colorSuccess)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorOverlay1).
			Background(colorMantle)
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorMantle).
			Bold(true)
	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorOverlay1).
			Background(colorMantle)

	sectionStyle = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)

	shapeStyle         = lipgloss.NewStyle().Foreground(colorBlue)
	shapeSelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	shapeGhostStyle    = lipgloss.NewStyle().Foreground(colorSurface1)
	shapeLabelStyle    = lipgloss.NewStyle().Foreground(colorText)
	shapeFillStyle     = lipgloss.NewStyle().Background(colorSurface0)
	gridStyle          = lipgloss.NewStyle().Foreground(colorSurface0)
)

// classStyles maps tree class names to panel styles. When two classes set
// the same property the first name in sorted order wins.
var classStyles = map[string]lipgloss.Style{
	view.ClassAppContent: lipgloss.NewStyle().Foreground(colorText),
	view.ClassNoSelect:   lipgloss.NewStyle(),
	view.ClassShadowy:    lipgloss.NewStyle().Foreground(colorOverlay0),
}

// styleForClasses folds the styles of every class in cs.
func styleForClasses(cs view.ClassSet) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, name := range cs.Names() {
		if s, ok := classStyles[name]; ok {
			st = st.Inherit(s)
		}
	}
	return st
}

func borderColor(cs view.ClassSet, focused bool) lipgloss.TerminalColor {
	if focused {
		return colorFocus
	}
	if fg := styleForClasses(cs).GetForeground(); fg != nil {
		if _, none := fg.(lipgloss.NoColor); !none {
			return fg
		}
	}
	return colorOverlay0
}
