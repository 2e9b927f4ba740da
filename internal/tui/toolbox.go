package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/drawdemo/internal/editor"
	"github.com/jask/drawdemo/internal/view"
)

// Row layout of the toolbox content area.
const (
	toolRowStart   = 1
	attrRowsOffset = 3 // rows between the last tool and the first attribute
)

// toolbox renders the control panel and edits the selected shape's
// attributes through a text input.
type toolbox struct {
	cursor  int
	editing bool
	attr    editor.Attribute
	input   textinput.Model
}

func newToolbox() toolbox {
	return toolbox{input: textinput.New()}
}

func attrRowStart() int {
	return toolRowStart + len(editor.Tools()) + attrRowsOffset
}

// MoveCursor steps the attribute cursor, wrapping at both ends.
func (t *toolbox) MoveCursor(delta int) {
	n := len(editor.Attributes())
	t.cursor = ((t.cursor+delta)%n + n) % n
}

// StartEdit opens the input on the attribute under the cursor. It does
// nothing when no shape is selected.
func (t *toolbox) StartEdit(props view.ToolBox) tea.Cmd {
	if props.SelectedShape == nil {
		return nil
	}
	t.attr = editor.Attributes()[t.cursor]
	t.input = textinput.New()
	t.input.Prompt = t.attr.Label() + ": "
	t.input.CharLimit = 64
	t.input.SetValue(props.SelectedShape.Value(t.attr))
	t.input.CursorEnd()
	t.editing = true
	return t.input.Focus()
}

// Submit closes the input and hands its value to the attribute callback.
func (t *toolbox) Submit(props view.ToolBox) {
	if !t.editing {
		return
	}
	t.editing = false
	t.input.Blur()
	if props.OnAttributeChange != nil {
		props.OnAttributeChange(string(t.attr), t.input.Value())
	}
}

// Cancel closes the input without applying it.
func (t *toolbox) Cancel() {
	t.editing = false
	t.input.Blur()
}

// UpdateInput forwards a message to the text input while editing.
func (t *toolbox) UpdateInput(msg tea.Msg) tea.Cmd {
	if !t.editing {
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

// HandleMouse reacts to a left press inside the content rectangle: a tool
// row changes the tool, an attribute row moves the cursor. It reports
// whether the press landed on a row.
func (t *toolbox) HandleMouse(props view.ToolBox, content view.Rect, msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	if !content.Contains(msg.X, msg.Y) {
		return false
	}
	row := msg.Y - content.Y
	tools := editor.Tools()
	if i := row - toolRowStart; i >= 0 && i < len(tools) {
		if props.OnToolChange != nil {
			props.OnToolChange(tools[i])
		}
		return true
	}
	if props.SelectedShape == nil {
		return false
	}
	attrs := editor.Attributes()
	if i := row - attrRowStart(); i >= 0 && i < len(attrs) {
		if t.editing {
			t.Cancel()
		}
		t.cursor = i
		return true
	}
	return false
}

func (t toolbox) Render(props view.ToolBox, width int, focused bool) string {
	lines := []string{sectionStyle.Render("Tools")}
	for _, tool := range editor.Tools() {
		marker := "  "
		style := labelStyle
		if tool == props.SelectedTool {
			marker = cursorStyle.Render("▶ ")
			style = valueStyle
		}
		lines = append(lines, marker+style.Render(tool.Label()))
	}
	lines = append(lines, "")

	s := props.SelectedShape
	if s == nil {
		lines = append(lines, sectionStyle.Render("Shape"), "", mutedStyle.Render("no shape selected"))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, sectionStyle.Render("Shape ")+mutedStyle.Render(s.ID), "")

	labelWidth := 0
	for _, a := range editor.Attributes() {
		labelWidth = max(labelWidth, len(a.Label()))
	}
	for i, a := range editor.Attributes() {
		if t.editing && a == t.attr {
			lines = append(lines, "› "+t.input.View())
			continue
		}
		marker := "  "
		if focused && i == t.cursor {
			marker = cursorStyle.Render("› ")
		}
		label := labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, a.Label()))
		lines = append(lines, fit(marker+label+"  "+valueStyle.Render(s.Value(a)), width))
	}
	if !s.Pending.IsZero() {
		p := s.Preview()
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("preview %d,%d %dx%d", p.L, p.T, p.W, p.H)))
	}
	return strings.Join(lines, "\n")
}
