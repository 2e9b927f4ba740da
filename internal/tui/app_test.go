package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/drawdemo/internal/config"
	"github.com/jask/drawdemo/internal/editor"
	"github.com/jask/drawdemo/internal/store"
)

// With the default config and a 100x30 terminal the designer surface starts
// at cell (2, 3), so the drawing offset is (20, 60). Seed box1 covers cells
// x 2..11 y 8..12 and box2 covers x 7..16 y 8..13.
func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Session.Name = "test"
	ids := 0
	opts = append(opts, WithEditorOptions(editor.WithIDFunc(func() string {
		ids++
		return "shape-" + string(rune('0'+ids))
	})))
	a := New(context.Background(), cfg, editor.Seed(), opts...)
	apply(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
	return a
}

// apply feeds one message and returns the command without running it;
// text input focus returns a cursor blink timer that tests never wait on.
func apply(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := a.Update(msg)
	require.Same(t, a, next)
	return cmd
}

// drain runs a library command and feeds its result back.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	apply(t, a, cmd())
}

func press(t *testing.T, a *App, k string) tea.Cmd {
	t.Helper()
	return apply(t, a, keyMsg(k))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func shape(t *testing.T, a *App, id string) editor.Shape {
	t.Helper()
	s, ok := a.Editor().Model().Shape(id)
	require.True(t, ok, "shape %q missing", id)
	return s
}

func TestResizeSetsDrawingOffset(t *testing.T) {
	a := newTestApp(t)
	require.Equal(t, editor.Point{X: 20, Y: 60}, a.Editor().DrawingOffset())

	apply(t, a, tea.WindowSizeMsg{Width: 80, Height: 24})
	require.Equal(t, editor.Point{X: 20, Y: 60}, a.Editor().DrawingOffset(), "origin depends on margins only")
}

func TestPaintWithRectangleTool(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "r")
	require.Equal(t, editor.ToolRectangle, a.Editor().Model().SelectedTool)

	apply(t, a, mouse(tea.MouseActionPress, 30, 15))
	s := shape(t, a, "shape-1")
	require.Equal(t, editor.Rect{L: 280, T: 240, W: 100, H: 100}, s.Bounds())
	require.Equal(t, "block", s.Name)
	require.Equal(t, 3, a.Editor().Model().Len())
}

func TestPaintHonoursPan(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "r")
	press(t, a, "H")
	apply(t, a, mouse(tea.MouseActionPress, 30, 15))
	s := shape(t, a, "shape-1")
	require.Equal(t, 280-panCols*10, s.L)
}

func TestDragGesture(t *testing.T) {
	a := newTestApp(t)

	apply(t, a, mouse(tea.MouseActionPress, 10, 10))
	require.Equal(t, "box2", a.Editor().Model().SelectedShapeID, "topmost shape wins")

	apply(t, a, mouse(tea.MouseActionMotion, 13, 12))
	s := shape(t, a, "box2")
	require.Equal(t, editor.PendingChange{DragX: 30, DragY: 40}, s.Pending)
	require.Equal(t, 50, s.L, "signals do not commit")

	apply(t, a, mouse(tea.MouseActionRelease, 13, 12))
	s = shape(t, a, "box2")
	require.Equal(t, editor.Rect{L: 80, T: 150, W: 100, H: 100}, s.Bounds())
	require.True(t, s.Pending.IsZero())
}

func TestResizeGestureLeftEdge(t *testing.T) {
	a := newTestApp(t)

	apply(t, a, mouse(tea.MouseActionPress, 2, 10))
	require.Equal(t, "box1", a.Editor().Model().SelectedShapeID)
	apply(t, a, mouse(tea.MouseActionMotion, 0, 10))
	require.Equal(t, editor.PendingChange{Left: -20}, shape(t, a, "box1").Pending)

	apply(t, a, mouse(tea.MouseActionRelease, 0, 10))
	require.Equal(t, editor.Rect{L: -20, T: 100, W: 120, H: 100}, shape(t, a, "box1").Bounds())
}

func TestResizeGestureCorner(t *testing.T) {
	a := newTestApp(t)

	apply(t, a, mouse(tea.MouseActionPress, 16, 13))
	apply(t, a, mouse(tea.MouseActionMotion, 18, 14))
	require.Equal(t, editor.PendingChange{Right: 20, Bottom: 20}, shape(t, a, "box2").Pending)
	apply(t, a, mouse(tea.MouseActionRelease, 18, 14))
	require.Equal(t, editor.Rect{L: 50, T: 110, W: 120, H: 120}, shape(t, a, "box2").Bounds())
}

func TestPressOnEmptyCanvasKeepsSelection(t *testing.T) {
	a := newTestApp(t)
	apply(t, a, mouse(tea.MouseActionPress, 50, 20))
	apply(t, a, mouse(tea.MouseActionRelease, 50, 20))
	require.Equal(t, "box1", a.Editor().Model().SelectedShapeID)
	require.True(t, a.Editor().Model().Equal(editor.Seed()))
}

func TestToolboxClickChangesTool(t *testing.T) {
	a := newTestApp(t)
	// Toolbox content starts at (70, 3); tools are on rows 4 and 5.
	apply(t, a, mouse(tea.MouseActionPress, 72, 5))
	require.Equal(t, editor.ToolRectangle, a.Editor().Model().SelectedTool)
	require.Equal(t, focusToolbox, a.focus)
}

func TestKeyboardNudgeAndDelete(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "right")
	press(t, a, "down")
	s := shape(t, a, "box1")
	require.Equal(t, 10, s.L)
	require.Equal(t, 120, s.T)
	require.True(t, s.Pending.IsZero())

	press(t, a, "x")
	require.False(t, a.Editor().Model().Has("box1"))
	require.Equal(t, "", a.Editor().Model().SelectedShapeID)

	press(t, a, "x")
	require.Equal(t, 1, a.Editor().Model().Len(), "nothing selected, nothing deleted")
}

func TestAttributeEditing(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "tab")
	require.Equal(t, scopeToolbox, a.scope())

	press(t, a, "j")
	press(t, a, "enter")
	require.Equal(t, scopeAttrEdit, a.scope())

	press(t, a, "backspace")
	for _, r := range "42px" {
		press(t, a, string(r))
	}
	press(t, a, "enter")
	require.Equal(t, scopeToolbox, a.scope())
	require.Equal(t, 42, shape(t, a, "box1").L)
}

func TestAttributeEditCancelAndError(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "tab")
	press(t, a, "j")
	press(t, a, "enter")
	press(t, a, "q")
	press(t, a, "esc")
	require.Equal(t, 0, shape(t, a, "box1").L, "esc discards the input")

	press(t, a, "enter")
	press(t, a, "backspace")
	press(t, a, "z")
	press(t, a, "enter")
	require.Equal(t, 0, shape(t, a, "box1").L)
	require.True(t, a.statusErr)
	require.Contains(t, a.status, "invalid attribute value")
}

func TestSaveWithoutLibrary(t *testing.T) {
	a := newTestApp(t)
	drain(t, a, press(t, a, "ctrl+s"))
	require.True(t, a.statusErr)
	require.Contains(t, a.status, ErrNoLibrary.Error())
}

func TestSaveAndReload(t *testing.T) {
	db, err := store.OpenMigrated(filepath.Join(t.TempDir(), "drawings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	a := newTestApp(t, WithRepo(store.NewDrawingRepo(db)))

	drain(t, a, press(t, a, "ctrl+s"))
	require.False(t, a.statusErr, a.status)
	require.Contains(t, a.status, `saved "test"`)

	press(t, a, "x")
	require.Equal(t, 1, a.Editor().Model().Len())

	drain(t, a, press(t, a, "ctrl+o"))
	require.False(t, a.statusErr, a.status)
	require.Equal(t, 2, a.Editor().Model().Len())
	require.Equal(t, "box1", a.Editor().Model().SelectedShapeID)
}

func TestViewDrawsPanelsAndShapes(t *testing.T) {
	a := newTestApp(t)
	out := ansi.Strip(a.View())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 30)
	for i, line := range lines {
		require.Equal(t, 100, ansi.StringWidth(line), "line %d", i)
	}
	require.Contains(t, out, "Designer · Pointer")
	require.Contains(t, out, "Toolbox")
	require.Contains(t, out, "2 shapes")
	require.Contains(t, lines[9], "box1")
	require.Contains(t, out, "Shape box1")
	require.NotContains(t, out, "no shape selected")

	press(t, a, "x")
	require.Contains(t, ansi.Strip(a.View()), "no shape selected")
}
