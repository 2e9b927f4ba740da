package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	m := Seed()
	require.Equal(t, ToolPointer, m.SelectedTool)
	require.Equal(t, "box1", m.SelectedShapeID)
	require.Equal(t, 2, m.Len())

	shapes := m.Shapes()
	require.Equal(t, "box1", shapes[0].ID)
	require.Equal(t, Rect{L: 0, T: 100, W: 100, H: 100}, shapes[0].Bounds())
	require.Equal(t, "box2", shapes[1].ID)
	require.Equal(t, Rect{L: 50, T: 110, W: 100, H: 100}, shapes[1].Bounds())
	require.True(t, shapes[1].Pending.IsZero())
}

func TestPaintPosition(t *testing.T) {
	offsets := []Point{{0, 0}, {82, 39}, {-5, 12}}
	viewports := []Point{{0, 0}, {30, -20}, {-100, 7}}
	pointers := []Point{{0, 0}, {400, 250}, {13, 999}}

	n := 0
	for _, off := range offsets {
		for _, vp := range viewports {
			for _, p := range pointers {
				n++
				before := Seed()
				id := "paint-" + string(rune('a'+n%26)) + string(rune('a'+n/26))
				ev := PaintEvent{GlobalX: p.X, GlobalY: p.Y, ViewportLeft: vp.X, ViewportTop: vp.Y}
				after, err := before.Paint(id, ev, off)
				require.NoError(t, err)
				require.Equal(t, before.Len()+1, after.Len())

				s, ok := after.Shape(id)
				require.True(t, ok)
				require.Equal(t, p.X-off.X-vp.X, s.L)
				require.Equal(t, p.Y-off.Y-vp.Y, s.T)
				require.Equal(t, DefaultShapeSize, s.W)
				require.Equal(t, DefaultShapeSize, s.H)
				require.True(t, s.Pending.IsZero())
				require.Equal(t, 2, before.Len(), "input model must not change")
			}
		}
	}
}

func TestPaintDuplicateKey(t *testing.T) {
	m := Seed()
	got, err := m.Paint("box1", PaintEvent{}, Point{})
	require.ErrorIs(t, err, ErrDuplicateShape)
	require.True(t, got.Equal(m))
}

func TestSelect(t *testing.T) {
	m, err := Seed().Select("box2")
	require.NoError(t, err)
	require.Equal(t, "box2", m.SelectedShapeID)

	same, err := m.Select("ghost")
	require.ErrorIs(t, err, ErrShapeNotFound)
	require.Equal(t, "box2", same.SelectedShapeID)
}

func TestDragSignalOverwrites(t *testing.T) {
	d := Delta{DragX: 7, DragY: -2}
	m, err := Seed().DragSignal("box1", d)
	require.NoError(t, err)
	first, _ := m.Shape("box1")

	for i := 0; i < 3; i++ {
		m, err = m.DragSignal("box1", d)
		require.NoError(t, err)
	}
	again, _ := m.Shape("box1")
	require.Equal(t, first.Pending, again.Pending)
	require.Equal(t, PendingChange{DragX: 7, DragY: -2}, again.Pending)
	require.Equal(t, 0, again.L, "signal must not move the shape")
	require.Equal(t, 100, again.T)
}

func TestDragComplete(t *testing.T) {
	m := NewModel(ToolPointer, "", Shape{ID: "s", L: 10, T: 20, W: 100, H: 100})
	m, err := m.DragSignal("s", Delta{DragX: 5, DragY: -3})
	require.NoError(t, err)
	m, err = m.DragComplete("s")
	require.NoError(t, err)

	s, _ := m.Shape("s")
	require.Equal(t, 15, s.L)
	require.Equal(t, 17, s.T)
	require.Equal(t, PendingChange{DragX: 0, DragY: 0}, s.Pending)
}

func TestResizeComplete(t *testing.T) {
	m := NewModel(ToolPointer, "", Shape{ID: "s", L: 0, T: 0, W: 100, H: 100})
	m, err := m.ResizeSignal("s", EdgeDelta{Left: 10, Right: 20})
	require.NoError(t, err)

	s, _ := m.Shape("s")
	require.Equal(t, Rect{L: 0, T: 0, W: 100, H: 100}, s.Bounds(), "signal is preview only")
	require.Equal(t, Rect{L: 10, T: 0, W: 110, H: 100}, s.Preview())

	m, err = m.ResizeComplete("s")
	require.NoError(t, err)
	s, _ = m.Shape("s")
	require.Equal(t, 10, s.L)
	require.Equal(t, 110, s.W)
	require.Equal(t, 0, s.T)
	require.Equal(t, 100, s.H)
	require.True(t, s.Pending.IsZero())
}

func TestResizeVertical(t *testing.T) {
	m := NewModel(ToolPointer, "", Shape{ID: "s", L: 5, T: 50, W: 40, H: 60})
	m, _ = m.ResizeSignal("s", EdgeDelta{Top: -10, Bottom: 5})
	m, err := m.ResizeComplete("s")
	require.NoError(t, err)
	s, _ := m.Shape("s")
	require.Equal(t, Rect{L: 5, T: 40, W: 40, H: 75}, s.Bounds())
}

func TestResizeClampsToMinimum(t *testing.T) {
	m := NewModel(ToolPointer, "", Shape{ID: "s", L: 0, T: 0, W: 100, H: 100})

	// left edge dragged past the right edge
	got, _ := m.ResizeSignal("s", EdgeDelta{Left: 150})
	got, _ = got.ResizeComplete("s")
	s, _ := got.Shape("s")
	require.Equal(t, MinShapeSize, s.W)
	require.Equal(t, 100-MinShapeSize, s.L, "right edge stays put")

	// bottom edge dragged above the top edge
	got, _ = m.ResizeSignal("s", EdgeDelta{Bottom: -300})
	got, _ = got.ResizeComplete("s")
	s, _ = got.Shape("s")
	require.Equal(t, MinShapeSize, s.H)
	require.Equal(t, 0, s.T)
}

func TestHandlersUnknownShape(t *testing.T) {
	m := Seed()
	calls := map[string]func() (Model, error){
		"drag":            func() (Model, error) { return m.DragSignal("nope", Delta{DragX: 1}) },
		"drag complete":   func() (Model, error) { return m.DragComplete("nope") },
		"resize":          func() (Model, error) { return m.ResizeSignal("nope", EdgeDelta{Left: 1}) },
		"resize complete": func() (Model, error) { return m.ResizeComplete("nope") },
		"delete":          func() (Model, error) { return m.DeleteShape("nope") },
	}
	for name, call := range calls {
		got, err := call()
		require.Truef(t, errors.Is(err, ErrShapeNotFound), "%s: err = %v", name, err)
		require.Truef(t, got.Equal(m), "%s changed the model", name)
	}
}

func TestChangeToolUnconditional(t *testing.T) {
	m := Seed().ChangeTool(ToolRectangle)
	require.Equal(t, ToolRectangle, m.SelectedTool)
	require.Equal(t, "box1", m.SelectedShapeID)

	m.SelectedShapeID = ""
	m = m.ChangeTool("lassoTool")
	require.Equal(t, ToolID("lassoTool"), m.SelectedTool)
}

func TestDeleteShapeClearsSelection(t *testing.T) {
	m, err := Seed().DeleteShape("box1")
	require.NoError(t, err)
	require.Equal(t, "", m.SelectedShapeID)
	require.False(t, m.Has("box1"))
	require.Equal(t, 1, m.Len())

	m, err = Seed().DeleteShape("box2")
	require.NoError(t, err)
	require.Equal(t, "box1", m.SelectedShapeID)
}

func TestNewModelDropsDanglingSelection(t *testing.T) {
	m := NewModel(ToolPointer, "missing", Shape{ID: "a", W: 1, H: 1})
	require.Equal(t, "", m.SelectedShapeID)
}
