package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeNotFound is returned when a handler names a shape the model
	// does not hold. The model is left unchanged.
	ErrShapeNotFound = errors.New("shape not found")
	// ErrDuplicateShape is returned when a paint would reuse an existing key.
	ErrDuplicateShape = errors.New("shape id already in use")
)

// Point is a position in canvas units.
type Point struct {
	X, Y int
}

// PaintEvent is a pointer-down on the drawing surface. Global coordinates are
// in canvas units relative to the terminal origin; the viewport offset is the
// surface's current pan.
type PaintEvent struct {
	GlobalX      int
	GlobalY      int
	ViewportLeft int
	ViewportTop  int
}

// Delta is the payload of a drag signal.
type Delta struct {
	DragX int
	DragY int
}

// EdgeDelta is the payload of a resize signal. Unset edges are zero.
type EdgeDelta struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Paint inserts a new DefaultShapeSize square under id at the pointer
// position, less the drawing surface offset and the viewport pan.
func (m Model) Paint(id string, ev PaintEvent, offset Point) (Model, error) {
	if m.Has(id) {
		return m, fmt.Errorf("paint %q: %w", id, ErrDuplicateShape)
	}
	s := Shape{
		ID:   id,
		Name: "block",
		L:    ev.GlobalX - offset.X - ev.ViewportLeft,
		T:    ev.GlobalY - offset.Y - ev.ViewportTop,
		W:    DefaultShapeSize,
		H:    DefaultShapeSize,
	}
	return m.withShape(s), nil
}

// Select makes id the selected shape.
func (m Model) Select(id string) (Model, error) {
	if !m.Has(id) {
		return m, fmt.Errorf("select %q: %w", id, ErrShapeNotFound)
	}
	m.SelectedShapeID = id
	return m, nil
}

// DragSignal replaces the shape's pending change with the drag delta.
// Committed geometry is untouched.
func (m Model) DragSignal(id string, d Delta) (Model, error) {
	s, ok := m.Shape(id)
	if !ok {
		return m, fmt.Errorf("drag %q: %w", id, ErrShapeNotFound)
	}
	s.Pending = PendingChange{DragX: d.DragX, DragY: d.DragY}
	return m.withShape(s), nil
}

// DragComplete folds the pending drag into the shape's position and leaves a
// zero drag delta behind.
func (m Model) DragComplete(id string) (Model, error) {
	s, ok := m.Shape(id)
	if !ok {
		return m, fmt.Errorf("drag complete %q: %w", id, ErrShapeNotFound)
	}
	p := s.Pending
	s.L += p.DragX
	s.T += p.DragY
	s.Pending = PendingChange{DragX: 0, DragY: 0}
	return m.withShape(s), nil
}

// ResizeSignal replaces the shape's pending change with the edge offsets,
// verbatim. It is a preview only.
func (m Model) ResizeSignal(id string, d EdgeDelta) (Model, error) {
	s, ok := m.Shape(id)
	if !ok {
		return m, fmt.Errorf("resize %q: %w", id, ErrShapeNotFound)
	}
	s.Pending = PendingChange{Left: d.Left, Right: d.Right, Top: d.Top, Bottom: d.Bottom}
	return m.withShape(s), nil
}

// ResizeComplete commits the pending edge offsets:
//
//	w' = w + right - left    l' = l + left
//	h' = h - top + bottom    t' = t + top
//
// A size that would fall below MinShapeSize is clamped by holding back the
// moving edge.
func (m Model) ResizeComplete(id string) (Model, error) {
	s, ok := m.Shape(id)
	if !ok {
		return m, fmt.Errorf("resize complete %q: %w", id, ErrShapeNotFound)
	}
	r := resized(s.Bounds(), s.Pending)
	s.L, s.T, s.W, s.H = r.L, r.T, r.W, r.H
	s.Pending = PendingChange{}
	return m.withShape(s), nil
}

// ChangeTool switches the active tool. Any tool is accepted.
func (m Model) ChangeTool(tool ToolID) Model {
	m.SelectedTool = tool
	return m
}

// DeleteShape removes a shape, clearing the selection if it pointed there.
func (m Model) DeleteShape(id string) (Model, error) {
	if !m.Has(id) {
		return m, fmt.Errorf("delete %q: %w", id, ErrShapeNotFound)
	}
	out := m.clone()
	delete(out.shapes, id)
	for i, v := range out.order {
		if v == id {
			out.order = append(out.order[:i], out.order[i+1:]...)
			break
		}
	}
	if out.SelectedShapeID == id {
		out.SelectedShapeID = ""
	}
	return out, nil
}
