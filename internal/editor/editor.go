package editor

import (
	"fmt"

	"github.com/google/uuid"
)

// IDFunc generates candidate shape keys.
type IDFunc func() string

// maxIDAttempts bounds the collision retry loop in Paint.
const maxIDAttempts = 16

// Editor owns the editor model and applies the handler contract to it.
// Every successful handler that changes the model fires OnChange once.
//
// Editor is not safe for concurrent use.
type Editor struct {
	model    Model
	offset   Point
	newID    IDFunc
	onChange func(Model)
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDFunc replaces the default uuid key generator.
func WithIDFunc(fn IDFunc) Option {
	return func(e *Editor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithOnChange registers the reproject trigger.
func WithOnChange(fn func(Model)) Option {
	return func(e *Editor) { e.onChange = fn }
}

// WithDrawingOffset sets the drawing surface origin subtracted by Paint.
func WithDrawingOffset(p Point) Option {
	return func(e *Editor) { e.offset = p }
}

// New returns an editor holding m.
func New(m Model, opts ...Option) *Editor {
	e := &Editor{model: m, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the current model.
func (e *Editor) Model() Model { return e.model }

// DrawingOffset returns the drawing surface origin.
func (e *Editor) DrawingOffset() Point { return e.offset }

// SetDrawingOffset records where the drawing surface starts, in canvas units.
// The layout calls it whenever the surface moves.
func (e *Editor) SetDrawingOffset(p Point) { e.offset = p }

func (e *Editor) commit(next Model, err error) error {
	if err != nil {
		return err
	}
	if next.Equal(e.model) {
		return nil
	}
	e.model = next
	if e.onChange != nil {
		e.onChange(next)
	}
	return nil
}

// Replace swaps in a whole model, e.g. one loaded from the drawing library.
func (e *Editor) Replace(m Model) {
	_ = e.commit(m, nil)
}

// Paint inserts a new shape under a fresh key and returns the key.
func (e *Editor) Paint(ev PaintEvent) (string, error) {
	id, err := e.freshID()
	if err != nil {
		return "", err
	}
	if err := e.commit(e.model.Paint(id, ev, e.offset)); err != nil {
		return "", err
	}
	return id, nil
}

func (e *Editor) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := e.newID()
		if id != "" && !e.model.Has(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free shape id after %d attempts: %w", maxIDAttempts, ErrDuplicateShape)
}

func (e *Editor) Select(id string) error {
	return e.commit(e.model.Select(id))
}

func (e *Editor) DragSignal(id string, d Delta) error {
	return e.commit(e.model.DragSignal(id, d))
}

func (e *Editor) DragComplete(id string) error {
	return e.commit(e.model.DragComplete(id))
}

func (e *Editor) ResizeSignal(id string, d EdgeDelta) error {
	return e.commit(e.model.ResizeSignal(id, d))
}

func (e *Editor) ResizeComplete(id string) error {
	return e.commit(e.model.ResizeComplete(id))
}

func (e *Editor) ChangeTool(tool ToolID) {
	_ = e.commit(e.model.ChangeTool(tool), nil)
}

func (e *Editor) ChangeAttribute(name, raw string) error {
	return e.commit(e.model.ChangeAttribute(name, raw))
}

func (e *Editor) DeleteShape(id string) error {
	return e.commit(e.model.DeleteShape(id))
}
