package editor

// Model is the editor state: the tool in use, the selected shape and the
// shapes themselves in z-order (first is bottom-most).
//
// Model is a value. Handlers return a new Model and never modify the shape
// storage of the receiver, so a Model handed to a renderer stays valid.
type Model struct {
	SelectedTool    ToolID
	SelectedShapeID string

	shapes map[string]Shape
	order  []string
}

// NewModel builds a model from shapes listed bottom-to-top. Later shapes
// with a duplicate ID replace earlier ones in place.
func NewModel(tool ToolID, selected string, shapes ...Shape) Model {
	m := Model{
		SelectedTool: tool,
		shapes:       make(map[string]Shape, len(shapes)),
	}
	for _, s := range shapes {
		if _, ok := m.shapes[s.ID]; !ok {
			m.order = append(m.order, s.ID)
		}
		m.shapes[s.ID] = s
	}
	if _, ok := m.shapes[selected]; ok {
		m.SelectedShapeID = selected
	}
	return m
}

// Seed returns the model the editor starts with.
func Seed() Model {
	return NewModel(ToolPointer, "box1",
		Shape{ID: "box1", Name: "box1", L: 0, T: 100, W: 100, H: 100},
		Shape{ID: "box2", Name: "box2", L: 50, T: 110, W: 100, H: 100},
	)
}

// Len returns the number of shapes.
func (m Model) Len() int { return len(m.order) }

// Shape looks up a shape by ID.
func (m Model) Shape(id string) (Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

// Has reports whether id keys a shape.
func (m Model) Has(id string) bool {
	_, ok := m.shapes[id]
	return ok
}

// Shapes returns the shapes bottom-to-top.
func (m Model) Shapes() []Shape {
	out := make([]Shape, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.shapes[id])
	}
	return out
}

// Selected returns the selected shape, if any.
func (m Model) Selected() (Shape, bool) {
	if m.SelectedShapeID == "" {
		return Shape{}, false
	}
	return m.Shape(m.SelectedShapeID)
}

// clone copies the shape storage so the result can be modified freely.
func (m Model) clone() Model {
	out := m
	out.shapes = make(map[string]Shape, len(m.shapes)+1)
	for k, v := range m.shapes {
		out.shapes[k] = v
	}
	out.order = append([]string(nil), m.order...)
	return out
}

// withShape returns a copy of m with s stored under s.ID, appended on top if new.
func (m Model) withShape(s Shape) Model {
	out := m.clone()
	if _, ok := out.shapes[s.ID]; !ok {
		out.order = append(out.order, s.ID)
	}
	out.shapes[s.ID] = s
	return out
}

// Equal reports whether two models hold the same state.
func (m Model) Equal(o Model) bool {
	if m.SelectedTool != o.SelectedTool || m.SelectedShapeID != o.SelectedShapeID {
		return false
	}
	if len(m.order) != len(o.order) {
		return false
	}
	for i, id := range m.order {
		if o.order[i] != id || m.shapes[id] != o.shapes[id] {
			return false
		}
	}
	return true
}
