package editor

// DefaultShapeSize is the width and height of a freshly painted shape.
const DefaultShapeSize = 100

// MinShapeSize is the smallest width or height a completed resize may leave.
const MinShapeSize = 1

// ToolID names a drawing tool.
type ToolID string

const (
	ToolPointer   ToolID = "pointerTool"
	ToolRectangle ToolID = "rectangleTool"
)

// Tools lists the tools offered by the control panel, in display order.
func Tools() []ToolID {
	return []ToolID{ToolPointer, ToolRectangle}
}

// Label returns a short display name for the tool.
func (t ToolID) Label() string {
	switch t {
	case ToolPointer:
		return "Pointer"
	case ToolRectangle:
		return "Rectangle"
	default:
		return string(t)
	}
}

// PendingChange is the uncommitted delta of an in-progress drag or resize.
// A field that was never set reads as zero.
type PendingChange struct {
	DragX  int
	DragY  int
	Left   int
	Right  int
	Top    int
	Bottom int
}

// IsZero reports whether no interaction is in progress.
func (p PendingChange) IsZero() bool {
	return p == PendingChange{}
}

// Shape is one rectangle on the canvas. L and T are absolute canvas units.
type Shape struct {
	ID      string
	Name    string
	L       int
	T       int
	W       int
	H       int
	DragX   int
	DragY   int
	Pending PendingChange
}

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	L, T, W, H int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.L + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.T + r.H }

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.L && x < r.Right() && y >= r.T && y < r.Bottom()
}

// Bounds returns the committed geometry.
func (s Shape) Bounds() Rect {
	return Rect{L: s.L, T: s.T, W: s.W, H: s.H}
}

// Preview returns the geometry the shape would have if its pending change
// were committed now. Drag and resize deltas both apply; the signal handlers
// overwrite the pending change, so at most one kind is non-zero in practice.
func (s Shape) Preview() Rect {
	r := resized(s.Bounds(), s.Pending)
	r.L += s.Pending.DragX
	r.T += s.Pending.DragY
	return r
}

// resized applies edge offsets: the left and top edges move the origin and
// shrink the size by the same amount, right and bottom grow it.
func resized(r Rect, p PendingChange) Rect {
	left, top := p.Left, p.Top
	w := r.W + p.Right + (-1 * left)
	if w < MinShapeSize {
		if left != 0 {
			left -= MinShapeSize - w
		}
		w = MinShapeSize
	}
	h := r.H + (-1 * top) + p.Bottom
	if h < MinShapeSize {
		if top != 0 {
			top -= MinShapeSize - h
		}
		h = MinShapeSize
	}
	return Rect{L: r.L + left, T: r.T + top, W: w, H: h}
}
