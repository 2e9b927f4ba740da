package tui

import (
	"github.com/NimbleMarkets/ntcharts/canvas"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/drawdemo/internal/editor"
	"github.com/jask/drawdemo/internal/view"
)

// gridStep is the canvas-unit spacing of the background dots.
const gridStep = 100

type gestureKind int

const (
	gestureDrag gestureKind = iota + 1
	gestureResize
)

type edges struct {
	left, right, top, bottom bool
}

func (e edges) any() bool { return e.left || e.right || e.top || e.bottom }

// gesture is a pointer interaction in progress on one shape. The start
// position is in absolute terminal cells.
type gesture struct {
	kind   gestureKind
	id     string
	startX int
	startY int
	edges  edges
}

// designer turns mouse events on the drawing surface into the callbacks the
// tree hands it, and draws the shapes. Canvas units map to cells through
// cellW and cellH; pan is the viewport offset in canvas units.
type designer struct {
	cellW  int
	cellH  int
	pan    editor.Point
	active *gesture
}

func newDesigner(cellW, cellH int) designer {
	return designer{cellW: max(cellW, 1), cellH: max(cellH, 1)}
}

// box is a shape's footprint in surface cells, inclusive on both ends.
type box struct {
	x0, y0, x1, y1 int
}

func (b box) contains(x, y int) bool {
	return x >= b.x0 && x <= b.x1 && y >= b.y0 && y <= b.y1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (d designer) cells(r editor.Rect) box {
	return box{
		x0: floorDiv(r.L+d.pan.X, d.cellW),
		y0: floorDiv(r.T+d.pan.Y, d.cellH),
		x1: floorDiv(r.L+d.pan.X+max(r.W, 1)-1, d.cellW),
		y1: floorDiv(r.T+d.pan.Y+max(r.H, 1)-1, d.cellH),
	}
}

// hitTest returns the topmost shape under the surface cell and the border
// edges the cell lies on. A one-cell-wide box reports only its right or
// bottom edge.
func (d designer) hitTest(shapes []editor.Shape, x, y int) (editor.Shape, edges, bool) {
	for i := len(shapes) - 1; i >= 0; i-- {
		b := d.cells(shapes[i].Preview())
		if !b.contains(x, y) {
			continue
		}
		e := edges{
			right:  x == b.x1,
			bottom: y == b.y1,
		}
		e.left = x == b.x0 && !e.right
		e.top = y == b.y0 && !e.bottom
		return shapes[i], e, true
	}
	return editor.Shape{}, edges{}, false
}

// HandleMouse routes one mouse event. surface is the designer's content
// rectangle in absolute cells. It reports whether the event was consumed.
func (d *designer) HandleMouse(props view.Designer, surface view.Rect, msg tea.MouseMsg) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !surface.Contains(msg.X, msg.Y) {
			return false
		}
		d.active = nil
		if props.Tool == editor.ToolRectangle {
			if props.OnPaint != nil {
				props.OnPaint(editor.PaintEvent{
					GlobalX:      msg.X * d.cellW,
					GlobalY:      msg.Y * d.cellH,
					ViewportLeft: d.pan.X,
					ViewportTop:  d.pan.Y,
				})
			}
			return true
		}
		s, e, ok := d.hitTest(props.Shapes, msg.X-surface.X, msg.Y-surface.Y)
		if !ok {
			return true
		}
		if props.OnMouseDownShapeID != nil {
			props.OnMouseDownShapeID(s.ID)
		}
		g := &gesture{kind: gestureDrag, id: s.ID, startX: msg.X, startY: msg.Y}
		if e.any() {
			g.kind = gestureResize
			g.edges = e
		}
		d.active = g
		return true

	case tea.MouseActionMotion:
		g := d.active
		if g == nil {
			return false
		}
		dx := (msg.X - g.startX) * d.cellW
		dy := (msg.Y - g.startY) * d.cellH
		switch g.kind {
		case gestureDrag:
			if props.OnDragSignalShapeID != nil {
				props.OnDragSignalShapeID(g.id, editor.Delta{DragX: dx, DragY: dy})
			}
		case gestureResize:
			if props.OnResizeSignalShapeID != nil {
				props.OnResizeSignalShapeID(g.id, g.edges.delta(dx, dy))
			}
		}
		return true

	case tea.MouseActionRelease:
		g := d.active
		if g == nil {
			return false
		}
		d.active = nil
		switch g.kind {
		case gestureDrag:
			if props.OnDragCompleteShapeID != nil {
				props.OnDragCompleteShapeID(g.id)
			}
		case gestureResize:
			if props.OnResizeCompleteShapeID != nil {
				props.OnResizeCompleteShapeID(g.id)
			}
		}
		return true
	}
	return false
}

func (e edges) delta(dx, dy int) editor.EdgeDelta {
	var out editor.EdgeDelta
	if e.left {
		out.Left = dx
	}
	if e.right {
		out.Right = dx
	}
	if e.top {
		out.Top = dy
	}
	if e.bottom {
		out.Bottom = dy
	}
	return out
}

// Pan moves the viewport by whole cells.
func (d *designer) Pan(cols, rows int) {
	d.pan.X += cols * d.cellW
	d.pan.Y += rows * d.cellH
}

type boxRunes struct {
	tl, tr, bl, br, h, v rune
}

var (
	solidRunes  = boxRunes{'┌', '┐', '└', '┘', '─', '│'}
	heavyRunes  = boxRunes{'┏', '┓', '┗', '┛', '━', '┃'}
	dottedRunes = boxRunes{'┌', '┐', '└', '┘', '┄', '┆'}
)

// Render draws the shapes bottom to top on a width x height canvas. A shape
// with a pending change shows a ghost of its committed bounds under the
// preview.
func (d designer) Render(props view.Designer, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	c := canvas.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := ' '
			if d.onGrid(x, y) {
				r = '·'
			}
			c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(r, gridStyle))
		}
	}
	for _, s := range props.Shapes {
		if !s.Pending.IsZero() {
			drawBox(&c, width, height, d.cells(s.Bounds()), dottedRunes, shapeGhostStyle, "", false)
		}
		runes, st := solidRunes, shapeStyle
		if s.ID == props.SelectedShapeID {
			runes, st = heavyRunes, shapeSelectedStyle
		}
		drawBox(&c, width, height, d.cells(s.Preview()), runes, st, s.Name, true)
	}
	return c.View()
}

func (d designer) onGrid(x, y int) bool {
	ux := x*d.cellW - d.pan.X
	uy := y*d.cellH - d.pan.Y
	return ux%gridStep == 0 && uy%gridStep == 0
}

// drawBox draws b clipped to the width x height canvas.
func drawBox(c *canvas.Model, width, height int, b box, runes boxRunes, st lipgloss.Style, label string, fill bool) {
	set := func(x, y int, r rune, s lipgloss.Style) {
		if x < 0 || y < 0 || x >= width || y >= height {
			return
		}
		c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(r, s))
	}
	for y := max(b.y0, 0); y <= min(b.y1, height-1); y++ {
		for x := max(b.x0, 0); x <= min(b.x1, width-1); x++ {
			onLeft, onRight := x == b.x0, x == b.x1
			onTop, onBottom := y == b.y0, y == b.y1
			switch {
			case onTop && onLeft:
				set(x, y, runes.tl, st)
			case onTop && onRight:
				set(x, y, runes.tr, st)
			case onBottom && onLeft:
				set(x, y, runes.bl, st)
			case onBottom && onRight:
				set(x, y, runes.br, st)
			case onTop || onBottom:
				set(x, y, runes.h, st)
			case onLeft || onRight:
				set(x, y, runes.v, st)
			case fill:
				set(x, y, ' ', shapeFillStyle)
			}
		}
	}
	if label == "" || b.y1-b.y0 < 2 {
		return
	}
	y := b.y0 + 1
	for i, r := range []rune(label) {
		x := b.x0 + 1 + i
		if x >= b.x1 {
			break
		}
		set(x, y, r, shapeLabelStyle.Inherit(shapeFillStyle))
	}
}
