// Package view projects the editor model onto a declarative tree of plain
// records. The tree says what is on screen and which callbacks each region
// receives; internal/tui draws it.
package view

import (
	"sort"
	"strings"

	"github.com/jask/drawdemo/internal/editor"
)

// Auto marks an inset edge that is derived from the opposite edge and Width.
const Auto = -1

// Class names shared by the tree and the theme's style table.
const (
	ClassNoSelect   = "noSelect"
	ClassAppContent = "appContent"
	ClassShadowy    = "shadowy"
)

// ClassSet is a set of style class names.
type ClassSet map[string]bool

// Classes builds a set from names.
func Classes(names ...string) ClassSet {
	cs := make(ClassSet, len(names))
	for _, n := range names {
		cs[n] = true
	}
	return cs
}

// Names returns the set members in sorted order.
func (cs ClassSet) Names() []string {
	out := make([]string, 0, len(cs))
	for n, on := range cs {
		if on {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

func (cs ClassSet) String() string { return strings.Join(cs.Names(), " ") }

// Inset positions a region inside its parent, in cells. Width is used only
// when Left is Auto; otherwise the region stretches between Left and Right.
type Inset struct {
	Left   int
	Top    int
	Right  int
	Bottom int
	Width  int
}

// Rect is an absolute rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inner shrinks r by n cells on every side.
func (r Rect) Inner(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Resolve places the inset inside parent.
func (in Inset) Resolve(parent Rect) Rect {
	var x, w int
	if in.Left == Auto {
		w = in.Width
		x = parent.W - in.Right - w
	} else {
		x = in.Left
		w = parent.W - in.Left - in.Right
	}
	y := in.Top
	h := parent.H - in.Top - in.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: parent.X + x, Y: parent.Y + y, W: w, H: h}
}

// Callback types carried by the tree.
type (
	PaintFunc           func(ev editor.PaintEvent)
	ShapeFunc           func(id string)
	DragSignalFunc      func(id string, d editor.Delta)
	ResizeSignalFunc    func(id string, d editor.EdgeDelta)
	ToolChangeFunc      func(tool editor.ToolID)
	AttributeChangeFunc func(name, raw string)
)

// Content is the body of a BorderView: a Designer or a ToolBox.
type Content interface {
	isContent()
}

// Designer is the drawing surface.
type Designer struct {
	Tool            editor.ToolID
	Shapes          []editor.Shape
	SelectedShapeID string

	OnPaint                 PaintFunc
	OnMouseDownShapeID      ShapeFunc
	OnDragSignalShapeID     DragSignalFunc
	OnDragCompleteShapeID   ShapeFunc
	OnResizeSignalShapeID   ResizeSignalFunc
	OnResizeCompleteShapeID ShapeFunc
}

// ToolBox is the control panel.
type ToolBox struct {
	SelectedTool  editor.ToolID
	SelectedShape *editor.Shape

	OnToolChange      ToolChangeFunc
	OnAttributeChange AttributeChangeFunc
}

func (Designer) isContent() {}
func (ToolBox) isContent() {}

// BorderView is a bordered panel holding one content region.
type BorderView struct {
	Classes ClassSet
	Frame   Inset
	Content Content
}

// Tree is the whole editor screen.
type Tree struct {
	Classes       ClassSet
	Frame         Inset
	DesignerPanel BorderView
	ControlPanel  BorderView
}

// Designer returns the drawing surface content.
func (t Tree) Designer() Designer {
	d, _ := t.DesignerPanel.Content.(Designer)
	return d
}

// ToolBox returns the control panel content.
func (t Tree) ToolBox() ToolBox {
	tb, _ := t.ControlPanel.Content.(ToolBox)
	return tb
}
