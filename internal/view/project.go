package view

import "github.com/jask/drawdemo/internal/editor"

// Layout sizes the two panels, in cells.
type Layout struct {
	Margin     int
	PanelWidth int
}

// DefaultLayout returns the layout used when none is configured.
func DefaultLayout() Layout {
	return Layout{Margin: 1, PanelWidth: 30}
}

// Callbacks are the handlers handed to the two panels.
type Callbacks struct {
	OnPaint                 PaintFunc
	OnMouseDownShapeID      ShapeFunc
	OnDragSignalShapeID     DragSignalFunc
	OnDragCompleteShapeID   ShapeFunc
	OnResizeSignalShapeID   ResizeSignalFunc
	OnResizeCompleteShapeID ShapeFunc
	OnToolChange            ToolChangeFunc
	OnAttributeChange       AttributeChangeFunc
}

// Bind wires every callback to the editor. Handler errors are passed to
// onErr, which may be nil.
func Bind(e *editor.Editor, onErr func(error)) Callbacks {
	report := func(err error) {
		if err != nil && onErr != nil {
			onErr(err)
		}
	}
	return Callbacks{
		OnPaint: func(ev editor.PaintEvent) {
			_, err := e.Paint(ev)
			report(err)
		},
		OnMouseDownShapeID: func(id string) { report(e.Select(id)) },
		OnDragSignalShapeID: func(id string, d editor.Delta) {
			report(e.DragSignal(id, d))
		},
		OnDragCompleteShapeID: func(id string) { report(e.DragComplete(id)) },
		OnResizeSignalShapeID: func(id string, d editor.EdgeDelta) {
			report(e.ResizeSignal(id, d))
		},
		OnResizeCompleteShapeID: func(id string) { report(e.ResizeComplete(id)) },
		OnToolChange:            func(tool editor.ToolID) { e.ChangeTool(tool) },
		OnAttributeChange: func(name, raw string) {
			report(e.ChangeAttribute(name, raw))
		},
	}
}

// Project maps the model to the editor tree. It has no side effects and
// returns structurally equal trees for equal models.
func Project(m editor.Model, l Layout, cb Callbacks) Tree {
	var selected *editor.Shape
	if s, ok := m.Selected(); ok {
		selected = &s
	}
	return Tree{
		Classes: Classes(ClassNoSelect, ClassAppContent),
		Frame:   Inset{},
		DesignerPanel: BorderView{
			Classes: Classes(ClassShadowy),
			Frame: Inset{
				Left:   l.Margin,
				Top:    l.Margin,
				Right:  l.PanelWidth + 2*l.Margin,
				Bottom: l.Margin,
			},
			Content: Designer{
				Tool:                    m.SelectedTool,
				Shapes:                  m.Shapes(),
				SelectedShapeID:         m.SelectedShapeID,
				OnPaint:                 cb.OnPaint,
				OnMouseDownShapeID:      cb.OnMouseDownShapeID,
				OnDragSignalShapeID:     cb.OnDragSignalShapeID,
				OnDragCompleteShapeID:   cb.OnDragCompleteShapeID,
				OnResizeSignalShapeID:   cb.OnResizeSignalShapeID,
				OnResizeCompleteShapeID: cb.OnResizeCompleteShapeID,
			},
		},
		ControlPanel: BorderView{
			Classes: Classes(ClassShadowy),
			Frame: Inset{
				Left:   Auto,
				Right:  l.Margin,
				Top:    l.Margin,
				Width:  l.PanelWidth,
				Bottom: l.Margin,
			},
			Content: ToolBox{
				SelectedTool:      m.SelectedTool,
				SelectedShape:     selected,
				OnToolChange:      cb.OnToolChange,
				OnAttributeChange: cb.OnAttributeChange,
			},
		},
	}
}
