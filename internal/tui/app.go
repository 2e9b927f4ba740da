// Package tui is the terminal shell around the editor: it draws the
// projected tree and turns terminal input into tree callbacks.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/drawdemo/internal/config"
	"github.com/jask/drawdemo/internal/editor"
	"github.com/jask/drawdemo/internal/store"
	"github.com/jask/drawdemo/internal/view"
)

// ErrNoLibrary is reported when save or reload is asked for without a
// drawing library.
var ErrNoLibrary = errors.New("no drawing library configured")

// Rows taken by the header and footer.
const chromeRows = 2

// Viewport pan step, in cells.
const (
	panCols = 5
	panRows = 2
)

type focusArea int

const (
	focusCanvas focusArea = iota
	focusToolbox
)

type savedMsg struct {
	name string
	id   string
}

type loadedMsg struct {
	name  string
	model editor.Model
}

type errMsg struct{ error }

// App is the bubbletea model for the editor screen.
type App struct {
	ctx        context.Context
	cfg        config.Config
	editor     *editor.Editor
	editorOpts []editor.Option
	repo       *store.DrawingRepo
	keys       *KeyRegistry
	layout     view.Layout
	cb         view.Callbacks
	tree       view.Tree
	designer   designer
	toolbox    toolbox
	focus      focusArea
	width      int
	height     int

	status    string
	statusErr bool
}

// Option configures an App.
type Option func(*App)

// WithRepo enables save and reload against a drawing library.
func WithRepo(r *store.DrawingRepo) Option {
	return func(a *App) { a.repo = r }
}

// WithKeys replaces the default key registry.
func WithKeys(k *KeyRegistry) Option {
	return func(a *App) {
		if k != nil {
			a.keys = k
		}
	}
}

// WithEditorOptions passes options through to the editor.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(a *App) { a.editorOpts = append(a.editorOpts, opts...) }
}

// New builds the editor screen around m.
func New(ctx context.Context, cfg config.Config, m editor.Model, opts ...Option) *App {
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		keys:     NewKeyRegistry(),
		layout:   view.Layout{Margin: cfg.Layout.Margin, PanelWidth: cfg.Layout.PanelWidth},
		designer: newDesigner(cfg.Canvas.CellWidth, cfg.Canvas.CellHeight),
		toolbox:  newToolbox(),
	}
	for _, opt := range opts {
		opt(a)
	}
	editorOpts := append([]editor.Option{
		editor.WithOnChange(func(editor.Model) { a.reproject() }),
	}, a.editorOpts...)
	a.editor = editor.New(m, editorOpts...)
	a.cb = view.Bind(a.editor, a.reportErr)
	a.reproject()
	return a
}

// Editor returns the editor the screen drives.
func (a *App) Editor() *editor.Editor { return a.editor }

// Tree returns the current projection.
func (a *App) Tree() view.Tree { return a.tree }

func (a *App) reproject() {
	a.tree = view.Project(a.editor.Model(), a.layout, a.cb)
}

func (a *App) reportErr(err error) {
	if err == nil {
		return
	}
	log.Printf("editor: %v", err)
	a.setStatus(err.Error(), true)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

// Resize lays the screen out for a width x height terminal and moves the
// drawing offset to the new surface origin.
func (a *App) Resize(width, height int) {
	a.width, a.height = width, height
	s := a.surface()
	a.editor.SetDrawingOffset(editor.Point{X: s.X * a.designer.cellW, Y: s.Y * a.designer.cellH})
}

func (a *App) root() view.Rect {
	body := view.Rect{X: 0, Y: 1, W: a.width, H: max(a.height-chromeRows, 0)}
	return a.tree.Frame.Resolve(body)
}

func (a *App) designerFrame() view.Rect { return a.tree.DesignerPanel.Frame.Resolve(a.root()) }
func (a *App) controlFrame() view.Rect  { return a.tree.ControlPanel.Frame.Resolve(a.root()) }

// surface is the designer's drawing area in absolute cells.
func (a *App) surface() view.Rect { return a.designerFrame().Inner(1) }

func (a *App) scope() string {
	switch {
	case a.toolbox.editing:
		return scopeAttrEdit
	case a.focus == focusToolbox:
		return scopeToolbox
	default:
		return scopeCanvas
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.Resize(m.Width, m.Height)
	case tea.MouseMsg:
		return a, a.handleMouse(m)
	case tea.KeyMsg:
		return a.handleKey(m)
	case savedMsg:
		a.setStatus(fmt.Sprintf("saved %q", m.name), false)
	case loadedMsg:
		a.designer.active = nil
		a.toolbox.Cancel()
		a.editor.Replace(m.model)
		a.setStatus(fmt.Sprintf("loaded %q", m.name), false)
	case errMsg:
		a.reportErr(m.error)
	default:
		return a, a.toolbox.UpdateInput(msg)
	}
	return a, nil
}

func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	surface := a.surface()
	if a.designer.active != nil {
		a.designer.HandleMouse(a.tree.Designer(), surface, m)
		return nil
	}
	if m.Action == tea.MouseActionPress && surface.Contains(m.X, m.Y) {
		switch m.Button {
		case tea.MouseButtonWheelUp:
			a.designer.Pan(0, 1)
			return nil
		case tea.MouseButtonWheelDown:
			a.designer.Pan(0, -1)
			return nil
		}
	}
	if a.designer.HandleMouse(a.tree.Designer(), surface, m) {
		a.focus = focusCanvas
		if a.toolbox.editing {
			a.toolbox.Cancel()
		}
		return nil
	}
	if a.toolbox.HandleMouse(a.tree.ToolBox(), a.controlFrame().Inner(1), m) {
		a.focus = focusToolbox
	}
	return nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.keys.Lookup(m.String(), a.scope())
	if a.toolbox.editing {
		if b != nil {
			switch b.Action {
			case actionConfirm:
				a.toolbox.Submit(a.tree.ToolBox())
				return a, nil
			case actionCancel:
				a.toolbox.Cancel()
				return a, nil
			case actionQuit:
				return a, tea.Quit
			}
		}
		return a, a.toolbox.UpdateInput(m)
	}
	if b == nil {
		return a, nil
	}

	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionFocusNext:
		if a.focus == focusCanvas {
			a.focus = focusToolbox
		} else {
			a.focus = focusCanvas
		}
	case actionToolPointer:
		a.changeTool(editor.ToolPointer)
	case actionToolRectangle:
		a.changeTool(editor.ToolRectangle)
	case actionSave:
		return a, a.saveCmd()
	case actionReload:
		return a, a.loadCmd()
	case actionDelete:
		if id := a.editor.Model().SelectedShapeID; id != "" {
			a.reportErr(a.editor.DeleteShape(id))
		}
	case actionNudgeLeft:
		a.nudge(-a.designer.cellW, 0)
	case actionNudgeRight:
		a.nudge(a.designer.cellW, 0)
	case actionNudgeUp:
		a.nudge(0, -a.designer.cellH)
	case actionNudgeDown:
		a.nudge(0, a.designer.cellH)
	case actionPanLeft:
		a.designer.Pan(panCols, 0)
	case actionPanRight:
		a.designer.Pan(-panCols, 0)
	case actionPanUp:
		a.designer.Pan(0, panRows)
	case actionPanDown:
		a.designer.Pan(0, -panRows)
	case actionPanReset:
		a.designer.pan = editor.Point{}
	case actionCursorUp:
		a.toolbox.MoveCursor(-1)
	case actionCursorDown:
		a.toolbox.MoveCursor(1)
	case actionEdit:
		return a, a.toolbox.StartEdit(a.tree.ToolBox())
	}
	return a, nil
}

func (a *App) changeTool(tool editor.ToolID) {
	if cb := a.tree.ToolBox().OnToolChange; cb != nil {
		cb(tool)
	}
}

// nudge moves the selection through the same drag signal and completion a
// pointer drag would send.
func (a *App) nudge(dx, dy int) {
	id := a.editor.Model().SelectedShapeID
	if id == "" {
		return
	}
	d := a.tree.Designer()
	if d.OnDragSignalShapeID == nil || d.OnDragCompleteShapeID == nil {
		return
	}
	d.OnDragSignalShapeID(id, editor.Delta{DragX: dx, DragY: dy})
	d.OnDragCompleteShapeID(id)
}

func (a *App) saveCmd() tea.Cmd {
	repo, name, m := a.repo, a.cfg.Session.Name, a.editor.Model()
	return func() tea.Msg {
		if repo == nil {
			return errMsg{ErrNoLibrary}
		}
		id, err := repo.Save(a.ctx, name, m)
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{name: name, id: id}
	}
}

func (a *App) loadCmd() tea.Cmd {
	repo, name := a.repo, a.cfg.Session.Name
	return func() tea.Msg {
		if repo == nil {
			return errMsg{ErrNoLibrary}
		}
		m, err := repo.Load(a.ctx, name)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{name: name, model: m}
	}
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "drawdemo: waiting for window size"
	}
	out := blank(a.width, a.height)

	if r := a.designerFrame(); r.W >= 2 && r.H >= 2 {
		s := r.Inner(1)
		d := a.tree.Designer()
		p := panel{
			Title:   "Designer · " + d.Tool.Label(),
			Classes: a.tree.DesignerPanel.Classes,
			Focused: a.focus == focusCanvas,
			Content: a.designer.Render(d, s.W, s.H),
		}
		out = overlayAt(out, p.Render(r.W, r.H), r.X, r.Y, a.width, a.height)
	}
	if r := a.controlFrame(); r.W >= 2 && r.H >= 2 {
		p := panel{
			Title:   "Toolbox",
			Classes: a.tree.ControlPanel.Classes,
			Focused: a.focus == focusToolbox,
			Content: a.toolbox.Render(a.tree.ToolBox(), r.W-2, a.focus == focusToolbox),
		}
		out = overlayAt(out, p.Render(r.W, r.H), r.X, r.Y, a.width, a.height)
	}

	out = overlayAt(out, a.renderHeader(), 0, 0, a.width, a.height)
	if a.height > 1 {
		out = overlayAt(out, a.renderFooter(a.keys.HelpBindings(a.scope())), 0, a.height-1, a.width, a.height)
	}
	return out
}

func (a *App) renderHeader() string {
	title := titleStyle.Render("drawdemo")
	if name := a.cfg.Session.Name; name != "" {
		title += " " + mutedStyle.Render(name)
	}
	m := a.editor.Model()
	info := statusStyle.Render(fmt.Sprintf("%d shapes", m.Len()))
	if a.designer.pan != (editor.Point{}) {
		info += statusStyle.Render(fmt.Sprintf("  pan %d,%d", a.designer.pan.X, a.designer.pan.Y))
	}
	line := title + "  " + info
	if a.status != "" {
		st := statusOKStyle
		if a.statusErr {
			st = statusErrStyle
		}
		line += "  " + st.Render(strings.ReplaceAll(a.status, "\n", " "))
	}
	return fit(line, a.width)
}

func (a *App) renderFooter(bindings []key.Binding) string {
	bg := colorMantle
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, helpKeyStyle.Render(help.Key)+space+helpDescStyle.Render(help.Desc))
	}
	content := fit(strings.Join(parts, sep), a.width)
	return footerStyle.Width(a.width).Render(content)
}
