package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/drawdemo/internal/config"
)

type Action string

// Binding maps keys to an action within a scope. Bindings with no Help are
// matched but left out of the footer.
type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal   = "global"
	scopeCanvas   = "canvas"
	scopeToolbox  = "toolbox"
	scopeAttrEdit = "attr_edit"
)

const (
	actionQuit          Action = "quit"
	actionFocusNext     Action = "focus_next"
	actionToolPointer   Action = "tool_pointer"
	actionToolRectangle Action = "tool_rectangle"
	actionSave          Action = "save"
	actionReload        Action = "reload"
	actionDelete        Action = "delete"
	actionNudge         Action = "nudge"
	actionNudgeLeft     Action = "nudge_left"
	actionNudgeRight    Action = "nudge_right"
	actionNudgeUp       Action = "nudge_up"
	actionNudgeDown     Action = "nudge_down"
	actionPan           Action = "pan"
	actionPanLeft       Action = "pan_left"
	actionPanRight      Action = "pan_right"
	actionPanUp         Action = "pan_up"
	actionPanDown       Action = "pan_down"
	actionPanReset      Action = "pan_reset"
	actionNavigate      Action = "navigate"
	actionCursorUp      Action = "cursor_up"
	actionCursorDown    Action = "cursor_down"
	actionEdit          Action = "edit"
	actionConfirm       Action = "confirm"
	actionCancel        Action = "cancel"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionFocusNext, []string{"tab", "shift+tab"}, "focus")
	reg(scopeGlobal, actionToolPointer, []string{"p"}, "pointer")
	reg(scopeGlobal, actionToolRectangle, []string{"r"}, "rectangle")
	reg(scopeGlobal, actionSave, []string{"ctrl+s"}, "save")
	reg(scopeGlobal, actionReload, []string{"ctrl+o"}, "reload")

	// The display-only entries name a key family; the per-direction
	// bindings below them carry the real keys.
	reg(scopeCanvas, actionNudge, []string{"arrows"}, "nudge")
	reg(scopeCanvas, actionNudgeLeft, []string{"left"}, "")
	reg(scopeCanvas, actionNudgeRight, []string{"right"}, "")
	reg(scopeCanvas, actionNudgeUp, []string{"up"}, "")
	reg(scopeCanvas, actionNudgeDown, []string{"down"}, "")
	reg(scopeCanvas, actionPan, []string{"H/J/K/L"}, "pan")
	reg(scopeCanvas, actionPanLeft, []string{"H"}, "")
	reg(scopeCanvas, actionPanDown, []string{"J"}, "")
	reg(scopeCanvas, actionPanUp, []string{"K"}, "")
	reg(scopeCanvas, actionPanRight, []string{"L"}, "")
	reg(scopeCanvas, actionPanReset, []string{"0"}, "recenter")
	reg(scopeCanvas, actionDelete, []string{"x", "delete"}, "delete")

	reg(scopeToolbox, actionNavigate, []string{"j/k"}, "navigate")
	reg(scopeToolbox, actionCursorUp, []string{"k", "up"}, "")
	reg(scopeToolbox, actionCursorDown, []string{"j", "down"}, "")
	reg(scopeToolbox, actionEdit, []string{"enter", "e"}, "edit")
	reg(scopeToolbox, actionDelete, []string{"x", "delete"}, "delete")

	reg(scopeAttrEdit, actionConfirm, []string{"enter"}, "apply")
	reg(scopeAttrEdit, actionCancel, []string{"esc"}, "cancel")
	reg(scopeAttrEdit, actionQuit, []string{"ctrl+c"}, "quit")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	normKeys := normalizeKeyList(b.Keys)
	if len(normKeys) == 0 {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}
		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup finds the binding for keyName in scope, falling back to the global
// scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal && scope != scopeAttrEdit {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// HelpBindings returns the footer entries for scope followed by the global
// ones it does not shadow.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	var out []key.Binding
	seen := make(map[Action]bool)
	add := func(items []Binding) {
		for _, b := range items {
			if b.Help == "" || len(b.Keys) == 0 || seen[b.Action] {
				continue
			}
			seen[b.Action] = true
			out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
		}
	}
	add(r.BindingsForScope(scope))
	if scope != scopeGlobal && scope != scopeAttrEdit {
		add(r.BindingsForScope(scopeGlobal))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		// A single uppercase rune stays distinct from its lowercase form.
		return trimmed
	}
	if strings.Contains(trimmed, "/") {
		// Display label for a key family.
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// ApplyKeybindingConfig replaces the keys of configured actions. It fails on
// unknown scopes or actions, duplicate entries, and keys claimed by two
// actions in one scope.
func (r *KeyRegistry) ApplyKeybindingConfig(items []config.KeyBinding) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("key override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("key override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("key override scope=%q action=%q: keys are required", scope, action)
		}
		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("key override scope=%q action=%q: unknown scope", scope, action)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("key override scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("key override scope=%q action=%q: duplicated entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		seen := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("key override conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
	return nil
}

// ExportKeybindingConfig returns the current bindings in config form, sorted
// by scope and action.
func (r *KeyRegistry) ExportKeybindingConfig() []config.KeyBinding {
	if r == nil {
		return nil
	}
	var out []config.KeyBinding
	for scope, bindings := range r.bindingsByScope {
		for _, b := range bindings {
			out = append(out, config.KeyBinding{
				Scope:  scope,
				Action: string(b.Action),
				Keys:   append([]string(nil), b.Keys...),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Action < out[j].Action
	})
	return out
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
