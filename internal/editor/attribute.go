package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrUnknownAttribute is returned for attribute names outside Attributes().
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrInvalidValue is returned when a numeric attribute gets a value with
	// no leading integer.
	ErrInvalidValue = errors.New("invalid attribute value")
)

// Attribute names an editable shape field.
type Attribute string

const (
	AttrName   Attribute = "name"
	AttrLeft   Attribute = "l"
	AttrTop    Attribute = "t"
	AttrWidth  Attribute = "w"
	AttrHeight Attribute = "h"
	AttrDragX  Attribute = "dragX"
	AttrDragY  Attribute = "dragY"
)

// Attributes lists the editable attributes in display order.
func Attributes() []Attribute {
	return []Attribute{AttrName, AttrLeft, AttrTop, AttrWidth, AttrHeight, AttrDragX, AttrDragY}
}

// Numeric reports whether the attribute holds an integer.
func (a Attribute) Numeric() bool {
	return a != AttrName
}

// ParseAttribute resolves name to an Attribute. Unknown names produce an
// error wrapping ErrUnknownAttribute, with the closest known name suggested
// when one is near.
func ParseAttribute(name string) (Attribute, error) {
	for _, a := range Attributes() {
		if string(a) == name {
			return a, nil
		}
	}
	if s := suggestAttribute(name); s != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownAttribute, name, s)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownAttribute, name)
}

// Label returns the long name shown in the control panel.
func (a Attribute) Label() string {
	switch a {
	case AttrLeft:
		return "left"
	case AttrTop:
		return "top"
	case AttrWidth:
		return "width"
	case AttrHeight:
		return "height"
	default:
		return string(a)
	}
}

func suggestAttribute(name string) Attribute {
	lower := strings.ToLower(strings.TrimSpace(name))
	if len(lower) < 2 {
		return ""
	}
	var best Attribute
	bestDist := -1
	for _, a := range Attributes() {
		for _, cand := range []string{string(a), a.Label()} {
			d := levenshtein.ComputeDistance(lower, strings.ToLower(cand))
			if bestDist < 0 || d < bestDist {
				best, bestDist = a, d
			}
		}
	}
	if bestDist > 2 {
		return ""
	}
	return best
}

// Value returns the attribute's current value formatted for editing.
func (s Shape) Value(a Attribute) string {
	switch a {
	case AttrName:
		return s.Name
	case AttrLeft:
		return strconv.Itoa(s.L)
	case AttrTop:
		return strconv.Itoa(s.T)
	case AttrWidth:
		return strconv.Itoa(s.W)
	case AttrHeight:
		return strconv.Itoa(s.H)
	case AttrDragX:
		return strconv.Itoa(s.DragX)
	case AttrDragY:
		return strconv.Itoa(s.DragY)
	default:
		return ""
	}
}

func (s *Shape) set(a Attribute, raw string) error {
	if !a.Numeric() {
		s.Name = raw
		return nil
	}
	n, ok := parseLeadingInt(raw)
	if !ok {
		return fmt.Errorf("%w %q for %s", ErrInvalidValue, raw, a)
	}
	switch a {
	case AttrLeft:
		s.L = n
	case AttrTop:
		s.T = n
	case AttrWidth:
		s.W = n
	case AttrHeight:
		s.H = n
	case AttrDragX:
		s.DragX = n
	case AttrDragY:
		s.DragY = n
	}
	return nil
}

// ChangeAttribute assigns raw to the selected shape's attribute. Without a
// selection it does nothing. Values are not range checked.
func (m Model) ChangeAttribute(name, raw string) (Model, error) {
	s, ok := m.Selected()
	if !ok {
		return m, nil
	}
	a, err := ParseAttribute(name)
	if err != nil {
		return m, err
	}
	if err := s.set(a, raw); err != nil {
		return m, err
	}
	return m.withShape(s), nil
}

// parseLeadingInt reads an optionally signed base-10 integer from the start
// of s after leading whitespace, ignoring anything that follows it.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
