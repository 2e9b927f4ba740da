package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangeAttributeParsesNumbers(t *testing.T) {
	m, err := Seed().ChangeAttribute("w", "150")
	require.NoError(t, err)
	s, _ := m.Shape("box1")
	require.Equal(t, 150, s.W)

	m, err = m.ChangeAttribute("name", "box3")
	require.NoError(t, err)
	s, _ = m.Shape("box1")
	require.Equal(t, "box3", s.Name)
}

func TestChangeAttributeLeadingInteger(t *testing.T) {
	cases := map[string]int{
		"42":     42,
		"  42px": 42,
		"-7":     -7,
		"+3.9":   3,
	}
	for raw, want := range cases {
		m, err := Seed().ChangeAttribute("l", raw)
		require.NoError(t, err, raw)
		s, _ := m.Shape("box1")
		require.Equal(t, want, s.L, raw)
	}
}

func TestChangeAttributeNameKeepsDigits(t *testing.T) {
	// The name attribute is a string; digits are not converted.
	m, err := Seed().ChangeAttribute("name", "150")
	require.NoError(t, err)
	s, _ := m.Shape("box1")
	require.Equal(t, "150", s.Name)
}

func TestChangeAttributeWithoutSelection(t *testing.T) {
	m := Seed()
	m.SelectedShapeID = ""
	got, err := m.ChangeAttribute("w", "150")
	require.NoError(t, err)
	require.True(t, got.Equal(m))
}

// Behaviour change versus the permissive prototype: a numeric field no
// longer swallows non-numeric text.
func TestChangeAttributeRejectsNonNumeric(t *testing.T) {
	m := Seed()
	got, err := m.ChangeAttribute("w", "wide")
	require.ErrorIs(t, err, ErrInvalidValue)
	require.True(t, got.Equal(m))
}

// Behaviour change versus the permissive prototype: only known attributes
// can be written.
func TestChangeAttributeUnknownName(t *testing.T) {
	m := Seed()
	got, err := m.ChangeAttribute("wdth", "10")
	require.ErrorIs(t, err, ErrUnknownAttribute)
	require.Contains(t, err.Error(), `did you mean "w"`)
	require.True(t, got.Equal(m))

	_, err = m.ChangeAttribute("colour", "red")
	require.ErrorIs(t, err, ErrUnknownAttribute)
	require.NotContains(t, err.Error(), "did you mean")
}

func TestShapeValue(t *testing.T) {
	s := Shape{Name: "n", L: 1, T: 2, W: 3, H: 4, DragX: 5, DragY: 6}
	want := []string{"n", "1", "2", "3", "4", "5", "6"}
	for i, a := range Attributes() {
		require.Equal(t, want[i], s.Value(a), string(a))
	}
}
