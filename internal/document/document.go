// Package document reads and writes drawings as TOML, YAML or JSON files.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jask/drawdemo/internal/editor"
)

// Version is the document schema version written by this package.
const Version = 1

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format selects a codec.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Document is the on-disk form of a drawing.
type Document struct {
	Version         int           `toml:"version" yaml:"version" json:"version"`
	SelectedTool    string        `toml:"selected_tool" yaml:"selected_tool" json:"selected_tool"`
	SelectedShapeID string        `toml:"selected_shape_id,omitempty" yaml:"selected_shape_id,omitempty" json:"selected_shape_id,omitempty"`
	Shapes          []ShapeRecord `toml:"shape" yaml:"shapes" json:"shapes"`
}

// ShapeRecord is one shape, bottom-to-top order given by its position.
type ShapeRecord struct {
	ID    string `toml:"id" yaml:"id" json:"id"`
	Name  string `toml:"name" yaml:"name" json:"name"`
	L     int    `toml:"l" yaml:"l" json:"l"`
	T     int    `toml:"t" yaml:"t" json:"t"`
	W     int    `toml:"w" yaml:"w" json:"w"`
	H     int    `toml:"h" yaml:"h" json:"h"`
	DragX int    `toml:"drag_x,omitempty" yaml:"drag_x,omitempty" json:"drag_x,omitempty"`
	DragY int    `toml:"drag_y,omitempty" yaml:"drag_y,omitempty" json:"drag_y,omitempty"`
}

// FromModel converts a model. Pending changes are dropped.
func FromModel(m editor.Model) Document {
	doc := Document{
		Version:         Version,
		SelectedTool:    string(m.SelectedTool),
		SelectedShapeID: m.SelectedShapeID,
	}
	for _, s := range m.Shapes() {
		doc.Shapes = append(doc.Shapes, ShapeRecord{
			ID: s.ID, Name: s.Name, L: s.L, T: s.T, W: s.W, H: s.H, DragX: s.DragX, DragY: s.DragY,
		})
	}
	return doc
}

// ToModel validates the document and converts it. Shape IDs must be present
// and unique; a selection naming no shape is dropped.
func (d Document) ToModel() (editor.Model, error) {
	if d.Version > Version {
		return editor.Model{}, fmt.Errorf("document version %d is newer than %d", d.Version, Version)
	}
	seen := make(map[string]bool, len(d.Shapes))
	shapes := make([]editor.Shape, 0, len(d.Shapes))
	for i, r := range d.Shapes {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return editor.Model{}, fmt.Errorf("shape[%d]: id is required", i)
		}
		if seen[id] {
			return editor.Model{}, fmt.Errorf("shape[%d]: duplicate id %q", i, id)
		}
		seen[id] = true
		shapes = append(shapes, editor.Shape{
			ID: id, Name: r.Name, L: r.L, T: r.T, W: r.W, H: r.H, DragX: r.DragX, DragY: r.DragY,
		})
	}
	tool := editor.ToolID(strings.TrimSpace(d.SelectedTool))
	if tool == "" {
		tool = editor.ToolPointer
	}
	return editor.NewModel(tool, d.SelectedShapeID, shapes...), nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Decode reads a document in the given format.
func Decode(data []byte, f Format) (Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return Document{}, fmt.Errorf("parse %s document: %w", f, err)
	}
	return doc, nil
}

// WriteFile saves m to path, choosing the format from the extension. The
// file is replaced atomically.
func WriteFile(path string, m editor.Model) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, FromModel(m)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile loads a drawing from path.
func ReadFile(path string) (editor.Model, error) {
	f, err := FormatFor(path)
	if err != nil {
		return editor.Model{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return editor.Model{}, err
	}
	doc, err := Decode(data, f)
	if err != nil {
		return editor.Model{}, err
	}
	m, err := doc.ToModel()
	if err != nil {
		return editor.Model{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
