package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/drawdemo/internal/editor"
)

// ErrDrawingNotFound is returned when no drawing has the requested name.
var ErrDrawingNotFound = errors.New("drawing not found")

// Drawing summarises a stored drawing.
type Drawing struct {
	ID        string
	Name      string
	Shapes    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DrawingRepo handles drawings and their shapes.
type DrawingRepo struct {
	db *sql.DB
}

func NewDrawingRepo(db *sql.DB) *DrawingRepo { return &DrawingRepo{db: db} }

// Save stores m under name, replacing any drawing of that name. Pending
// changes are not stored. It returns the drawing ID.
func (r *DrawingRepo) Save(ctx context.Context, name string, m editor.Model) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("save drawing: name is required")
	}
	var id string
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		now := Now()
		row := tx.QueryRowContext(ctx, `SELECT id FROM drawings WHERE name = ?`, name)
		switch err := row.Scan(&id); {
		case errors.Is(err, sql.ErrNoRows):
			id = uuid.NewString()
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO drawings(id, name, selected_tool, selected_shape_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
				id, name, string(m.SelectedTool), m.SelectedShapeID, now, now); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if _, err := tx.ExecContext(ctx, `
			UPDATE drawings SET selected_tool = ?, selected_shape_id = ?, updated_at = ?
			WHERE id = ?`,
				string(m.SelectedTool), m.SelectedShapeID, now, id); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM shapes WHERE drawing_id = ?`, id); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shapes(drawing_id, id, z, name, l, t, w, h, drag_x, drag_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for z, s := range m.Shapes() {
			if _, err := stmt.ExecContext(ctx, id, s.ID, z, s.Name, s.L, s.T, s.W, s.H, s.DragX, s.DragY); err != nil {
				return fmt.Errorf("insert shape %q: %w", s.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save drawing %q: %w", name, err)
	}
	return id, nil
}

// Load returns the drawing stored under name.
func (r *DrawingRepo) Load(ctx context.Context, name string) (editor.Model, error) {
	var id, tool, selected string
	row := r.db.QueryRowContext(ctx, `
	SELECT id, selected_tool, selected_shape_id FROM drawings WHERE name = ?`, strings.TrimSpace(name))
	if err := row.Scan(&id, &tool, &selected); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return editor.Model{}, fmt.Errorf("load %q: %w", name, ErrDrawingNotFound)
		}
		return editor.Model{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, l, t, w, h, drag_x, drag_y FROM shapes
	WHERE drawing_id = ? ORDER BY z`, id)
	if err != nil {
		return editor.Model{}, err
	}
	defer rows.Close()
	var shapes []editor.Shape
	for rows.Next() {
		var s editor.Shape
		if err := rows.Scan(&s.ID, &s.Name, &s.L, &s.T, &s.W, &s.H, &s.DragX, &s.DragY); err != nil {
			return editor.Model{}, err
		}
		shapes = append(shapes, s)
	}
	if err := rows.Err(); err != nil {
		return editor.Model{}, err
	}
	return editor.NewModel(editor.ToolID(tool), selected, shapes...), nil
}

// List returns all drawings ordered by name.
func (r *DrawingRepo) List(ctx context.Context) ([]Drawing, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT d.id, d.name, d.created_at, d.updated_at, COUNT(s.id)
	FROM drawings d LEFT JOIN shapes s ON s.drawing_id = d.id
	GROUP BY d.id ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Drawing
	for rows.Next() {
		var d Drawing
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt, &d.Shapes); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes the drawing stored under name.
func (r *DrawingRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drawings WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", name, ErrDrawingNotFound)
	}
	return nil
}
