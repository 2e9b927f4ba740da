// Package testdata builds sample drawings for tests and demos.
package testdata

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jask/drawdemo/internal/editor"
)

var names = []string{"block", "note", "panel", "card", "frame", "tile"}

// Drawing returns a model with n random shapes laid out on a width x height
// canvas, in canvas units. The last shape is selected. The same r state
// gives the same geometry; IDs are always fresh.
func Drawing(r *rand.Rand, n, width, height int) editor.Model {
	shapes := make([]editor.Shape, 0, n)
	for i := 0; i < n; i++ {
		w := 40 + r.Intn(160)
		h := 40 + r.Intn(120)
		shapes = append(shapes, editor.Shape{
			ID:   uuid.NewString(),
			Name: fmt.Sprintf("%s%d", names[r.Intn(len(names))], i+1),
			L:    r.Intn(max(width-w, 1)),
			T:    r.Intn(max(height-h, 1)),
			W:    w,
			H:    h,
		})
	}
	selected := ""
	if n > 0 {
		selected = shapes[n-1].ID
	}
	return editor.NewModel(editor.ToolPointer, selected, shapes...)
}
