package render

import (
	"math"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/parameter"
)

// Layout maps field units to screen cells: HUD on the top row, status on the
// bottom row, the field in between
type Layout struct {
	Width, Height int
	FieldY        int
	FieldW        int
	FieldH        int
}

// NewLayout computes the layout for a screen size
func NewLayout(w, h int) Layout {
	return Layout{
		Width:  w,
		Height: h,
		FieldY: 1,
		FieldW: max(1, w),
		FieldH: max(1, h-2),
	}
}

// scale returns cells per field unit on each axis
func (l Layout) scale() (sx, sy float64) {
	return float64(l.FieldW) / parameter.FieldWidth, float64(l.FieldH) / parameter.FieldHeight
}

// Cell maps a field point to a screen cell
func (l Layout) Cell(p core.Vec2) (x, y int) {
	sx, sy := l.scale()
	return int(math.Floor(p.X * sx)), l.FieldY + int(math.Floor(p.Y*sy))
}

// Span maps a centered box to an inclusive cell range, at least one cell wide
func (l Layout) Span(center, size core.Vec2) (x0, y0, x1, y1 int) {
	sx, sy := l.scale()
	x0 = int(math.Floor((center.X - size.X/2) * sx))
	x1 = int(math.Ceil((center.X+size.X/2)*sx)) - 1
	y0 = l.FieldY + int(math.Floor((center.Y-size.Y/2)*sy))
	y1 = l.FieldY + int(math.Ceil((center.Y+size.Y/2)*sy)) - 1
	return x0, y0, max(x0, x1), max(y0, y1)
}

// InField reports whether a cell lies inside the field rows
func (l Layout) InField(x, y int) bool {
	return x >= 0 && x < l.FieldW && y >= l.FieldY && y < l.FieldY+l.FieldH
}
