package board

import (
	"math"

	"github.com/04pril/go-jewelquest/internal/jewel"
)

// Layout maps grid cells to render space. It is fixed per session.
type Layout struct {
	OriginX, OriginY float64
	CellSize         float64
}

func (l Layout) CellToScreen(x, y int) jewel.Point {
	return jewel.Point{
		X: l.OriginX + float64(x)*l.CellSize,
		Y: l.OriginY + float64(y)*l.CellSize,
	}
}

// ScreenToCell floors; callers must bounds-check the result.
func (l Layout) ScreenToCell(px, py float64) (int, int) {
	if l.CellSize <= 0 {
		return -1, -1
	}
	x := int(math.Floor((px - l.OriginX) / l.CellSize))
	y := int(math.Floor((py - l.OriginY) / l.CellSize))
	return x, y
}

// SpawnPoint is one cell-height above the top edge of column x.
func (l Layout) SpawnPoint(x int) jewel.Point {
	return jewel.Point{
		X: l.OriginX + float64(x)*l.CellSize,
		Y: l.OriginY - l.CellSize,
	}
}

func (l Layout) Size(w, h int) (float64, float64) {
	return float64(w) * l.CellSize, float64(h) * l.CellSize
}
