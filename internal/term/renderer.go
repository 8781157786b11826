package term

import (
	"math"
	"strings"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/jewel"
	"github.com/gdamore/tcell/v2"
)

// Terminal cells are twice as tall as they are wide. Layout units are one
// column horizontally and half a row vertically, so a jewel cell of
// CellSize units is CellSize columns by CellSize/2 rows.
const (
	CellCols = 4
	rowUnits = 2
)

// BoardLayout places the grid right of the statistics column.
var BoardLayout = board.Layout{OriginX: 24, OriginY: 4 * rowUnits, CellSize: CellCols}

// canvas is the part of tcell.Screen the renderer writes to.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// ToLayout converts a terminal position to layout units.
func ToLayout(col, row int) (float64, float64) {
	return float64(col), float64(row * rowUnits)
}

func toScreen(p jewel.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y / rowUnits))
}

var categoryColors = map[jewel.Category]tcell.Color{
	jewel.Red:    tcell.ColorRed,
	jewel.Blue:   tcell.ColorBlue,
	jewel.Green:  tcell.ColorGreen,
	jewel.Yellow: tcell.ColorYellow,
	jewel.Purple: tcell.ColorPurple,
}

func categoryColor(c jewel.Category) tcell.Color {
	if clr, ok := categoryColors[jewel.Category(strings.ToLower(string(c)))]; ok {
		return clr
	}
	return tcell.ColorWhite
}

var glyphs = []rune{'●', '■', '◆', '▲', '★'}

// Renderer draws board sprites as colored glyphs.
type Renderer struct {
	c canvas
}

func NewRenderer(c canvas) *Renderer {
	return &Renderer{c: c}
}

func (r *Renderer) DrawGrid(l board.Layout, w, h int) {
	x0, y0 := toScreen(l.CellToScreen(0, 0))
	cols := w * int(l.CellSize)
	rows := h * int(l.CellSize) / rowUnits
	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := -1; x <= cols; x++ {
		r.c.SetContent(x0+x, y0-1, '─', nil, frame)
		r.c.SetContent(x0+x, y0+rows, '─', nil, frame)
	}
	for y := -1; y <= rows; y++ {
		r.c.SetContent(x0-1, y0+y, '│', nil, frame)
		r.c.SetContent(x0+cols, y0+y, '│', nil, frame)
	}
	r.c.SetContent(x0-1, y0-1, '┌', nil, frame)
	r.c.SetContent(x0+cols, y0-1, '┐', nil, frame)
	r.c.SetContent(x0-1, y0+rows, '└', nil, frame)
	r.c.SetContent(x0+cols, y0+rows, '┘', nil, frame)

	dot := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.c.SetContent(x0+x, y0+y, ' ', nil, tcell.StyleDefault)
		}
	}
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			px, py := toScreen(l.CellToScreen(cx, cy))
			r.c.SetContent(px+CellCols/2-1, py, '·', nil, dot)
		}
	}
}

func (r *Renderer) DrawJewel(s jewel.Sprite) {
	x, y := toScreen(s.Pos)
	style := tcell.StyleDefault.Foreground(categoryColor(s.Category))
	if s.Selected {
		style = style.Reverse(true)
	}
	g := glyphs[s.TypeID%len(glyphs)]
	switch {
	case s.Alpha < 0.35:
		g = '·'
	case s.Alpha < 0.7:
		g = '*'
	}
	r.c.SetContent(x+1, y, g, nil, style)
	r.c.SetContent(x+2, y, g, nil, style)
}

// DrawText writes s starting at (x, y) and returns the column after it.
func DrawText(c canvas, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		c.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
