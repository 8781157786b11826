package game

import (
	"image"
	"image/color"
	"math"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/jewel"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const jewelInset = 6

// screenRenderer draws board sprites onto an ebiten image. Jewel images are
// generated once per type and reused.
type screenRenderer struct {
	screen *ebiten.Image
	th     theme
	cell   float64
	images map[int]*ebiten.Image
}

func newScreenRenderer(cell float64) *screenRenderer {
	return &screenRenderer{cell: cell, images: map[int]*ebiten.Image{}}
}

func (r *screenRenderer) begin(screen *ebiten.Image, th theme) {
	r.screen = screen
	r.th = th
}

func (r *screenRenderer) DrawGrid(l board.Layout, w, h int) {
	bw, bh := int(l.CellSize)*w, int(l.CellSize)*h
	drawSunkenRect(r.screen, int(l.OriginX)-4, int(l.OriginY)-4, bw+8, bh+8, r.th)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := l.CellToScreen(x, y)
			clr := r.th.CellA
			if (x+y)%2 == 1 {
				clr = r.th.CellB
			}
			ebitenutil.DrawRect(r.screen, p.X, p.Y, l.CellSize, l.CellSize, clr)
			vector.StrokeRect(r.screen, float32(p.X), float32(p.Y), float32(l.CellSize), float32(l.CellSize), 1, r.th.CellGrid, false)
		}
	}
}

func (r *screenRenderer) DrawJewel(s jewel.Sprite) {
	img := r.jewelImage(s.TypeID, s.Category)
	size := float64(img.Bounds().Dx())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-size/2, -size/2)
	op.GeoM.Scale(s.Scale, s.Scale)
	op.GeoM.Rotate(s.Rotation * math.Pi / 180)
	op.GeoM.Translate(s.Pos.X+r.cell/2, s.Pos.Y+r.cell/2)
	op.ColorScale.ScaleAlpha(float32(s.Alpha))
	op.Filter = ebiten.FilterLinear
	r.screen.DrawImage(img, op)

	if s.Selected {
		vector.StrokeRect(r.screen, float32(s.Pos.X+2), float32(s.Pos.Y+2), float32(r.cell-4), float32(r.cell-4), 3, r.th.Accent, false)
	}
}

func (r *screenRenderer) jewelImage(id int, c jewel.Category) *ebiten.Image {
	if img, ok := r.images[id]; ok {
		return img
	}
	size := int(r.cell) - jewelInset*2
	if size < 4 {
		size = 4
	}
	img := ebiten.NewImage(size, size)
	half := float32(size) / 2
	base := jewelColor(c)

	// The shape cycles with the type id so same-colored custom types stay
	// distinguishable.
	switch id % 3 {
	case 0:
		vector.DrawFilledCircle(img, half, half, half, base, true)
	case 1:
		vector.DrawFilledRect(img, 2, 2, float32(size-4), float32(size-4), base, true)
	default:
		var path vector.Path
		path.MoveTo(half, 0)
		path.LineTo(float32(size), half)
		path.LineTo(half, float32(size))
		path.LineTo(0, half)
		path.Close()
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		cr, cg, cb, ca := base.RGBA()
		for i := range vs {
			vs[i].SrcX, vs[i].SrcY = 1, 1
			vs[i].ColorR = float32(cr) / 0xffff
			vs[i].ColorG = float32(cg) / 0xffff
			vs[i].ColorB = float32(cb) / 0xffff
			vs[i].ColorA = float32(ca) / 0xffff
		}
		img.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	vector.DrawFilledCircle(img, half*0.7, half*0.7, half*0.22, color.RGBA{150, 150, 150, 150}, true)

	r.images[id] = img
	return img
}

var white *ebiten.Image

func whitePixel() *ebiten.Image {
	if white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return white
}

// drawFlash tints cells with the rejected-swap highlight.
func drawFlash(screen *ebiten.Image, l board.Layout, cells []board.Cell, alpha float64, th theme) {
	r, g, b, _ := th.Flash.RGBA()
	clr := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(200 * alpha)}
	for _, c := range cells {
		p := l.CellToScreen(c.X, c.Y)
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(l.CellSize), float32(l.CellSize), premultiply(clr), false)
	}
}

func drawHint(screen *ebiten.Image, l board.Layout, cells []board.Cell, th theme) {
	for _, c := range cells {
		p := l.CellToScreen(c.X, c.Y)
		vector.StrokeRect(screen, float32(p.X+4), float32(p.Y+4), float32(l.CellSize-8), float32(l.CellSize-8), 2, th.Accent, false)
	}
}

// premultiply converts a straight-alpha color for ebiten, which expects
// premultiplied color.RGBA values.
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}
