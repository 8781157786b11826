package game

import (
	"image"
	"image/color"

	"github.com/04pril/go-jewelquest/internal/game/seg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func drawOverlayPanel(screen *ebiten.Image, title string, lines []string, th theme) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	ebitenutil.DrawRect(screen, 0, 0, float64(w), float64(h), th.Overlay)
	pw := min(560, w-36)
	ph := min(300, h-36)
	px, py := (w-pw)/2, (h-ph)/2
	drawSunkenRect(screen, px, py, pw, ph, th)
	ebitenutil.DrawRect(screen, float64(px+6), float64(py+6), float64(pw-12), float64(ph-12), th.Panel)

	ff := basicfont.Face7x13
	text.Draw(screen, title, ff, px+16, py+24, th.Accent)
	y := py + 50
	for _, ln := range lines {
		text.Draw(screen, ln, ff, px+16, y, th.HeaderText)
		y += 20
		if y > py+ph-18 {
			break
		}
	}
}

// drawMenu draws a titled list with the selected entry highlighted.
func drawMenu(screen *ebiten.Image, title string, items []string, selected int, th theme) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	ff := basicfont.Face7x13
	drawTextCentered(screen, title, ff, 0, h/4, w, th.Accent)

	bw, bh := 240, 34
	y := h/4 + 50
	for i, item := range items {
		x := (w - bw) / 2
		if i == selected {
			drawRaisedRect(screen, x, y, bw, bh, th)
			vector.StrokeRect(screen, float32(x+3), float32(y+3), float32(bw-6), float32(bh-6), 2, th.Accent, false)
		} else {
			drawSunkenRect(screen, x, y, bw, bh, th)
		}
		drawTextCentered(screen, item, ff, x, y+bh/2-10, bw, th.HeaderText)
		y += bh + 12
	}
}

func drawBanner(screen *ebiten.Image, label, sub string, th theme) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	ebitenutil.DrawRect(screen, 0, 0, float64(w), float64(h), th.Overlay)
	bw, bh := 320, 70
	bx, by := (w-bw)/2, (h-bh)/2
	drawSunkenRect(screen, bx, by, bw, bh, th)
	drawTextCentered(screen, label, basicfont.Face7x13, bx, by+12, bw, th.Accent)
	drawTextCentered(screen, sub, basicfont.Face7x13, bx, by+38, bw, th.HeaderText)
}

// bevel fills r and outlines it with a light and a dark edge. Raised panels
// are lit from the top left, sunken ones from the bottom right.
func bevel(screen *ebiten.Image, r image.Rectangle, fill, lit, shade color.Color) {
	x0, y0, x1, y1 := float32(r.Min.X), float32(r.Min.Y), float32(r.Max.X), float32(r.Max.Y)
	ebitenutil.DrawRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), fill)
	edges := []struct {
		ax, ay, bx, by float32
		clr            color.Color
	}{
		{x0, y0, x1, y0, lit},
		{x0, y0, x0, y1, lit},
		{x1, y0, x1, y1, shade},
		{x0, y1, x1, y1, shade},
	}
	for _, e := range edges {
		vector.StrokeLine(screen, e.ax, e.ay, e.bx, e.by, 2, e.clr, false)
	}
}

func drawRaisedRect(screen *ebiten.Image, x, y, w, h int, th theme) {
	bevel(screen, image.Rect(x, y, x+w, y+h), th.CellB, th.Light, th.Dark)
}

func drawSunkenRect(screen *ebiten.Image, x, y, w, h int, th theme) {
	bevel(screen, image.Rect(x, y, x+w, y+h), th.Panel, th.Dark, th.Light)
}

// drawTextCentered centers s horizontally in [x, x+w) with its top edge at y.
func drawTextCentered(screen *ebiten.Image, s string, f font.Face, x, y, w int, clr color.Color) {
	tw := font.MeasureString(f, s).Round()
	text.Draw(screen, s, f, x+(w-tw)/2, y+f.Metrics().Ascent.Round(), clr)
}

// digitStyle colours lit and unlit segments.
type digitStyle struct {
	On, Off color.Color
}

// drawDigital draws value as a zero-padded seven-segment counter.
func drawDigital(screen *ebiten.Image, x, y, value, digits int, st digitStyle) {
	ebitenutil.DrawRect(screen, float64(x-3), float64(y-3), float64(digits*seg.Advance+6), seg.Height+4, color.RGBA{20, 20, 20, 255})
	for i, d := range seg.Digits(value, digits) {
		cx := float64(x + i*seg.Advance)
		for s := seg.A; s < seg.Count; s++ {
			clr := st.Off
			if seg.On(d, s) {
				clr = st.On
			}
			b := seg.Bars[s]
			ebitenutil.DrawRect(screen, cx+b.X, float64(y)+b.Y, b.W, b.H, clr)
		}
	}
}
