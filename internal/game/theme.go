package game

import (
	"image/color"
	"strings"

	"github.com/04pril/go-jewelquest/internal/jewel"
)

type theme struct {
	Name           string
	BG             color.Color
	Panel          color.Color
	Light          color.Color
	Dark           color.Color
	CellA          color.Color
	CellB          color.Color
	CellGrid       color.Color
	Accent         color.Color
	Overlay        color.Color
	Digit          color.Color
	DigitOff       color.Color
	DigitWarn      color.Color
	DigitWarnOff   color.Color
	Flash          color.Color
	HeaderText     color.Color
	HeaderTextSoft color.Color
}

var themes = []theme{
	{
		Name:           "Classic",
		BG:             rgb(50, 50, 70),
		Panel:          rgb(40, 40, 60),
		Light:          rgb(110, 110, 140),
		Dark:           rgb(20, 20, 32),
		CellA:          rgb(62, 62, 88),
		CellB:          rgb(72, 72, 100),
		CellGrid:       rgb(34, 34, 50),
		Accent:         rgb(255, 215, 90),
		Overlay:        color.RGBA{0, 0, 0, 180},
		Digit:          rgb(120, 230, 120),
		DigitWarn:      rgb(255, 50, 50),
		Flash:          rgb(255, 0, 0),
		HeaderText:     rgb(255, 255, 255),
		HeaderTextSoft: rgb(200, 200, 255),
	},
	{
		Name:           "Dark",
		BG:             rgb(18, 20, 26),
		Panel:          rgb(34, 36, 42),
		Light:          rgb(78, 82, 93),
		Dark:           rgb(8, 10, 14),
		CellA:          rgb(40, 43, 52),
		CellB:          rgb(48, 51, 60),
		CellGrid:       rgb(22, 24, 30),
		Accent:         rgb(107, 199, 255),
		Overlay:        color.RGBA{0, 0, 0, 160},
		Digit:          rgb(255, 98, 98),
		DigitWarn:      rgb(255, 180, 180),
		Flash:          rgb(255, 40, 40),
		HeaderText:     rgb(245, 245, 245),
		HeaderTextSoft: rgb(215, 215, 225),
	},
}

// digits picks the counter colours; warn follows the timer blink.
func (th theme) digits(warn bool) digitStyle {
	if warn {
		return digitStyle{On: th.DigitWarn, Off: th.DigitWarnOff}
	}
	return digitStyle{On: th.Digit, Off: th.DigitOff}
}

var jewelColors = map[jewel.Category]color.Color{
	jewel.Red:    rgb(255, 50, 50),
	jewel.Blue:   rgb(50, 90, 255),
	jewel.Green:  rgb(50, 220, 80),
	jewel.Yellow: rgb(255, 230, 50),
	jewel.Purple: rgb(180, 50, 255),
}

func jewelColor(c jewel.Category) color.Color {
	if clr, ok := jewelColors[jewel.Category(strings.ToLower(string(c)))]; ok {
		return clr
	}
	return rgb(230, 230, 230)
}

func rgb(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
