// Package game is the ebiten window host. It maps mouse, touch and keyboard
// input onto the app controller and draws every screen.
package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/04pril/go-jewelquest/internal/app"
	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/level"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 600
	CellSize     = 60

	touchMoveSlopPx   = 10
	touchLongPressDur = 360 * time.Millisecond
)

// BoardLayout places the 8x8 grid right of the statistics panel.
var BoardLayout = board.Layout{
	OriginX:  float64((ScreenWidth-board.DefaultWidth*CellSize)/2 + 30),
	OriginY:  90,
	CellSize: CellSize,
}

type touchStart struct {
	X, Y         int
	LastX, LastY int
	At           time.Time
}

type Game struct {
	app         *app.App
	themeIdx    int
	fontMain    font.Face
	renderer    *screenRenderer
	touchStarts map[ebiten.TouchID]touchStart
}

func New(a *app.App) *Game {
	return &Game{
		app:         a,
		fontMain:    basicfont.Face7x13,
		renderer:    newScreenRenderer(a.Layout().CellSize),
		touchStarts: map[ebiten.TouchID]touchStart{},
	}
}

// Run opens the window and blocks until it is closed.
func Run(a *app.App) error {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Jewel Quest")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	return ebiten.RunGame(New(a))
}

func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

var keyMap = []struct {
	key ebiten.Key
	app app.Key
}{
	{ebiten.KeyArrowUp, app.KeyUp},
	{ebiten.KeyArrowDown, app.KeyDown},
	{ebiten.KeyEnter, app.KeyEnter},
	{ebiten.KeyNumpadEnter, app.KeyEnter},
	{ebiten.KeyEscape, app.KeyEscape},
	{ebiten.KeyBackspace, app.KeyBackspace},
}

// Letter keys double as text while a name is being typed.
var letterKeyMap = []struct {
	key ebiten.Key
	app app.Key
}{
	{ebiten.KeyH, app.KeyHint},
	{ebiten.KeyM, app.KeyMute},
	{ebiten.KeyR, app.KeyRestart},
}

func (g *Game) handleKeys() {
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			g.app.Key(m.app)
		}
	}
	if g.app.State() == app.StateNameInput {
		for _, r := range ebiten.AppendInputChars(nil) {
			g.app.Text(r)
		}
		return
	}
	for _, m := range letterKeyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			g.app.Key(m.app)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.themeIdx = (g.themeIdx + 1) % len(themes)
	}
}

func (g *Game) handleTouchInput() {
	for _, id := range ebiten.TouchIDs() {
		x, y := ebiten.TouchPosition(id)
		st, ok := g.touchStarts[id]
		if !ok {
			g.touchStarts[id] = touchStart{X: x, Y: y, LastX: x, LastY: y, At: time.Now()}
			continue
		}
		st.LastX, st.LastY = x, y
		g.touchStarts[id] = st
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.touchStarts[id] = touchStart{X: x, Y: y, LastX: x, LastY: y, At: time.Now()}
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		st, ok := g.touchStarts[id]
		if !ok {
			continue
		}
		delete(g.touchStarts, id)

		dx := absInt(st.LastX - st.X)
		dy := absInt(st.LastY - st.Y)
		if dx > touchMoveSlopPx || dy > touchMoveSlopPx {
			continue
		}

		if time.Since(st.At) >= touchLongPressDur {
			g.app.Key(app.KeyHint)
			continue
		}
		g.tap(st.LastX, st.LastY)
	}
}

// tap treats a touch like the keyboard outside of play.
func (g *Game) tap(x, y int) {
	if g.app.State() == app.StatePlaying {
		g.app.Click(float64(x), float64(y))
		return
	}
	g.app.Key(app.KeyEnter)
}

func (g *Game) Update() error {
	g.handleKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.app.Click(float64(mx), float64(my))
	}
	g.handleTouchInput()

	g.app.Update(1 / float64(ebiten.TPS()))
	if g.app.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	th := themes[g.themeIdx]
	screen.Fill(th.BG)

	switch g.app.State() {
	case app.StateMenu:
		drawMenu(screen, "JEWEL QUEST", app.MenuItems, g.app.MenuIndex(), th)
		if msg := g.app.Message(); msg != "" {
			drawTextCentered(screen, msg, g.fontMain, 0, ScreenHeight-60, ScreenWidth, th.DigitWarn)
		}
	case app.StateModeSelect:
		drawMenu(screen, "SELECT MODE", app.ModeItems, g.app.ModeIndex(), th)
	case app.StateHelp:
		drawOverlayPanel(screen, "HELP", append(app.HelpLines, "", "T: theme | Esc: back"), th)
	case app.StateScores:
		drawOverlayPanel(screen, "HIGH SCORES", g.scoreLines(), th)
	case app.StateNameInput:
		g.drawNameInput(screen, th)
	case app.StatePlaying:
		g.drawPlaying(screen, th)
	}

	status := fmt.Sprintf("Theme:%s", th.Name)
	if g.app.Muted() {
		status += "  (muted)"
	}
	text.Draw(screen, status, g.fontMain, 8, ScreenHeight-8, th.HeaderTextSoft)
}

func (g *Game) scoreLines() []string {
	top := g.app.HighScores()
	if len(top) == 0 {
		return []string{"No records yet. Finish a Time Attack run to create one!", "", "(Esc to close)"}
	}
	lines := make([]string, 0, len(top)+2)
	for i, r := range top {
		lines = append(lines, fmt.Sprintf("%2d. %-10s %7d  Level %d  %s  %s",
			i+1, r.Name, r.Points, r.Level, r.Mode, r.CreatedAt.Local().Format("2006-01-02")))
	}
	lines = append(lines, "", "(Esc to close)")
	return lines
}

func (g *Game) drawNameInput(screen *ebiten.Image, th theme) {
	s := g.app.Session()
	lines := []string{}
	if s != nil {
		lines = append(lines, fmt.Sprintf("Score: %d", s.Score()), fmt.Sprintf("Level: %d", s.Number()))
	}
	lines = append(lines, "", "Enter your name: "+g.app.Name()+"_", "", "Enter: save | Esc: skip")
	drawOverlayPanel(screen, "NEW HIGH SCORE!", lines, th)
}

func (g *Game) drawPlaying(screen *ebiten.Image, th theme) {
	s := g.app.Session()
	if s == nil {
		return
	}
	b := s.Board()
	l := b.Layout()

	// top panel
	drawRaisedRect(screen, 10, 10, ScreenWidth-20, 60, th)
	text.Draw(screen, "SCORE", g.fontMain, 24, 30, th.HeaderTextSoft)
	drawDigital(screen, 80, 22, s.Score(), 5, th.digits(false))
	header := fmt.Sprintf("%s - Level %d", s.Mode().Title(), s.Number())
	drawTextCentered(screen, header, g.fontMain, 0, 26, ScreenWidth, th.HeaderText)
	if s.Mode() == level.TimeAttack {
		text.Draw(screen, "TIME", g.fontMain, ScreenWidth-150, 30, th.HeaderTextSoft)
		drawDigital(screen, ScreenWidth-100, 22, s.TimeLeft(), 3, th.digits(s.Warning()))
	} else {
		text.Draw(screen, fmt.Sprintf("TARGET %d", s.Target()), g.fontMain, ScreenWidth-150, 44, th.HeaderText)
	}

	g.drawStats(screen, s, th)

	g.renderer.begin(screen, th)
	b.Render(g.renderer)
	if cells, alpha := s.Flash(); len(cells) > 0 {
		drawFlash(screen, l, cells, alpha, th)
	}
	drawHint(screen, l, g.app.HintCells(), th)

	switch {
	case s.GameOver():
		drawBanner(screen, "Game Over!", "Press Enter to continue", th)
	case s.Complete() && g.app.HasNextLevel():
		drawBanner(screen, "Level Complete!", "Press Enter for next level", th)
	case s.Complete():
		drawBanner(screen, "Game Complete!", "Press Enter to continue", th)
	case b.Notice() > 0:
		drawBanner(screen, "No possible moves!", "Reshuffling the board...", th)
	}
}

func (g *Game) drawStats(screen *ebiten.Image, s *level.Session, th theme) {
	stats := s.Stats()
	types := g.app.Catalog().Types()
	ids := make([]int, 0, len(types))
	for _, t := range types {
		ids = append(ids, t.ID)
	}
	sort.Ints(ids)

	x, y := 12, ScreenHeight-320
	drawSunkenRect(screen, x, y, 150, 40+len(ids)*35, th)
	drawTextCentered(screen, "Collected", g.fontMain, x, y+8, 150, th.HeaderText)
	yo := y + 40
	for _, id := range ids {
		t := types[id]
		ebitenutil.DrawRect(screen, float64(x+15), float64(yo), 25, 25, jewelColor(t.Category))
		text.Draw(screen, string(t.Category), g.fontMain, x+50, yo+17, th.HeaderText)
		text.Draw(screen, fmt.Sprintf("x%d", stats[id]), g.fontMain, x+150-40, yo+17, th.HeaderTextSoft)
		yo += 35
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
