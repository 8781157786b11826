// Package term is the terminal host: a tcell screen driving the same app
// controller as the window build.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/04pril/go-jewelquest/internal/app"
	"github.com/04pril/go-jewelquest/internal/level"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const frame = 16 * time.Millisecond // ~60 FPS

type Host struct {
	screen  tcell.Screen
	app     *app.App
	log     *zap.Logger
	render  *Renderer
	buttons tcell.ButtonMask
	stop    bool
}

// New initializes the terminal. Call Close to restore it.
func New(a *app.App, log *zap.Logger) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return newHost(screen, a, log), nil
}

func newHost(screen tcell.Screen, a *app.App, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	screen.EnableMouse()
	screen.HideCursor()
	return &Host{screen: screen, app: a, log: log, render: NewRenderer(screen)}
}

func (h *Host) Close() {
	h.screen.Fini()
}

// Run polls input on its own goroutine and drives the app from a frame
// ticker until the app quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(h.screen, events, done)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.handle(ev)
			if h.stop || h.app.Quit() {
				return nil
			}
		case now := <-ticker.C:
			h.app.Update(now.Sub(last).Seconds())
			last = now
			h.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventMouse:
		btn := ev.Buttons()
		pressed := btn&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0
		h.buttons = btn
		if pressed {
			col, row := ev.Position()
			h.app.Click(ToLayout(col, row))
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		h.app.Key(app.KeyUp)
	case tcell.KeyDown:
		h.app.Key(app.KeyDown)
	case tcell.KeyEnter:
		h.app.Key(app.KeyEnter)
	case tcell.KeyEscape:
		h.app.Key(app.KeyEscape)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		h.app.Key(app.KeyBackspace)
	case tcell.KeyCtrlC:
		h.log.Info("interrupted")
		h.stop = true
	case tcell.KeyRune:
		if h.app.State() == app.StateNameInput {
			h.app.Text(ev.Rune())
			return
		}
		switch ev.Rune() {
		case 'h', 'H':
			h.app.Key(app.KeyHint)
		case 'm', 'M':
			h.app.Key(app.KeyMute)
		case 'r', 'R':
			h.app.Key(app.KeyRestart)
		}
	}
}

var (
	styleText   = tcell.StyleDefault
	styleSoft   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleAccent = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func (h *Host) draw() {
	h.screen.Clear()
	switch h.app.State() {
	case app.StateMenu:
		h.drawList("JEWEL QUEST", app.MenuItems, h.app.MenuIndex())
		if msg := h.app.Message(); msg != "" {
			DrawText(h.screen, 4, 14, msg, styleWarn)
		}
	case app.StateModeSelect:
		h.drawList("SELECT MODE", app.ModeItems, h.app.ModeIndex())
	case app.StateHelp:
		h.drawLines("HELP", append(app.HelpLines, "", "Esc: back"))
	case app.StateScores:
		h.drawLines("HIGH SCORES", h.scoreLines())
	case app.StateNameInput:
		h.drawNameInput()
	case app.StatePlaying:
		h.drawPlaying()
	}
	if h.app.Muted() {
		_, rows := h.screen.Size()
		DrawText(h.screen, 0, rows-1, "(muted)", styleSoft)
	}
	h.screen.Show()
}

func (h *Host) drawList(title string, items []string, selected int) {
	DrawText(h.screen, 4, 2, title, styleAccent)
	for i, item := range items {
		style, prefix := styleText, "  "
		if i == selected {
			style, prefix = styleAccent.Reverse(true), "> "
		}
		DrawText(h.screen, 4, 4+i*2, prefix+item, style)
	}
	DrawText(h.screen, 4, 6+len(items)*2, "Up/Down: move  Enter: select  Esc: back", styleSoft)
}

func (h *Host) drawLines(title string, lines []string) {
	DrawText(h.screen, 2, 1, title, styleAccent)
	for i, ln := range lines {
		DrawText(h.screen, 2, 3+i, ln, styleText)
	}
}

func (h *Host) scoreLines() []string {
	top := h.app.HighScores()
	if len(top) == 0 {
		return []string{"No records yet.", "", "Esc: back"}
	}
	lines := make([]string, 0, len(top)+2)
	for i, r := range top {
		lines = append(lines, fmt.Sprintf("%2d. %-10s %7d  L%d  %s", i+1, r.Name, r.Points, r.Level, r.CreatedAt.Local().Format("2006-01-02")))
	}
	return append(lines, "", "Esc: back")
}

func (h *Host) drawNameInput() {
	lines := []string{}
	if s := h.app.Session(); s != nil {
		lines = append(lines, fmt.Sprintf("Score: %d  Level: %d", s.Score(), s.Number()), "")
	}
	lines = append(lines, "Enter your name: "+h.app.Name()+"_", "", "Enter: save  Esc: skip")
	h.drawLines("NEW HIGH SCORE!", lines)
}

func (h *Host) drawPlaying() {
	s := h.app.Session()
	if s == nil {
		return
	}
	b := s.Board()

	DrawText(h.screen, 2, 1, fmt.Sprintf("%s - Level %d", s.Mode().Title(), s.Number()), styleAccent)
	x := DrawText(h.screen, 2, 2, fmt.Sprintf("Score: %d", s.Score()), styleText)
	if s.Mode() == level.TimeAttack {
		style := styleText
		if s.Warning() {
			style = styleWarn
		}
		DrawText(h.screen, x+4, 2, fmt.Sprintf("Time: %d", s.TimeLeft()), style)
	} else {
		DrawText(h.screen, x+4, 2, fmt.Sprintf("Target: %d", s.Target()), styleSoft)
	}

	stats := s.Stats()
	DrawText(h.screen, 2, 5, "Collected", styleAccent)
	for i, t := range h.app.Catalog().Types() {
		style := tcell.StyleDefault.Foreground(categoryColor(t.Category))
		DrawText(h.screen, 2, 7+i, fmt.Sprintf("%c %-7s x%d", glyphs[t.ID%len(glyphs)], t.Category, stats[t.ID]), style)
	}

	b.Render(h.render)

	l := b.Layout()
	flash, _ := s.Flash()
	for _, c := range flash {
		px, py := toScreen(l.CellToScreen(c.X, c.Y))
		DrawText(h.screen, px, py, "!", styleWarn)
	}
	for _, c := range h.app.HintCells() {
		px, py := toScreen(l.CellToScreen(c.X, c.Y))
		DrawText(h.screen, px+3, py, "?", styleAccent)
	}

	bottom := int(l.OriginY)/rowUnits + b.H*int(l.CellSize)/rowUnits + 2
	switch {
	case s.GameOver():
		DrawText(h.screen, int(l.OriginX), bottom, "Game Over! Press Enter to continue", styleWarn)
	case s.Complete() && h.app.HasNextLevel():
		DrawText(h.screen, int(l.OriginX), bottom, "Level Complete! Press Enter for next level", styleAccent)
	case s.Complete():
		DrawText(h.screen, int(l.OriginX), bottom, "Game Complete! Press Enter to continue", styleAccent)
	case b.Notice() > 0:
		DrawText(h.screen, int(l.OriginX), bottom, "No possible moves! Reshuffling...", styleWarn)
	default:
		DrawText(h.screen, int(l.OriginX), bottom, "Click two neighbours to swap  H: hint  R: restart  Esc: menu", styleSoft)
	}
}
