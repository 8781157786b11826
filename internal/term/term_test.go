package term

import (
	"testing"
	"time"

	"github.com/04pril/go-jewelquest/internal/app"
	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/config"
	"github.com/04pril/go-jewelquest/internal/jewel"
	"github.com/04pril/go-jewelquest/internal/scores"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cellMap map[[2]int]rune

func (m cellMap) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	m[[2]int{x, y}] = primary
}

func TestToLayoutRoundTrip(t *testing.T) {
	l := BoardLayout
	for _, c := range []board.Cell{{X: 0, Y: 0}, {X: 3, Y: 5}, {X: 7, Y: 7}} {
		px, py := toScreen(l.CellToScreen(c.X, c.Y))
		for dx := 0; dx < CellCols; dx++ {
			for dy := 0; dy < CellCols/rowUnits; dy++ {
				x, y := l.ScreenToCell(ToLayout(px+dx, py+dy))
				assert.Equal(t, c, board.Cell{X: x, Y: y}, "col %d row %d", px+dx, py+dy)
			}
		}
	}
}

func TestDrawGridFramesBoard(t *testing.T) {
	m := cellMap{}
	NewRenderer(m).DrawGrid(BoardLayout, 8, 8)

	x0, y0 := toScreen(BoardLayout.CellToScreen(0, 0))
	assert.Equal(t, '┌', m[[2]int{x0 - 1, y0 - 1}])
	assert.Equal(t, '┘', m[[2]int{x0 + 32, y0 + 16}])
	assert.Equal(t, '·', m[[2]int{x0 + 1, y0}])
	assert.Equal(t, ' ', m[[2]int{x0, y0 + 1}])
}

func TestDrawJewelFades(t *testing.T) {
	m := cellMap{}
	r := NewRenderer(m)
	pos := BoardLayout.CellToScreen(2, 1)
	x, y := toScreen(pos)

	r.DrawJewel(jewel.Sprite{TypeID: 2, Category: jewel.Green, Pos: pos, Scale: 1, Alpha: 1})
	assert.Equal(t, '◆', m[[2]int{x + 1, y}])
	assert.Equal(t, '◆', m[[2]int{x + 2, y}])

	r.DrawJewel(jewel.Sprite{TypeID: 2, Category: jewel.Green, Pos: pos, Alpha: 0.5})
	assert.Equal(t, '*', m[[2]int{x + 1, y}])

	r.DrawJewel(jewel.Sprite{TypeID: 2, Category: jewel.Green, Pos: pos, Alpha: 0.1})
	assert.Equal(t, '·', m[[2]int{x + 1, y}])
}

func TestDrawText(t *testing.T) {
	m := cellMap{}
	end := DrawText(m, 3, 2, "héllo", tcell.StyleDefault)
	assert.Equal(t, 8, end)
	assert.Equal(t, 'é', m[[2]int{4, 2}])
}

func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	store, err := scores.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	a, err := app.New(app.Options{
		Config: config.Default(),
		Layout: BoardLayout,
		Seed:   1,
		Scores: store,
	})
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	h := newHost(screen, a, nil)
	t.Cleanup(h.Close)
	return h, screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestHostKeysDriveMenu(t *testing.T) {
	h, _ := newTestHost(t)

	h.handle(key(tcell.KeyDown))
	assert.Equal(t, 1, h.app.MenuIndex())
	h.handle(key(tcell.KeyUp))
	h.handle(key(tcell.KeyEnter))
	assert.Equal(t, app.StateModeSelect, h.app.State())
	h.handle(key(tcell.KeyEnter))
	require.Equal(t, app.StatePlaying, h.app.State())

	h.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	assert.Equal(t, app.StatePlaying, h.app.State())

	h.handle(key(tcell.KeyEscape))
	assert.Equal(t, app.StateMenu, h.app.State())

	h.handle(key(tcell.KeyCtrlC))
	assert.True(t, h.stop)
}

func TestHostMouseSelectsOnPress(t *testing.T) {
	h, _ := newTestHost(t)
	h.handle(key(tcell.KeyEnter))
	h.handle(key(tcell.KeyEnter))
	s := h.app.Session()
	require.NotNil(t, s)
	for i := 0; i < 100 && !s.Board().AcceptsInput(); i++ {
		h.app.Update(board.MaxStep)
	}
	require.True(t, s.Board().AcceptsInput())

	px, py := toScreen(BoardLayout.CellToScreen(3, 2))
	h.handle(tcell.NewEventMouse(px+1, py, tcell.Button1, tcell.ModNone))
	h.handle(tcell.NewEventMouse(px+1, py, tcell.Button1, tcell.ModNone))
	c, ok := s.Board().Selected()
	require.True(t, ok, "held button counts once")
	assert.Equal(t, board.Cell{X: 3, Y: 2}, c)

	h.handle(tcell.NewEventMouse(px+1, py, tcell.ButtonNone, tcell.ModNone))
	h.handle(tcell.NewEventMouse(px+1, py, tcell.Button1, tcell.ModNone))
	_, ok = s.Board().Selected()
	assert.False(t, ok)
}

func TestHostDrawsPlayingScreen(t *testing.T) {
	h, screen := newTestHost(t)
	h.handle(key(tcell.KeyEnter))
	h.handle(key(tcell.KeyDown))
	h.handle(key(tcell.KeyEnter))
	h.app.Update(0)
	h.draw()

	row := func(y int) string {
		var out []rune
		for x := 0; x < 40; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			out = append(out, r)
		}
		return string(out)
	}
	assert.Contains(t, row(1), "Score Challenge - Level 1")
	assert.Contains(t, row(2), "Target: 1000")
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	events := make(chan tcell.Event) // nobody reads
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(exited)
	}()

	close(done)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("poller still blocked on send")
	}
}

func TestPollEventsClosesOnFini(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	events := make(chan tcell.Event, 1)
	go pollEvents(screen, events, make(chan struct{}))
	screen.Fini()

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events not closed after Fini")
	}
}
