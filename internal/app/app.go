// Package app is the screen flow shared by the window and terminal hosts:
// menus, level progression, name entry and the high-score table. Hosts
// translate their input into Key, Text and Click calls and draw from the
// accessors.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
	"unicode"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/config"
	"github.com/04pril/go-jewelquest/internal/jewel"
	"github.com/04pril/go-jewelquest/internal/level"
	"github.com/04pril/go-jewelquest/internal/scores"
	"go.uber.org/zap"
)

type State int

const (
	StateMenu State = iota
	StateModeSelect
	StatePlaying
	StateHelp
	StateScores
	StateNameInput
	StateQuit
)

type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyHint
	KeyMute
	KeyRestart
)

var (
	MenuItems = []string{"Start Game", "High Scores", "Help", "Exit"}
	ModeItems = []string{"Time Attack", "Score Challenge", "Back"}
)

// HelpLines is shown on the help screen.
var HelpLines = []string{
	"Swap adjacent jewels to line up three or more of a kind.",
	"Click a jewel, then click a neighbour to swap them.",
	"Swaps that do not make a match are undone.",
	"Time Attack: score as much as you can before time runs out.",
	"Score Challenge: reach the target score to clear the level.",
	"H: hint | M: mute | R: restart level | Esc: menu",
}

// ScoreStore is the high-score table.
type ScoreStore interface {
	Add(ctx context.Context, name string, points, level, timeLeft int, mode string) (scores.Record, error)
	Top(ctx context.Context, limit int) ([]scores.Record, error)
	IsHighScore(ctx context.Context, points int) (bool, error)
}

// Audio is a board cue sink that can be muted.
type Audio interface {
	board.AudioSink
	ToggleMute() bool
	Muted() bool
}

type Options struct {
	Config config.Config
	Layout board.Layout
	Policy board.Policy
	Seed   int64
	Audio  Audio
	Scores ScoreStore
	Logger *zap.Logger
}

type App struct {
	cfg     config.Config
	catalog *jewel.Catalog
	layout  board.Layout
	policy  board.Policy
	rng     *rand.Rand
	audio   Audio
	store   ScoreStore
	log     *zap.Logger

	state    State
	menuIdx  int
	modeIdx  int
	session  *level.Session
	hint     []board.Cell
	muted    bool
	name     []rune
	top      []scores.Record
	message  string
	prompted bool
}

func New(opts Options) (*App, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	cat, err := opts.Config.Catalog()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	a := &App{
		cfg:     opts.Config,
		catalog: cat,
		layout:  opts.Layout,
		policy:  opts.Policy,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		audio:   opts.Audio,
		store:   opts.Scores,
		log:     opts.Logger,
		state:   StateMenu,
	}
	if a.audio != nil {
		a.muted = a.audio.Muted()
	}
	return a, nil
}

func (a *App) State() State                { return a.state }
func (a *App) Quit() bool                  { return a.state == StateQuit }
func (a *App) MenuIndex() int              { return a.menuIdx }
func (a *App) ModeIndex() int              { return a.modeIdx }
func (a *App) Session() *level.Session     { return a.session }
func (a *App) Catalog() *jewel.Catalog     { return a.catalog }
func (a *App) Levels() int                 { return len(a.cfg.Levels) }
func (a *App) Name() string                { return string(a.name) }
func (a *App) HighScores() []scores.Record { return a.top }
func (a *App) Muted() bool                 { return a.muted }
func (a *App) Layout() board.Layout        { return a.layout }
func (a *App) Message() string             { return a.message }
func (a *App) HasNextLevel() bool          { return a.session != nil && a.session.Number() < len(a.cfg.Levels) }
func (a *App) HintCells() []board.Cell     { return a.hint }

func (a *App) Key(k Key) {
	if k == KeyMute {
		if a.audio != nil {
			a.muted = a.audio.ToggleMute()
		}
		return
	}
	switch a.state {
	case StateMenu:
		a.menuKey(k)
	case StateModeSelect:
		a.modeKey(k)
	case StatePlaying:
		a.playingKey(k)
	case StateHelp, StateScores:
		if k == KeyEscape || k == KeyEnter {
			a.state = StateMenu
		}
	case StateNameInput:
		a.nameKey(k)
	}
}

func (a *App) menuKey(k Key) {
	switch k {
	case KeyUp:
		a.menuIdx = (a.menuIdx + len(MenuItems) - 1) % len(MenuItems)
	case KeyDown:
		a.menuIdx = (a.menuIdx + 1) % len(MenuItems)
	case KeyEscape:
		a.state = StateQuit
	case KeyEnter:
		switch a.menuIdx {
		case 0:
			a.modeIdx = 0
			a.state = StateModeSelect
		case 1:
			a.showScores()
		case 2:
			a.state = StateHelp
		case 3:
			a.state = StateQuit
		}
	}
}

func (a *App) modeKey(k Key) {
	switch k {
	case KeyUp:
		a.modeIdx = (a.modeIdx + len(ModeItems) - 1) % len(ModeItems)
	case KeyDown:
		a.modeIdx = (a.modeIdx + 1) % len(ModeItems)
	case KeyEscape:
		a.state = StateMenu
	case KeyEnter:
		switch a.modeIdx {
		case 0:
			a.start(level.TimeAttack, 1)
		case 1:
			a.start(level.ScoreChallenge, 1)
		default:
			a.state = StateMenu
		}
	}
}

func (a *App) playingKey(k Key) {
	s := a.session
	switch k {
	case KeyEscape:
		a.session = nil
		a.hint = nil
		a.state = StateMenu
	case KeyRestart:
		a.start(s.Mode(), s.Number())
	case KeyHint:
		if x, y, ok := s.Hint(); ok {
			a.hint = []board.Cell{x, y}
		}
	case KeyEnter:
		if !s.Finished() {
			return
		}
		if a.advance() {
			return
		}
		a.session = nil
		a.state = StateMenu
	}
}

// advance starts the level after the current one. It reports false after
// the last level.
func (a *App) advance() bool {
	s := a.session
	if s == nil || !a.HasNextLevel() {
		return false
	}
	a.start(s.Mode(), s.Number()+1)
	return true
}

func (a *App) nameKey(k Key) {
	switch k {
	case KeyBackspace:
		if len(a.name) > 0 {
			a.name = a.name[:len(a.name)-1]
		}
	case KeyEscape:
		a.name = nil
		if a.advance() {
			return
		}
		a.session = nil
		a.state = StateMenu
	case KeyEnter:
		if len(a.name) == 0 {
			return
		}
		a.saveScore()
	}
}

// Text feeds typed characters to the name prompt.
func (a *App) Text(r rune) {
	if a.state != StateNameInput {
		return
	}
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return
	}
	if len(a.name) >= scores.MaxNameLen {
		return
	}
	a.name = append(a.name, r)
}

// Click forwards a pointer press to the running level.
func (a *App) Click(px, py float64) {
	if a.state != StatePlaying || a.session == nil {
		return
	}
	res := a.session.Click(px, py)
	if res.Outcome != board.SelectIgnored {
		a.hint = nil
	}
}

// Update advances the running level by dt seconds.
func (a *App) Update(dt float64) {
	if a.state != StatePlaying || a.session == nil {
		return
	}
	a.session.Update(dt)
	if !a.session.Board().AcceptsInput() {
		a.hint = nil
	}
	if a.session.GameOver() && !a.prompted {
		a.prompted = true
		a.promptHighScore()
	}
}

func (a *App) start(mode level.Mode, n int) {
	def, ok := a.cfg.Level(n)
	if !ok {
		a.state = StateMenu
		return
	}
	f := jewel.NewFactory(a.catalog, rand.New(rand.NewSource(a.rng.Int63())))
	var audio board.AudioSink
	if a.audio != nil {
		audio = a.audio
	}
	s, err := level.New(f, level.Options{
		Mode:   mode,
		Number: n,
		Level:  def,
		Layout: a.layout,
		Policy: a.policy,
		Rand:   rand.New(rand.NewSource(a.rng.Int63())),
		Audio:  audio,
		Logger: a.log,
	})
	if err != nil {
		a.log.Error("start level", zap.Int("level", n), zap.Error(err))
		a.message = fmt.Sprintf("Could not start level %d", n)
		a.state = StateMenu
		return
	}
	a.session = s
	a.hint = nil
	a.prompted = false
	a.message = ""
	a.state = StatePlaying
}

// Only time attack runs go on the table.
func (a *App) promptHighScore() {
	s := a.session
	if s.Mode() != level.TimeAttack || a.store == nil {
		return
	}
	ok, err := a.store.IsHighScore(context.Background(), s.Score())
	if err != nil {
		a.log.Error("check high score", zap.Error(err))
		return
	}
	if ok {
		a.name = nil
		a.state = StateNameInput
	}
}

func (a *App) saveScore() {
	s := a.session
	_, err := a.store.Add(context.Background(), string(a.name), s.Score(), s.Number(), s.TimeLeft(), s.Mode().Title())
	if err != nil && !errors.Is(err, scores.ErrEmptyName) {
		a.log.Error("save high score", zap.Error(err))
		a.message = "Could not save score"
	}
	a.name = nil
	if a.advance() {
		return
	}
	a.session = nil
	a.showScores()
}

func (a *App) showScores() {
	a.top = nil
	if a.store != nil {
		top, err := a.store.Top(context.Background(), scores.TableSize)
		if err != nil {
			a.log.Error("load high scores", zap.Error(err))
		}
		a.top = top
	}
	a.state = StateScores
}
