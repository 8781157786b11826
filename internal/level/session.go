// Package level runs one level of play on top of a board: the mode rules,
// the score, the countdown and the per-type collection statistics.
package level

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/config"
	"github.com/04pril/go-jewelquest/internal/jewel"
	"go.uber.org/zap"
)

const (
	// WarningThreshold is the remaining time at which the countdown starts
	// blinking.
	WarningThreshold = 5.0
	blinkInterval    = 0.25
	// FlashDuration is how long a rejected swap stays highlighted.
	FlashDuration = 0.5
)

var ErrUnknownMode = errors.New("unknown mode")

type Mode int

const (
	TimeAttack Mode = iota
	ScoreChallenge
)

func (m Mode) String() string {
	switch m {
	case TimeAttack:
		return "time"
	case ScoreChallenge:
		return "score"
	}
	return "unknown"
}

// Title is the human readable mode name.
func (m Mode) Title() string {
	switch m {
	case TimeAttack:
		return "Time Attack"
	case ScoreChallenge:
		return "Score Challenge"
	}
	return "Unknown"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time", "time_attack", "timeattack":
		return TimeAttack, nil
	case "score", "score_challenge", "scorechallenge":
		return ScoreChallenge, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type Options struct {
	Mode Mode
	// Number is the 1-based level index.
	Number int
	Level  config.LevelDef
	Layout board.Layout
	Policy board.Policy
	Rand   *rand.Rand
	Audio  board.AudioSink
	Logger *zap.Logger
}

type Session struct {
	board  *board.Board
	mode   Mode
	number int
	def    config.LevelDef
	audio  board.AudioSink
	log    *zap.Logger

	score    int
	stats    map[int]int
	timeLeft float64
	over     bool
	complete bool

	blink      bool
	blinkTimer float64

	flash     []board.Cell
	flashLeft float64
}

// New builds the board for a level and lays out its fixed cells, if any.
func New(f *jewel.Factory, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Audio == nil {
		opts.Audio = silent{}
	}
	s := &Session{
		mode:     opts.Mode,
		number:   opts.Number,
		def:      opts.Level,
		audio:    opts.Audio,
		log:      opts.Logger.With(zap.Int("level", opts.Number), zap.Stringer("mode", opts.Mode)),
		stats:    map[int]int{},
		timeLeft: float64(opts.Level.TimeLimit),
	}
	s.board = board.New(f, board.Options{
		Layout: opts.Layout,
		Policy: opts.Policy,
		Rand:   opts.Rand,
		Audio:  opts.Audio,
		Scores: s,
		Logger: opts.Logger,
	})
	if err := s.board.Setup(opts.Level.Board); err != nil {
		if !errors.Is(err, board.ErrFixupExhausted) {
			return nil, fmt.Errorf("setup level %d: %w", opts.Number, err)
		}
		s.log.Warn("level starts with matches", zap.Error(err))
	}
	s.log.Info("level started",
		zap.Int("target", opts.Level.TargetScore),
		zap.Int("time_limit", opts.Level.TimeLimit))
	return s, nil
}

// Record implements board.ScoreSink.
func (s *Session) Record(r board.Removal) {
	s.score += r.Points
	for id, n := range r.Histogram {
		s.stats[id] += n
	}
}

func (s *Session) Board() *board.Board    { return s.board }
func (s *Session) Mode() Mode             { return s.mode }
func (s *Session) Number() int            { return s.number }
func (s *Session) Level() config.LevelDef { return s.def }
func (s *Session) Score() int             { return s.score }
func (s *Session) Target() int            { return s.def.TargetScore }
func (s *Session) GameOver() bool         { return s.over }
func (s *Session) Complete() bool         { return s.complete }
func (s *Session) Finished() bool         { return s.over || s.complete }

// TimeLeft returns the whole seconds left on the countdown.
func (s *Session) TimeLeft() int {
	if s.mode != TimeAttack {
		return 0
	}
	return int(math.Ceil(s.timeLeft))
}

// Warning reports the blink phase of the low-time warning.
func (s *Session) Warning() bool { return s.blink }

// Stats returns how many jewels of each type were collected.
func (s *Session) Stats() map[int]int {
	out := make(map[int]int, len(s.stats))
	for k, v := range s.stats {
		out[k] = v
	}
	return out
}

// Flash returns the cells of the last rejected swap and the highlight
// opacity in [0, 1].
func (s *Session) Flash() ([]board.Cell, float64) {
	if s.flashLeft <= 0 {
		return nil, 0
	}
	return s.flash, s.flashLeft / FlashDuration
}

// Hint returns a productive swap when the board is waiting for input.
func (s *Session) Hint() (board.Cell, board.Cell, bool) {
	if s.Finished() || !s.board.AcceptsInput() {
		return board.Cell{}, board.Cell{}, false
	}
	return s.board.FindMove()
}

// Click forwards a pointer press in screen coordinates to the board.
func (s *Session) Click(px, py float64) board.SelectResult {
	if s.Finished() {
		return board.SelectResult{}
	}
	res := s.board.SelectAt(px, py)
	if res.Outcome == board.SelectRejected && res.Invalid != nil {
		x, y := s.board.Layout().ScreenToCell(px, py)
		s.flash = []board.Cell{*res.Invalid, {X: x, Y: y}}
		s.flashLeft = FlashDuration
	}
	return res
}

// Update advances the level by dt seconds.
func (s *Session) Update(dt float64) board.Step {
	if s.Finished() {
		return board.Step{Phase: s.board.Phase()}
	}
	if dt < 0 {
		dt = 0
	}
	if dt > board.MaxStep {
		dt = board.MaxStep
	}

	if s.flashLeft > 0 {
		s.flashLeft -= dt
	}
	if s.mode == TimeAttack {
		s.countdown(dt)
		if s.over {
			return board.Step{Phase: s.board.Phase()}
		}
	}

	step := s.board.Tick(dt)
	if step.Reshuffle != board.NotReshuffled {
		s.log.Info("board reshuffled", zap.Stringer("outcome", step.Reshuffle))
	}
	if s.mode == ScoreChallenge && s.score >= s.def.TargetScore {
		s.complete = true
		s.log.Info("target reached", zap.Int("score", s.score))
	}
	return step
}

func (s *Session) countdown(dt float64) {
	s.timeLeft -= dt
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.over = true
		s.blink = false
		s.log.Info("time up", zap.Int("score", s.score))
		return
	}
	if s.timeLeft > WarningThreshold {
		s.blink = false
		s.blinkTimer = 0
		return
	}
	s.blinkTimer += dt
	if s.blinkTimer >= blinkInterval {
		s.blinkTimer -= blinkInterval
		s.blink = !s.blink
		if s.blink {
			s.audio.Play(board.CueSelect)
		}
	}
}

type silent struct{}

func (silent) Play(board.Cue) {}
