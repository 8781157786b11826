// Package audio plays the board cues as short synthesized tones.
package audio

import (
	"sync"
	"time"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.4
)

// Player implements board.AudioSink. Play never blocks: sounds are queued on
// a mixer that the speaker drains on its own goroutine.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	log         *zap.Logger
}

func NewPlayer(log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: defaultVolume,
		log:    log,
	}
}

// Init opens the output device. Without it Play is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Debug("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

func (p *Player) Play(cue board.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	s := Sound(cue, sampleRate, p.volume)
	if s == nil {
		p.log.Debug("unknown cue", zap.String("cue", string(cue)))
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = m
	if m && p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// ToggleMute flips the mute flag and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	m := !p.muted
	p.mu.Unlock()
	p.SetMuted(m)
	return m
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close silences everything still queued.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
