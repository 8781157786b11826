package audio

import (
	"math"
	"time"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const release = 30 * time.Millisecond

type note struct {
	freq float64
	dur  time.Duration
}

// cueNotes are the synthesized tones for each board cue. A zero freq is a
// rest.
var cueNotes = map[board.Cue][]note{
	board.CueSelect:      {{freq: 660, dur: 40 * time.Millisecond}},
	board.CueSwapSuccess: {{freq: 523.25, dur: 60 * time.Millisecond}, {freq: 783.99, dur: 80 * time.Millisecond}},
	board.CueSwapFail:    {{freq: 196, dur: 90 * time.Millisecond}, {freq: 0, dur: 20 * time.Millisecond}, {freq: 164.81, dur: 120 * time.Millisecond}},
	board.CueMatch:       {{freq: 880, dur: 60 * time.Millisecond}, {freq: 1108.73, dur: 60 * time.Millisecond}, {freq: 1318.51, dur: 120 * time.Millisecond}},
}

// Sound builds the streamer for a cue, or nil when the cue is unknown.
func Sound(cue board.Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := rate.N(n.dur)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		parts = append(parts, newFade(beep.Take(samples, tone), samples, rate.N(release)))
	}
	return newVolume(beep.Seq(parts...), vol)
}

// Samples returns the length of a cue in samples.
func Samples(cue board.Cue, rate beep.SampleRate) int {
	n := 0
	for _, nt := range cueNotes[cue] {
		n += rate.N(nt.dur)
	}
	return n
}

// fade ramps the tail of a stream to silence to avoid clicks.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
	tail     int
}

func newFade(s beep.Streamer, total, tail int) beep.Streamer {
	if tail > total {
		tail = total
	}
	return &fade{streamer: s, total: total, tail: tail}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	start := f.total - f.tail
	for i := 0; i < n; i++ {
		if f.pos >= start && f.tail > 0 {
			g := float64(f.total-f.pos) / float64(f.tail)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
