package audio

import (
	"math"
	"testing"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		n += k
		if !ok {
			break
		}
	}
	require.NoError(t, s.Err())
	return n, peak
}

func TestSoundForEveryCue(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, cue := range []board.Cue{board.CueSelect, board.CueSwapSuccess, board.CueSwapFail, board.CueMatch} {
		t.Run(string(cue), func(t *testing.T) {
			s := Sound(cue, rate, 1)
			require.NotNil(t, s)
			n, peak := drain(t, s)
			assert.Equal(t, Samples(cue, rate), n)
			assert.Greater(t, peak, 0.1)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
}

func TestSoundSilentAtZeroVolume(t *testing.T) {
	_, peak := drain(t, Sound(board.CueMatch, beep.SampleRate(8000), 0))
	assert.Zero(t, peak)
}

func TestSoundUnknownCue(t *testing.T) {
	assert.Nil(t, Sound(board.Cue("fanfare"), beep.SampleRate(8000), 1))
	assert.Zero(t, Samples(board.Cue("fanfare"), beep.SampleRate(8000)))
}

func TestFadeEndsAtSilence(t *testing.T) {
	s := newFade(beep.Take(100, constant{}), 100, 10)
	buf := make([][2]float64, 100)
	n, _ := s.Stream(buf)
	require.Equal(t, 100, n)
	assert.Equal(t, 1.0, buf[89][0])
	assert.InDelta(t, 0.1, buf[99][0], 1e-9)
}

type constant struct{}

func (constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer(nil)
	assert.NotPanics(t, func() { p.Play(board.CueMatch) })
	assert.False(t, p.Muted())
	assert.True(t, p.ToggleMute())
	assert.True(t, p.Muted())
	assert.False(t, p.ToggleMute())
	p.Close()

	var _ board.AudioSink = p
}
