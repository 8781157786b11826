package board

import "github.com/04pril/go-jewelquest/internal/jewel"

type Cue string

const (
	CueSelect      Cue = "select"
	CueSwapSuccess Cue = "swap_success"
	CueSwapFail    Cue = "swap_fail"
	CueMatch       Cue = "match"
)

// AudioSink plays named cues. Play must not block.
type AudioSink interface {
	Play(cue Cue)
}

// ScoreSink receives every removal batch.
type ScoreSink interface {
	Record(r Removal)
}

// Renderer draws a board. Sprites are value copies and may be retained.
type Renderer interface {
	DrawGrid(l Layout, w, h int)
	DrawJewel(s jewel.Sprite)
}

type nopAudio struct{}

func (nopAudio) Play(Cue) {}

type nopScores struct{}

func (nopScores) Record(Removal) {}
