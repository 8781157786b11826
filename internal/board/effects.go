package board

import "github.com/04pril/go-jewelquest/internal/jewel"

// Settled reports that no jewel, placed or in flight, is moving or being
// destroyed.
func (b *Board) Settled() bool {
	settled := true
	b.Each(func(j *jewel.Jewel) {
		if j.Animating() {
			settled = false
		}
	})
	return settled && len(b.effects) == 0
}

// Effects returns the jewels whose destroy animation is still running.
func (b *Board) Effects() []*jewel.Jewel { return b.effects }

func (b *Board) animate(dt float64) {
	b.Each(func(j *jewel.Jewel) {
		j.Update(dt)
	})
	live := b.effects[:0]
	for _, j := range b.effects {
		j.Update(dt)
		if !j.Destroyed() {
			live = append(live, j)
		}
	}
	for i := len(live); i < len(b.effects); i++ {
		b.effects[i] = nil
	}
	b.effects = live
}
