package board

import (
	"errors"
	"fmt"

	"github.com/04pril/go-jewelquest/internal/jewel"
	"go.uber.org/zap"
)

const maxFixupAttempts = 100

var ErrFixupExhausted = errors.New("initial matches remain after fix-up")

// IsValidSwap reports whether swapping the two cells yields a match. The
// board is left exactly as it was.
func (b *Board) IsValidSwap(x1, y1, x2, y2 int) bool {
	if b.At(x1, y1) == nil || b.At(x2, y2) == nil {
		return false
	}
	b.rawSwap(x1, y1, x2, y2)
	ok := len(b.FindMatches()) > 0
	b.rawSwap(x1, y1, x2, y2)
	return ok
}

// Removal is the result of clearing one batch of matches.
type Removal struct {
	Points    int
	Histogram map[int]int
	Cells     []Cell
}

// RemoveMatches clears the union of all matched cells, each counted once,
// and hands the jewels to the in-flight effects set.
func (b *Board) RemoveMatches(matches []Match) Removal {
	r := Removal{Histogram: map[int]int{}}
	seen := map[Cell]bool{}
	for _, m := range matches {
		for _, c := range m {
			if seen[c] || b.At(c.X, c.Y) == nil {
				continue
			}
			seen[c] = true
			r.Cells = append(r.Cells, c)
		}
	}

	if b.policy.ShakeNeighbors {
		for _, c := range r.Cells {
			for _, d := range neighbours {
				n := Cell{c.X + d.X, c.Y + d.Y}
				if seen[n] {
					continue
				}
				if j := b.At(n.X, n.Y); j != nil {
					j.Shake()
				}
			}
		}
	}

	for _, c := range r.Cells {
		j := b.cells[c.Y][c.X]
		r.Points += j.Points()
		r.Histogram[j.TypeID()]++
		if b.selected != nil && *b.selected == c {
			b.selected = nil
		}
		j.Destroy()
		b.effects = append(b.effects, j)
		b.cells[c.Y][c.X] = nil
	}
	return r
}

// FixInitialMatches re-rolls matched cells to a different type until no
// match remains or the attempt bound is hit.
func (b *Board) FixInitialMatches() error {
	n := b.factory.TypeCount()
	matches := b.FindMatches()
	attempts := 0
	for len(matches) > 0 && attempts < maxFixupAttempts && n > 1 {
		for _, m := range matches {
			for _, c := range m {
				cur, ok := b.typeAt(c.X, c.Y)
				if !ok {
					continue
				}
				next := b.rng.Intn(n - 1)
				if next >= cur {
					next++
				}
				if err := b.Put(c.X, c.Y, next); err != nil {
					return err
				}
			}
		}
		matches = b.FindMatches()
		attempts++
	}
	if len(matches) > 0 {
		b.log.Warn("could not eliminate initial matches",
			zap.Int("attempts", attempts),
			zap.Int("matches", len(matches)))
		return fmt.Errorf("%w: %d matches after %d attempts", ErrFixupExhausted, len(matches), attempts)
	}
	return nil
}

type ReshuffleOutcome int

const (
	NotReshuffled ReshuffleOutcome = iota
	Reshuffled
	// Refilled means the shuffled layout was still deadlocked and the board
	// was filled from scratch.
	Refilled
)

func (o ReshuffleOutcome) String() string {
	switch o {
	case Reshuffled:
		return "reshuffled"
	case Refilled:
		return "refilled"
	}
	return "none"
}

// Reshuffle redistributes all placed jewels in row-major order after a
// shuffle, falling back to a fresh fill when that is still deadlocked.
func (b *Board) Reshuffle() ReshuffleOutcome {
	n := b.redistribute()
	if b.HasPossibleMoves() {
		b.log.Info("board reshuffled", zap.Int("jewels", n))
		return Reshuffled
	}
	b.refillDeadlocked()
	return Refilled
}

// redistribute shuffles the placed jewels back onto the board in row-major
// order and returns how many were moved.
func (b *Board) redistribute() int {
	var jewels []*jewel.Jewel
	b.Each(func(j *jewel.Jewel) {
		j.Deselect()
		jewels = append(jewels, j)
	})
	b.selected = nil
	b.shuffle(len(jewels), func(i, k int) {
		jewels[i], jewels[k] = jewels[k], jewels[i]
	})

	i := 0
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if i < len(jewels) {
				jewels[i].MoveTo(x, y, b.layout.CellToScreen(x, y))
				b.cells[y][x] = jewels[i]
				i++
				continue
			}
			b.cells[y][x] = nil
		}
	}
	return len(jewels)
}

func (b *Board) refillDeadlocked() {
	if err := b.Fill(true); err != nil {
		b.log.Error("refill after reshuffle failed", zap.Error(err))
	}
	b.log.Info("reshuffle still deadlocked, board refilled")
}
