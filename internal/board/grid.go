// Package board implements the jewel grid: storage, match detection, swap
// validation, the cascade state machine and selection handling.
//
// A Board is not safe for concurrent use. It is driven from one goroutine,
// one Tick per frame.
package board

import (
	"math/rand"
	"time"

	"github.com/04pril/go-jewelquest/internal/jewel"
	"go.uber.org/zap"
)

const (
	DefaultWidth  = 8
	DefaultHeight = 8
)

type Cell struct{ X, Y int }

func (c Cell) adjacent(o Cell) bool {
	dx, dy := absInt(c.X-o.X), absInt(c.Y-o.Y)
	return dx+dy == 1
}

// RefillEntry selects how refilled jewels enter the board.
type RefillEntry int

const (
	// EntryDrop tweens with the category profile duration.
	EntryDrop RefillEntry = iota
	// EntryMove uses the regular move tween.
	EntryMove
)

type Policy struct {
	// ShakeNeighbors shakes the surviving orthogonal neighbours of removed
	// jewels.
	ShakeNeighbors bool
	RefillEntry    RefillEntry
}

type Options struct {
	Width, Height int
	Layout        Layout
	Policy        Policy
	Rand          *rand.Rand
	// Shuffle permutes jewels on a deadlock reshuffle. Defaults to Rand.Shuffle.
	Shuffle func(n int, swap func(i, j int))
	Audio   AudioSink
	Scores  ScoreSink
	Logger  *zap.Logger
}

type Board struct {
	W, H int

	cells   [][]*jewel.Jewel
	factory *jewel.Factory
	layout  Layout
	policy  Policy
	rng     *rand.Rand
	shuffle func(n int, swap func(i, j int))
	audio   AudioSink
	scores  ScoreSink
	log     *zap.Logger

	effects  []*jewel.Jewel
	selected *Cell
	phase    Phase
	notice   float64
	// shuffled is set while a deadlock reshuffle awaits its re-check.
	shuffled bool
}

// New creates an empty board. Call Fill or Setup before use.
func New(f *jewel.Factory, opts Options) *Board {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Shuffle == nil {
		opts.Shuffle = opts.Rand.Shuffle
	}
	if opts.Audio == nil {
		opts.Audio = nopAudio{}
	}
	if opts.Scores == nil {
		opts.Scores = nopScores{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	b := &Board{
		W:       opts.Width,
		H:       opts.Height,
		factory: f,
		layout:  opts.Layout,
		policy:  opts.Policy,
		rng:     opts.Rand,
		shuffle: opts.Shuffle,
		audio:   opts.Audio,
		scores:  opts.Scores,
		log:     opts.Logger,
		phase:   PhaseIdle,
	}
	b.cells = make([][]*jewel.Jewel, b.H)
	for y := range b.cells {
		b.cells[y] = make([]*jewel.Jewel, b.W)
	}
	return b
}

func (b *Board) Layout() Layout { return b.layout }

func (b *Board) Factory() *jewel.Factory { return b.factory }

func (b *Board) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.W && y < b.H
}

func (b *Board) At(x, y int) *jewel.Jewel {
	if !b.in(x, y) {
		return nil
	}
	return b.cells[y][x]
}

func (b *Board) typeAt(x, y int) (int, bool) {
	j := b.At(x, y)
	if j == nil {
		return 0, false
	}
	return j.TypeID(), true
}

// Put creates a jewel of typeID resting at (x, y), replacing any occupant.
func (b *Board) Put(x, y, typeID int) error {
	if !b.in(x, y) {
		return nil
	}
	j, err := b.factory.Create(typeID, x, y)
	if err != nil {
		return err
	}
	j.Place(x, y, b.layout.CellToScreen(x, y))
	b.cells[y][x] = j
	return nil
}

// Fill populates every cell left-to-right, top-to-bottom. With avoid set, the
// type that would complete a run with the two cells to the left or the two
// cells above is excluded.
func (b *Board) Fill(avoid bool) error {
	n := b.factory.TypeCount()
	b.selected = nil
	b.shuffled = false
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			b.cells[y][x] = nil
		}
	}
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			banned := map[int]bool{}
			if avoid {
				if x >= 2 {
					l1, ok1 := b.typeAt(x-1, y)
					l2, ok2 := b.typeAt(x-2, y)
					if ok1 && ok2 && l1 == l2 {
						banned[l1] = true
					}
				}
				if y >= 2 {
					u1, ok1 := b.typeAt(x, y-1)
					u2, ok2 := b.typeAt(x, y-2)
					if ok1 && ok2 && u1 == u2 {
						banned[u1] = true
					}
				}
			}
			candidates := make([]int, 0, n)
			for t := 0; t < n; t++ {
				if !banned[t] {
					candidates = append(candidates, t)
				}
			}
			if len(candidates) == 0 {
				for t := 0; t < n; t++ {
					candidates = append(candidates, t)
				}
			}
			if err := b.Put(x, y, candidates[b.rng.Intn(len(candidates))]); err != nil {
				return err
			}
		}
	}
	b.phase = PhaseMatching
	return nil
}

// Load overlays a fixed layout of type ids. Rows and columns beyond the board
// and unknown ids are skipped.
func (b *Board) Load(rows [][]int) {
	for y := 0; y < len(rows) && y < b.H; y++ {
		for x := 0; x < len(rows[y]) && x < b.W; x++ {
			if err := b.Put(x, y, rows[y][x]); err != nil {
				b.log.Warn("skipping layout cell", zap.Int("x", x), zap.Int("y", y), zap.Error(err))
			}
		}
	}
	b.phase = PhaseMatching
}

// Setup prepares a level: a random fill, then the fixed layout if one is
// given followed by a fix-up pass.
func (b *Board) Setup(rows [][]int) error {
	if err := b.Fill(true); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	b.Load(rows)
	return b.FixInitialMatches()
}

// Swap exchanges two occupants and starts their move tweens. It does not
// check adjacency.
func (b *Board) Swap(x1, y1, x2, y2 int) bool {
	a, c := b.At(x1, y1), b.At(x2, y2)
	if a == nil || c == nil {
		return false
	}
	b.cells[y1][x1], b.cells[y2][x2] = c, a
	a.MoveTo(x2, y2, b.layout.CellToScreen(x2, y2))
	c.MoveTo(x1, y1, b.layout.CellToScreen(x1, y1))
	return true
}

func (b *Board) rawSwap(x1, y1, x2, y2 int) {
	b.cells[y1][x1], b.cells[y2][x2] = b.cells[y2][x2], b.cells[y1][x1]
}

// Collapse compacts every column downward, keeping relative order.
func (b *Board) Collapse() {
	for x := 0; x < b.W; x++ {
		dst := b.H - 1
		for y := b.H - 1; y >= 0; y-- {
			j := b.cells[y][x]
			if j == nil {
				continue
			}
			if y != dst {
				b.cells[dst][x] = j
				b.cells[y][x] = nil
				j.MoveTo(x, dst, b.layout.CellToScreen(x, dst))
			}
			dst--
		}
	}
}

// Refill gives every empty cell a random jewel spawned above the grid.
func (b *Board) Refill() int {
	n := 0
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.cells[y][x] != nil {
				continue
			}
			j := b.factory.CreateRandom(x, y)
			duration := jewel.MoveDuration
			if b.policy.RefillEntry == EntryDrop {
				duration = j.Type().Profile.Duration
			}
			j.Drop(x, y, b.layout.SpawnPoint(x), b.layout.CellToScreen(x, y), duration)
			b.cells[y][x] = j
			n++
		}
	}
	return n
}

// Each calls fn for every occupied cell in row-major order.
func (b *Board) Each(fn func(j *jewel.Jewel)) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if j := b.cells[y][x]; j != nil {
				fn(j)
			}
		}
	}
}

func (b *Board) Render(r Renderer) {
	r.DrawGrid(b.layout, b.W, b.H)
	b.Each(func(j *jewel.Jewel) {
		r.DrawJewel(j.Sprite())
	})
	for _, j := range b.effects {
		r.DrawJewel(j.Sprite())
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
