package level

import (
	"math/rand"
	"testing"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/config"
	"github.com/04pril/go-jewelquest/internal/jewel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = board.Layout{CellSize: 10}

type cues struct{ played []board.Cue }

func (c *cues) Play(cue board.Cue) { c.played = append(c.played, cue) }

func (c *cues) count(cue board.Cue) int {
	n := 0
	for _, p := range c.played {
		if p == cue {
			n++
		}
	}
	return n
}

func testFactory(t *testing.T) *jewel.Factory {
	t.Helper()
	cfg := config.Config{Jewels: []config.JewelDef{
		{ID: 0, Color: "red", Points: 10},
		{ID: 1, Color: "blue", Points: 10},
		{ID: 2, Color: "green", Points: 10},
		{ID: 3, Color: "yellow", Points: 10},
	}}
	cat, err := cfg.Catalog()
	require.NoError(t, err)
	return jewel.NewFactory(cat, rand.New(rand.NewSource(11)))
}

// playable has no match and a single productive swap: (4,0) with (4,1).
func playable() [][]int {
	rows := make([][]int, 8)
	for y := range rows {
		rows[y] = make([]int, 8)
		for x := range rows[y] {
			rows[y][x] = (x + 2*y) % 4
		}
	}
	rows[1][3] = 0
	return rows
}

func newSession(t *testing.T, mode Mode, def config.LevelDef) (*Session, *cues) {
	t.Helper()
	if def.Board == nil {
		def.Board = playable()
	}
	c := &cues{}
	s, err := New(testFactory(t), Options{
		Mode:   mode,
		Number: 1,
		Level:  def,
		Layout: testLayout,
		Rand:   rand.New(rand.NewSource(1)),
		Audio:  c,
	})
	require.NoError(t, err)
	return s, c
}

func center(x, y int) (float64, float64) {
	return float64(x*10 + 5), float64(y*10 + 5)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Time")
	require.NoError(t, err)
	assert.Equal(t, TimeAttack, m)
	m, err = ParseMode("score_challenge")
	require.NoError(t, err)
	assert.Equal(t, ScoreChallenge, m)
	_, err = ParseMode("zen")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestTimeAttackCountsDown(t *testing.T) {
	s, _ := newSession(t, TimeAttack, config.LevelDef{TargetScore: 100, TimeLimit: 3})
	assert.Equal(t, 3, s.TimeLeft())

	for i := 0; i < 10; i++ {
		s.Update(1.0)
	}
	assert.InDelta(t, 2.0, s.timeLeft, 1e-9, "dt is clamped per update")
	assert.False(t, s.GameOver())

	for i := 0; i < 30 && !s.GameOver(); i++ {
		s.Update(board.MaxStep)
	}
	assert.True(t, s.GameOver())
	assert.True(t, s.Finished())
	assert.Equal(t, 0, s.TimeLeft())

	x, y := center(0, 0)
	assert.Equal(t, board.SelectIgnored, s.Click(x, y).Outcome)
}

func TestTimeAttackWarningBlinks(t *testing.T) {
	s, c := newSession(t, TimeAttack, config.LevelDef{TargetScore: 100, TimeLimit: 6})
	for i := 0; i < 10; i++ {
		s.Update(board.MaxStep)
	}
	assert.False(t, s.Warning())
	assert.Zero(t, c.count(board.CueSelect))

	var toggles int
	last := s.Warning()
	for i := 0; i < 20; i++ {
		s.Update(board.MaxStep)
		if s.Warning() != last {
			toggles++
			last = s.Warning()
		}
	}
	assert.GreaterOrEqual(t, toggles, 6)
	assert.GreaterOrEqual(t, c.count(board.CueSelect), 3)
}

func TestScoreChallengeCompletes(t *testing.T) {
	s, c := newSession(t, ScoreChallenge, config.LevelDef{TargetScore: 30, TimeLimit: 1})
	assert.Equal(t, 0, s.TimeLeft())

	s.Update(0)
	require.True(t, s.Board().AcceptsInput())
	a, b, ok := s.Hint()
	require.True(t, ok)
	assert.ElementsMatch(t, []board.Cell{{X: 4, Y: 0}, {X: 4, Y: 1}}, []board.Cell{a, b})

	x, y := center(4, 0)
	assert.Equal(t, board.SelectSelected, s.Click(x, y).Outcome)
	x, y = center(4, 1)
	assert.Equal(t, board.SelectSwapped, s.Click(x, y).Outcome)

	for i := 0; i < 100 && !s.Complete(); i++ {
		s.Update(board.MaxStep)
	}
	require.True(t, s.Complete())
	assert.False(t, s.GameOver())
	assert.GreaterOrEqual(t, s.Score(), 30)
	assert.GreaterOrEqual(t, s.Stats()[0], 3)
	assert.Contains(t, c.played, board.CueMatch)

	_, _, ok = s.Hint()
	assert.False(t, ok)
}

func TestRejectedSwapFlashes(t *testing.T) {
	s, _ := newSession(t, ScoreChallenge, config.LevelDef{TargetScore: 1000, TimeLimit: 1})
	s.Update(0)

	x, y := center(0, 0)
	s.Click(x, y)
	x, y = center(1, 0)
	res := s.Click(x, y)
	require.Equal(t, board.SelectRejected, res.Outcome)

	cells, alpha := s.Flash()
	assert.Equal(t, []board.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}, cells)
	assert.InDelta(t, 1.0, alpha, 1e-9)

	s.Update(board.MaxStep)
	_, alpha = s.Flash()
	assert.InDelta(t, 0.8, alpha, 1e-9)

	for i := 0; i < 5; i++ {
		s.Update(board.MaxStep)
	}
	cells, alpha = s.Flash()
	assert.Nil(t, cells)
	assert.Zero(t, alpha)
	assert.Zero(t, s.Score())
}
