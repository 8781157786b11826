package app

import (
	"testing"

	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/config"
	"github.com/04pril/go-jewelquest/internal/level"
	"github.com/04pril/go-jewelquest/internal/scores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAudio struct {
	cues  []board.Cue
	muted bool
}

func (f *fakeAudio) Play(c board.Cue) { f.cues = append(f.cues, c) }

func (f *fakeAudio) Muted() bool { return f.muted }

func (f *fakeAudio) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
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

func testConfig() config.Config {
	return config.Config{
		Jewels: []config.JewelDef{
			{ID: 0, Color: "red", Points: 10},
			{ID: 1, Color: "blue", Points: 10},
			{ID: 2, Color: "green", Points: 10},
			{ID: 3, Color: "yellow", Points: 10},
		},
		Levels: []config.LevelDef{
			{ID: 1, TargetScore: 30, TimeLimit: 2, Board: playable()},
			{ID: 2, TargetScore: 5000, TimeLimit: 2, Board: playable()},
		},
	}
}

func newApp(t *testing.T) (*App, *fakeAudio, *scores.Store) {
	t.Helper()
	store, err := scores.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	fa := &fakeAudio{}
	a, err := New(Options{
		Config: testConfig(),
		Layout: board.Layout{CellSize: 10},
		Seed:   7,
		Audio:  fa,
		Scores: store,
	})
	require.NoError(t, err)
	return a, fa, store
}

func (a *App) press(keys ...Key) {
	for _, k := range keys {
		a.Key(k)
	}
}

func (a *App) clickCell(x, y int) {
	a.Click(float64(x*10+5), float64(y*10+5))
}

func (a *App) run(seconds float64) {
	for t := 0.0; t < seconds; t += board.MaxStep {
		a.Update(board.MaxStep)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Options{Config: config.Config{}})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestMenuNavigation(t *testing.T) {
	a, _, _ := newApp(t)
	assert.Equal(t, StateMenu, a.State())

	a.press(KeyUp)
	assert.Equal(t, len(MenuItems)-1, a.MenuIndex())
	a.press(KeyDown, KeyDown, KeyDown)
	assert.Equal(t, 2, a.MenuIndex())

	a.press(KeyEnter)
	assert.Equal(t, StateHelp, a.State())
	a.press(KeyEscape)
	assert.Equal(t, StateMenu, a.State())

	a.press(KeyUp, KeyEnter)
	assert.Equal(t, StateScores, a.State())
	assert.Empty(t, a.HighScores())
	a.press(KeyEnter)
	assert.Equal(t, StateMenu, a.State())

	a.press(KeyDown, KeyDown, KeyEnter)
	assert.True(t, a.Quit())
}

func TestModeSelectBack(t *testing.T) {
	a, _, _ := newApp(t)
	a.press(KeyEnter)
	require.Equal(t, StateModeSelect, a.State())
	a.press(KeyDown, KeyDown, KeyEnter)
	assert.Equal(t, StateMenu, a.State())
	assert.Nil(t, a.Session())
}

func TestScoreChallengeAdvancesLevel(t *testing.T) {
	a, fa, _ := newApp(t)
	a.press(KeyEnter, KeyDown, KeyEnter)
	require.Equal(t, StatePlaying, a.State())
	s := a.Session()
	require.NotNil(t, s)
	assert.Equal(t, level.ScoreChallenge, s.Mode())
	assert.Equal(t, 1, s.Number())

	a.Update(0)
	a.press(KeyHint)
	assert.ElementsMatch(t, []board.Cell{{X: 4, Y: 0}, {X: 4, Y: 1}}, a.HintCells())

	a.press(KeyEnter)
	assert.Same(t, s, a.Session(), "enter does nothing mid-level")

	a.clickCell(4, 0)
	assert.Nil(t, a.HintCells())
	a.clickCell(4, 1)
	a.run(5)
	require.True(t, s.Complete())
	assert.Contains(t, fa.cues, board.CueSwapSuccess)
	assert.True(t, a.HasNextLevel())

	a.press(KeyEnter)
	require.NotNil(t, a.Session())
	assert.Equal(t, 2, a.Session().Number())
	assert.Zero(t, a.Session().Score())
}

func (a *App) scoreOnce(t *testing.T) {
	t.Helper()
	a.Update(0)
	a.clickCell(4, 0)
	a.clickCell(4, 1)
	a.run(3)
	require.True(t, a.Session().GameOver())
}

func TestTimeAttackHighScore(t *testing.T) {
	a, _, store := newApp(t)
	a.press(KeyEnter, KeyEnter)
	require.Equal(t, StatePlaying, a.State())
	assert.Equal(t, level.TimeAttack, a.Session().Mode())

	a.scoreOnce(t)
	require.Equal(t, StateNameInput, a.State())
	points := a.Session().Score()
	assert.GreaterOrEqual(t, points, 30)

	a.press(KeyEnter)
	assert.Equal(t, StateNameInput, a.State(), "empty name is not saved")
	for _, r := range "ab c!d" {
		a.Text(r)
	}
	assert.Equal(t, "abcd", a.Name())
	a.press(KeyBackspace)
	assert.Equal(t, "abc", a.Name())

	a.press(KeyEnter)
	require.Equal(t, StatePlaying, a.State(), "saving moves on to the next level")
	assert.Equal(t, 2, a.Session().Number())
	assert.Equal(t, level.TimeAttack, a.Session().Mode())

	a.scoreOnce(t)
	require.Equal(t, StateNameInput, a.State())
	for _, r := range "de" {
		a.Text(r)
	}
	a.press(KeyEnter)
	assert.Equal(t, StateScores, a.State(), "the table follows the last level")
	assert.Nil(t, a.Session())

	require.Len(t, a.HighScores(), 2)
	byName := map[string]scores.Record{}
	for _, r := range a.HighScores() {
		byName[r.Name] = r
	}
	rec := byName["abc"]
	assert.Equal(t, points, rec.Points)
	assert.Equal(t, "Time Attack", rec.Mode)
	assert.Equal(t, 1, rec.Level)
	assert.Zero(t, rec.TimeLeft)
	assert.Equal(t, 2, byName["de"].Level)

	top, err := store.Top(t.Context(), 0)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestTimeAttackSkippedNameAdvances(t *testing.T) {
	a, _, store := newApp(t)
	a.press(KeyEnter, KeyEnter)
	a.scoreOnce(t)
	require.Equal(t, StateNameInput, a.State())

	a.press(KeyEscape)
	require.Equal(t, StatePlaying, a.State())
	assert.Equal(t, 2, a.Session().Number())

	top, err := store.Top(t.Context(), 0)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestTimeAttackGameOverAdvancesLevel(t *testing.T) {
	a, _, _ := newApp(t)
	a.press(KeyEnter, KeyEnter)
	a.run(3)
	require.True(t, a.Session().GameOver())
	assert.Equal(t, StatePlaying, a.State(), "zero never qualifies")

	a.press(KeyEnter)
	require.Equal(t, StatePlaying, a.State())
	s := a.Session()
	require.NotNil(t, s)
	assert.Equal(t, 2, s.Number())
	assert.Equal(t, level.TimeAttack, s.Mode())
	assert.False(t, s.GameOver())
	assert.Equal(t, 2, s.TimeLeft())

	a.run(3)
	require.True(t, a.Session().GameOver())
	a.press(KeyEnter)
	assert.Equal(t, StateMenu, a.State(), "menu after the last level")
	assert.Nil(t, a.Session())
}

func TestRestartAndMute(t *testing.T) {
	a, fa, _ := newApp(t)
	a.press(KeyEnter, KeyDown, KeyEnter)
	first := a.Session()
	a.press(KeyRestart)
	assert.NotSame(t, first, a.Session())
	assert.Equal(t, 1, a.Session().Number())

	a.press(KeyMute)
	assert.True(t, a.Muted())
	assert.True(t, fa.muted)
	a.press(KeyMute)
	assert.False(t, a.Muted())

	a.press(KeyEscape)
	assert.Equal(t, StateMenu, a.State())
	assert.Nil(t, a.Session())
}
