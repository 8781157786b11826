package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/04pril/go-jewelquest/internal/jewel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Jewels, 5)
	assert.Len(t, c.Levels, 3)

	cat, err := c.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 5, cat.Len())
	purple, err := cat.Type(4)
	require.NoError(t, err)
	assert.Equal(t, jewel.Purple, purple.Category)
	assert.Equal(t, jewel.ProfileFor(jewel.Purple), purple.Profile)

	l3, ok := c.Level(3)
	require.True(t, ok)
	assert.Len(t, l3.Board, 8)
	_, ok = c.Level(4)
	assert.False(t, ok)
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesSections(t *testing.T) {
	path := writeFile(t, `{"levels":[{"id":1,"target_score":50,"time_limit":10}]}`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Jewels, 5, "jewels keep defaults")
	require.Len(t, c.Levels, 1)
	assert.Equal(t, 50, c.Levels[0].TargetScore)
	assert.Equal(t, 10, c.Levels[0].TimeLimit)
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, `{`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, `{"jewels":[{"id":0,"color":"red","points":1},{"id":2,"color":"blue","points":1}]}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, jewel.ErrInvalidCatalog)

	_, err = Load(writeFile(t, `{"levels":[{"id":1,"target_score":0,"time_limit":10}]}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jewels.log")
	log, err := NewLogger(false, path)
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
