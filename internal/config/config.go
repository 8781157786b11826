// Package config loads the jewel catalog and level definitions.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/04pril/go-jewelquest/internal/jewel"
	"go.uber.org/zap"
)

//go:embed defaults.json
var defaultsJSON []byte

var ErrInvalidConfig = errors.New("invalid config")

type JewelDef struct {
	ID     int    `json:"id"`
	Color  string `json:"color"`
	Points int    `json:"points"`
	Effect string `json:"effect,omitempty"`
	Image  string `json:"image,omitempty"`
}

type LevelDef struct {
	ID          int `json:"id"`
	TargetScore int `json:"target_score"`
	// TimeLimit is in seconds and only applies to time attack.
	TimeLimit int     `json:"time_limit"`
	Board     [][]int `json:"board,omitempty"`
}

type Config struct {
	Jewels []JewelDef `json:"jewels"`
	Levels []LevelDef `json:"levels"`
}

// Default returns the built-in catalog and levels.
func Default() Config {
	var c Config
	if err := json.Unmarshal(defaultsJSON, &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return c
}

// Load reads a config file. Sections missing from the file keep their
// defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var override Config
	if err := json.Unmarshal(data, &override); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(override.Jewels) > 0 {
		c.Jewels = override.Jewels
	}
	if len(override.Levels) > 0 {
		c.Levels = override.Levels
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if len(c.Jewels) == 0 {
		return fmt.Errorf("%w: no jewels", ErrInvalidConfig)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidConfig)
	}
	for _, j := range c.Jewels {
		if j.Points < 0 {
			return fmt.Errorf("%w: jewel %d has negative points", ErrInvalidConfig, j.ID)
		}
	}
	for i, l := range c.Levels {
		if l.TargetScore <= 0 {
			return fmt.Errorf("%w: level %d needs a positive target_score", ErrInvalidConfig, i+1)
		}
		if l.TimeLimit <= 0 {
			return fmt.Errorf("%w: level %d needs a positive time_limit", ErrInvalidConfig, i+1)
		}
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Catalog converts the jewel definitions into a jewel catalog.
func (c Config) Catalog() (*jewel.Catalog, error) {
	defs := make([]jewel.Type, 0, len(c.Jewels))
	for _, j := range c.Jewels {
		defs = append(defs, jewel.Type{
			ID:       j.ID,
			Category: jewel.Category(j.Color),
			Points:   j.Points,
			Effect:   j.Effect,
			Image:    j.Image,
		})
	}
	return jewel.NewCatalog(defs)
}

// Level returns the 1-based level n.
func (c Config) Level(n int) (LevelDef, bool) {
	if n < 1 || n > len(c.Levels) {
		return LevelDef{}, false
	}
	return c.Levels[n-1], true
}

// DataDir returns the per-user directory for saved state, falling back to
// the working directory.
func DataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	base := filepath.Join(dir, "go-jewelquest")
	_ = os.MkdirAll(base, 0o755)
	return base
}

// NewLogger builds the process logger. Debug enables development output;
// paths default to stderr.
func NewLogger(debug bool, paths ...string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	if len(paths) > 0 {
		cfg.OutputPaths = paths
		cfg.ErrorOutputPaths = paths
	}
	return cfg.Build()
}
