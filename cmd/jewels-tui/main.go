// Command jewels-tui plays Jewel Quest in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/04pril/go-jewelquest/internal/app"
	"github.com/04pril/go-jewelquest/internal/audio"
	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/config"
	"github.com/04pril/go-jewelquest/internal/scores"
	"github.com/04pril/go-jewelquest/internal/term"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jewels-tui:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "jewel and level definitions (JSON); empty uses the built-in set")
		scoresPath = flag.String("scores", "", "high score database (default: user config dir)")
		logPath    = flag.String("log", "", "log file (default: jewels.log in the user config dir)")
		seed       = flag.Int64("seed", 0, "random seed (0 = time based)")
		mute       = flag.Bool("mute", false, "start with sound off")
		shake      = flag.Bool("shake", false, "shake neighbours of cleared jewels")
		debug      = flag.Bool("debug", false, "development logging")
	)
	flag.Parse()

	dir := config.DataDir()
	if *logPath == "" {
		*logPath = filepath.Join(dir, "jewels.log")
	}
	// The screen owns stdout, so logs always go to a file.
	logger, err := config.NewLogger(*debug, *logPath)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if *scoresPath == "" {
		*scoresPath = scores.DefaultPath(dir)
	}
	store, err := scores.Open(*scoresPath)
	if err != nil {
		return err
	}
	defer store.Close()

	player := audio.NewPlayer(logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	defer player.Close()
	player.SetMuted(*mute)

	a, err := app.New(app.Options{
		Config: cfg,
		Layout: term.BoardLayout,
		Policy: board.Policy{ShakeNeighbors: *shake, RefillEntry: board.EntryMove},
		Seed:   *seed,
		Audio:  player,
		Scores: store,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	host, err := term.New(a, logger)
	if err != nil {
		return err
	}
	defer host.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("started", zap.String("scores", *scoresPath), zap.Int("levels", a.Levels()))
	if err := host.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
