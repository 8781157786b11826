package main

import (
	"flag"
	"log"

	"github.com/04pril/go-jewelquest/internal/app"
	"github.com/04pril/go-jewelquest/internal/audio"
	"github.com/04pril/go-jewelquest/internal/board"
	"github.com/04pril/go-jewelquest/internal/config"
	"github.com/04pril/go-jewelquest/internal/game"
	"github.com/04pril/go-jewelquest/internal/scores"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "jewel and level definitions (JSON); empty uses the built-in set")
		scoresPath = flag.String("scores", "", "high score database (default: user config dir)")
		seed       = flag.Int64("seed", 0, "random seed (0 = time based)")
		mute       = flag.Bool("mute", false, "start with sound off")
		shake      = flag.Bool("shake", false, "shake neighbours of cleared jewels")
		slide      = flag.Bool("slide", false, "refill with the plain move tween instead of the drop profile")
		debug      = flag.Bool("debug", false, "development logging")
	)
	flag.Parse()

	logger, err := config.NewLogger(*debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	if *scoresPath == "" {
		*scoresPath = scores.DefaultPath(config.DataDir())
	}
	store, err := scores.Open(*scoresPath)
	if err != nil {
		logger.Fatal("open scores", zap.String("path", *scoresPath), zap.Error(err))
	}
	defer store.Close()

	player := audio.NewPlayer(logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	defer player.Close()
	player.SetMuted(*mute)

	policy := board.Policy{ShakeNeighbors: *shake}
	if *slide {
		policy.RefillEntry = board.EntryMove
	}

	a, err := app.New(app.Options{
		Config: cfg,
		Layout: game.BoardLayout,
		Policy: policy,
		Seed:   *seed,
		Audio:  player,
		Scores: store,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("start", zap.Error(err))
	}

	if err := game.Run(a); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
