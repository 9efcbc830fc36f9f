package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/eggs/internal/audio"
	"github.com/tomz197/eggs/internal/config"
	"github.com/tomz197/eggs/internal/loop"
	"github.com/tomz197/eggs/internal/persist"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	// The terminal is the game screen, so logs go to a file.
	if cfg.Logging.File == "" {
		cfg.Logging.File = "eggs.log"
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := persist.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	var sound loop.Sound
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio, log)
		if err := player.Init(); err == nil {
			defer player.Close()
			sound = player
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	log.Info("starting local game", zap.String("storage", cfg.Storage.Driver))
	return loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		Store: backend.Player(persist.LocalPlayer),
		Sound: sound,
		Log:   log,
		Seed:  cfg.Game.Seed,
		FPS:   cfg.Game.FPS,
	})
}
