package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/mergebox/internal/config"
	"github.com/tomz197/mergebox/internal/highscore"
	"github.com/tomz197/mergebox/internal/logging"
	"github.com/tomz197/mergebox/internal/loop"
	"github.com/tomz197/mergebox/internal/tuning"
)

func main() {
	cfg := config.Load()

	// Logs go to a file; stdout belongs to the game.
	logger, err := logging.NewFile(cfg.LogLevel, config.GetEnv("LOG_FILE", "mergebox.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	tun, err := tuning.LoadFile(cfg.TuningFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tuning: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	store, err := highscore.Open(ctx, highscore.Options{RedisURL: cfg.RedisURL, File: cfg.HighScoreFile})
	if err != nil {
		logger.Warn("high score store unavailable, keeping scores in memory", zap.Error(err))
		store = highscore.NewMemoryStore(0)
	}
	defer store.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, loop.Options{
		Tuning: &tun,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
