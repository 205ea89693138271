package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/logger"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/story"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logger.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() {
			_ = closer.Close()
		}()
	}

	ctx := context.Background()

	store, err := newStore(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Save storage error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	infos, err := story.Scan(cfg.StoriesDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to scan stories in %s: %v\n", cfg.StoriesDir, err)
		os.Exit(1)
	}
	if len(infos) == 0 {
		fmt.Fprintf(os.Stderr, "No stories found in %s\n", cfg.StoriesDir)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(ctx, log, store, infos),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, error) {
	switch cfg.SaveBackend {
	case config.BackendRedis:
		store := storage.NewRedisStore(cfg.RedisAddr, log)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis at %s is unreachable: %w", cfg.RedisAddr, err)
		}
		return store, nil
	default:
		return storage.NewFileStore(cfg.SavesDir, log), nil
	}
}
