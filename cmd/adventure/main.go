package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/logger"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/state"
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

	// A story directory given on the command line skips the menu.
	storyDir := ""
	if len(os.Args) > 1 {
		storyDir = os.Args[1]
	} else {
		storyDir, err = selectStory(cfg.StoriesDir, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	s, err := story.NewLoader(log).Load(storyDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load story: %v\n", err)
		os.Exit(1)
	}

	gs, err := state.NewGameState(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	store, err := newStore(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Save storage error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	log.Info("game started",
		"session", gs.ID,
		"story", s.Metadata.Title,
		"backend", cfg.SaveBackend)

	fmt.Printf("\n=== %s ===\n", s.Metadata.Title)
	if s.Metadata.Author != "" {
		fmt.Printf("by %s\n", s.Metadata.Author)
	}
	if s.Metadata.Description != "" {
		fmt.Printf("\n%s\n", s.Metadata.Description)
	}
	fmt.Println("\nType 'help' for a list of commands.")
	fmt.Println()

	// The loop and the engine's quit confirmation must consume the same
	// buffer, so one reader is built here and shared.
	reader := bufio.NewReader(os.Stdin)
	e := engine.New(gs, store, os.Stdout, reader, log)
	e.Execute(ctx, command.Parse("look"))

	for {
		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			log.Error("failed to read input", "error", err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if e.Execute(ctx, command.Parse(line)) == engine.ResultQuit {
			return
		}
	}
}

// selectStory shows the numbered story menu and returns the chosen
// directory.
func selectStory(storiesDir string, log *slog.Logger) (string, error) {
	infos, err := story.Scan(storiesDir, log)
	if err != nil {
		return "", fmt.Errorf("failed to scan stories: %w", err)
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("no stories found in %s", storiesDir)
	}

	fmt.Println("Available Stories:")
	for i, info := range infos {
		if info.Author != "" {
			fmt.Printf("  %d - %s by %s\n", i+1, info.Title, info.Author)
		} else {
			fmt.Printf("  %d - %s\n", i+1, info.Title)
		}
	}
	fmt.Print("\nSelect a story by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(infos) {
		return "", fmt.Errorf("invalid selection")
	}
	return infos[choice-1].Dir, nil
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
