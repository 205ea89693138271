package story

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/adventure-engine/pkg/inifmt"
)

// Info is the lightweight story descriptor shown in the selection menu.
// Only story.ini is read; the full world loads after selection.
type Info struct {
	Title       string
	Author      string
	Version     string
	Description string
	Dir         string
}

// Scan enumerates story subdirectories under storiesDir. Directories
// without a readable story.ini are skipped, not fatal.
func Scan(storiesDir string, logger *slog.Logger) ([]Info, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(storiesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read stories directory %s: %w", storiesDir, err)
	}

	var infos []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(storiesDir, entry.Name())
		info, err := readInfo(dir)
		if err != nil {
			logger.Warn("skipping story directory", "dir", dir, "error", err)
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func readInfo(dir string) (Info, error) {
	f, err := os.Open(filepath.Join(dir, StoryFile))
	if err != nil {
		return Info{}, err
	}
	defer f.Close() //nolint:errcheck // read-only

	info := Info{Dir: dir}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := inifmt.ParseKeyValue(scanner.Text())
		if !ok {
			continue
		}
		switch key {
		case "title":
			info.Title = value
		case "author":
			info.Author = value
		case "version":
			info.Version = value
		case "description":
			info.Description = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Info{}, err
	}
	if info.Title == "" {
		return Info{}, fmt.Errorf("story.ini in %s has no title", dir)
	}
	return info, nil
}
