package story

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/inifmt"
)

// Content file names inside a story directory. Only StoryFile is
// mandatory; the rest default to empty sets.
const (
	StoryFile  = "story.ini"
	RoomsFile  = "rooms.ini"
	ItemsFile  = "items.ini"
	NPCsFile   = "npcs.ini"
	QuestsFile = "quests.ini"
)

// Loader reads story directories into Story values.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load materializes a complete Story from a directory. story.ini must
// exist and name a start room that resolves against rooms.ini; the other
// content files are optional and load as empty sets when absent.
func (l *Loader) Load(dir string) (*Story, error) {
	s := &Story{Dir: dir}

	if err := l.loadMetadata(s); err != nil {
		return nil, err
	}

	var err error
	if s.Rooms, err = l.loadRooms(filepath.Join(dir, RoomsFile)); err != nil {
		return nil, err
	}
	if s.Items, err = l.loadItems(filepath.Join(dir, ItemsFile)); err != nil {
		return nil, err
	}
	if s.NPCs, err = l.loadNPCs(filepath.Join(dir, NPCsFile)); err != nil {
		return nil, err
	}
	if s.Quests, err = l.loadQuests(filepath.Join(dir, QuestsFile)); err != nil {
		return nil, err
	}

	s.reindex()
	if s.FindRoom(s.Metadata.StartRoom) == nil {
		return nil, fmt.Errorf("story %q: start room %q does not resolve", s.Metadata.Title, s.Metadata.StartRoom)
	}

	l.logger.Info("story loaded",
		"title", s.Metadata.Title,
		"rooms", len(s.Rooms),
		"items", len(s.Items),
		"npcs", len(s.NPCs),
		"quests", len(s.Quests))
	return s, nil
}

func (l *Loader) loadMetadata(s *Story) error {
	path := filepath.Join(s.Dir, StoryFile)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if _, ok := inifmt.ParseSection(line); ok {
			// [STORY] and [SETTINGS] share one flat key space.
			continue
		}
		key, value, ok := inifmt.ParseKeyValue(line)
		if !ok {
			continue
		}
		switch key {
		case "title":
			s.Metadata.Title = value
		case "author":
			s.Metadata.Author = value
		case "version":
			s.Metadata.Version = value
		case "description":
			s.Metadata.Description = value
		case "start_room":
			s.Metadata.StartRoom = value
		case "respawn_room":
			s.Metadata.RespawnRoom = value
		case "max_inventory_weight":
			s.Metadata.MaxInventoryWeight = atoi(value)
		case "victory_score":
			s.Metadata.VictoryScore = atoi(value)
		case "victory_text":
			s.Metadata.VictoryText = value
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if s.Metadata.StartRoom == "" {
		return fmt.Errorf("%s does not define a start_room", path)
	}
	return nil
}

// forEachSection streams a content file, invoking open for every section
// header carrying the wanted TYPE: prefix and set for every key=value
// pair inside an open section. A missing file is not an error: the
// loader logs a warning and the caller gets zero records, matching the
// optional-content contract. Records land in file order.
func (l *Loader) forEachSection(path, prefix string, open func(id string), set func(key, value string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("optional story file missing", "path", path)
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	inSection := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if section, ok := inifmt.ParseSection(line); ok {
			if strings.HasPrefix(section, prefix) {
				inSection = true
				open(section[len(prefix):])
			} else {
				inSection = false
			}
			continue
		}

		if !inSection {
			continue
		}
		if key, value, ok := inifmt.ParseKeyValue(line); ok {
			set(key, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

func (l *Loader) loadRooms(path string) ([]*Room, error) {
	var rooms []*Room
	var cur *Room

	err := l.forEachSection(path, "ROOM:",
		func(id string) {
			cur = &Room{ID: id}
			rooms = append(rooms, cur)
		},
		func(key, value string) {
			switch key {
			case "name":
				cur.Name = value
			case "description":
				cur.Description = value
			case "exits":
				for _, token := range inifmt.SplitList(value) {
					dir, dest, ok := strings.Cut(token, ":")
					if !ok {
						l.logger.Warn("malformed exit token", "room", cur.ID, "token", token)
						continue
					}
					cur.Exits = append(cur.Exits, Exit{
						Direction: strings.TrimSpace(dir),
						RoomID:    strings.TrimSpace(dest),
					})
				}
			case "items":
				cur.Items = inifmt.SplitList(value)
			case "npcs":
				cur.NPCs = inifmt.SplitList(value)
			case "dark":
				cur.Dark = inifmt.ParseBool(value)
			case "locked":
				cur.Locked = inifmt.ParseBool(value)
			case "locked_exit":
				cur.LockedExit = value
			}
		})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("rooms loaded", "path", path, "count", len(rooms))
	return rooms, nil
}

func (l *Loader) loadItems(path string) ([]*Item, error) {
	var items []*Item
	var cur *Item

	err := l.forEachSection(path, "ITEM:",
		func(id string) {
			cur = &Item{ID: id}
			items = append(items, cur)
		},
		func(key, value string) {
			switch key {
			case "name":
				cur.Name = value
			case "description":
				cur.Description = value
			case "weight":
				cur.Weight = atoi(value)
			case "takeable":
				cur.Takeable = inifmt.ParseBool(value)
			case "useable":
				cur.Useable = inifmt.ParseBool(value)
			case "illuminates":
				cur.Illuminates = inifmt.ParseBool(value)
			case "unlocks":
				cur.Unlocks = inifmt.ParseBool(value)
			}
		})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("items loaded", "path", path, "count", len(items))
	return items, nil
}

func (l *Loader) loadNPCs(path string) ([]*NPC, error) {
	var npcs []*NPC
	var cur *NPC

	err := l.forEachSection(path, "NPC:",
		func(id string) {
			cur = &NPC{ID: id}
			npcs = append(npcs, cur)
		},
		func(key, value string) {
			switch {
			case key == "name":
				cur.Name = value
			case key == "description":
				cur.Description = value
			case key == "location":
				cur.Location = value
			case key == "hp":
				cur.HP = atoi(value)
			case key == "armor_class":
				cur.ArmorClass = atoi(value)
			case key == "damage":
				cur.Damage = atoi(value)
			case strings.HasPrefix(key, "dialog_"):
				// dialog_N keys are index-addressed and may arrive
				// sparse or out of order; grow to fit.
				idx := atoi(key[len("dialog_"):])
				if idx < 0 {
					return
				}
				for len(cur.Dialog) <= idx {
					cur.Dialog = append(cur.Dialog, "")
				}
				cur.Dialog[idx] = value
			}
		})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("npcs loaded", "path", path, "count", len(npcs))
	return npcs, nil
}

func (l *Loader) loadQuests(path string) ([]*Quest, error) {
	var quests []*Quest
	var cur *Quest

	err := l.forEachSection(path, "QUEST:",
		func(id string) {
			cur = &Quest{ID: id}
			quests = append(quests, cur)
		},
		func(key, value string) {
			switch key {
			case "name":
				cur.Name = value
			case "description":
				cur.Description = value
			case "required":
				cur.Required = inifmt.ParseBool(value)
			case "completion_item":
				cur.CompletionItem = value
			case "completion_npc":
				cur.CompletionNPC = value
			case "completion_room":
				cur.CompletionRoom = value
			case "completion_message":
				cur.CompletionMessage = value
			}
		})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("quests loaded", "path", path, "count", len(quests))
	return quests, nil
}

// atoi mirrors the trusting C-style conversion: garbage reads as zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
