package state

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jwebster45206/adventure-engine/pkg/inifmt"
)

// SnapshotVersion is written into every save file's metadata section.
const SnapshotVersion = "1.0"

// Snapshot is the serializable image of the mutable game state. It never
// carries world-model data; rooms, items and quests are referenced by
// identifier so a snapshot is only meaningful against the same story.
type Snapshot struct {
	StoryName string
	SaveDate  string
	Version   string

	CurrentRoom string
	TurnCount   int
	DeathCount  int
	Score       int
	GameWon     bool

	Items  []string
	Weight int

	// QuestFlags holds completion flags in quest file order.
	QuestFlags []bool
}

// Snapshot captures the current mutable state.
func (gs *GameState) Snapshot() *Snapshot {
	snap := &Snapshot{
		StoryName:   gs.Story.Metadata.Title,
		SaveDate:    time.Now().Format(time.RFC3339),
		Version:     SnapshotVersion,
		CurrentRoom: gs.CurrentRoom.ID,
		TurnCount:   gs.TurnCount,
		DeathCount:  gs.DeathCount,
		Score:       gs.Score,
		GameWon:     gs.GameWon,
		Items:       append([]string(nil), gs.Inventory...),
		Weight:      gs.InventoryWeight,
		QuestFlags:  make([]bool, len(gs.Story.Quests)),
	}
	for i, q := range gs.Story.Quests {
		snap.QuestFlags[i] = q.Completed
	}
	return snap
}

// Encode renders the snapshot in the same key-value text format the
// story files use.
func (snap *Snapshot) Encode() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "[METADATA]\n")
	fmt.Fprintf(&b, "story_name=%s\n", snap.StoryName)
	fmt.Fprintf(&b, "save_date=%s\n", snap.SaveDate)
	fmt.Fprintf(&b, "version=%s\n\n", snap.Version)

	fmt.Fprintf(&b, "[PLAYER]\n")
	fmt.Fprintf(&b, "current_room=%s\n", snap.CurrentRoom)
	fmt.Fprintf(&b, "turn_count=%d\n", snap.TurnCount)
	fmt.Fprintf(&b, "death_count=%d\n", snap.DeathCount)
	fmt.Fprintf(&b, "score=%d\n", snap.Score)
	fmt.Fprintf(&b, "game_won=%t\n\n", snap.GameWon)

	fmt.Fprintf(&b, "[INVENTORY]\n")
	fmt.Fprintf(&b, "item_count=%d\n", len(snap.Items))
	fmt.Fprintf(&b, "weight=%d\n", snap.Weight)
	for i, id := range snap.Items {
		fmt.Fprintf(&b, "item_%d=%s\n", i, id)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "[QUESTS]\n")
	fmt.Fprintf(&b, "quest_count=%d\n", len(snap.QuestFlags))
	for i, done := range snap.QuestFlags {
		flag := 0
		if done {
			flag = 1
		}
		fmt.Fprintf(&b, "quest_%d=%d\n", i, flag)
	}

	return b.Bytes()
}

// DecodeSnapshot parses save-file text back into a snapshot. Unknown
// keys and malformed lines are skipped; the format is as permissive on
// the way in as the story loader.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	snap := &Snapshot{}
	section := ""
	items := map[int]string{}
	questFlags := map[int]bool{}
	maxItem, maxQuest := -1, -1

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		if name, ok := inifmt.ParseSection(line); ok {
			section = name
			continue
		}
		key, value, ok := inifmt.ParseKeyValue(line)
		if !ok {
			continue
		}

		switch section {
		case "METADATA":
			switch key {
			case "story_name":
				snap.StoryName = value
			case "save_date":
				snap.SaveDate = value
			case "version":
				snap.Version = value
			}
		case "PLAYER":
			switch key {
			case "current_room":
				snap.CurrentRoom = value
			case "turn_count":
				snap.TurnCount = atoi(value)
			case "death_count":
				snap.DeathCount = atoi(value)
			case "score":
				snap.Score = atoi(value)
			case "game_won":
				snap.GameWon = inifmt.ParseBool(value)
			}
		case "INVENTORY":
			switch {
			case key == "weight":
				snap.Weight = atoi(value)
			case strings.HasPrefix(key, "item_") && key != "item_count":
				idx := atoi(key[len("item_"):])
				if idx >= 0 {
					items[idx] = value
					if idx > maxItem {
						maxItem = idx
					}
				}
			}
		case "QUESTS":
			if strings.HasPrefix(key, "quest_") && key != "quest_count" {
				idx := atoi(key[len("quest_"):])
				if idx >= 0 {
					questFlags[idx] = value == "1"
					if idx > maxQuest {
						maxQuest = idx
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if snap.CurrentRoom == "" {
		return nil, fmt.Errorf("snapshot has no current_room")
	}

	for i := 0; i <= maxItem; i++ {
		if id, ok := items[i]; ok {
			snap.Items = append(snap.Items, id)
		}
	}
	snap.QuestFlags = make([]bool, maxQuest+1)
	for i := range snap.QuestFlags {
		snap.QuestFlags[i] = questFlags[i]
	}

	return snap, nil
}

// Restore applies a snapshot to the game state, re-resolving identifiers
// against the loaded story. The whole snapshot is staged before anything
// is committed: an unresolvable room fails the load with the state
// untouched, while unresolvable items are skipped silently. Quest flags
// apply by quest file order.
func (gs *GameState) Restore(snap *Snapshot) error {
	room := gs.Story.FindRoom(snap.CurrentRoom)
	if room == nil {
		return fmt.Errorf("saved room %q does not resolve in story %q", snap.CurrentRoom, gs.Story.Metadata.Title)
	}

	var inventory []string
	weight := 0
	for _, id := range snap.Items {
		item := gs.Story.FindItem(id)
		if item == nil {
			continue
		}
		inventory = append(inventory, item.ID)
		weight += item.Weight
	}

	gs.CurrentRoom = room
	room.Visited = true
	gs.Inventory = inventory
	gs.InventoryWeight = weight

	// An item lives in at most one place. Anything restored into the
	// inventory leaves whichever room floor it was dropped on since the
	// save was written.
	for _, id := range inventory {
		for _, r := range gs.Story.Rooms {
			r.RemoveItem(id)
		}
	}
	gs.TurnCount = snap.TurnCount
	gs.DeathCount = snap.DeathCount
	gs.Score = snap.Score
	gs.GameWon = snap.GameWon
	gs.Combat = nil
	gs.UpdatedAt = time.Now()

	for i, q := range gs.Story.Quests {
		if i < len(snap.QuestFlags) && snap.QuestFlags[i] {
			q.Completed = true
		}
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
