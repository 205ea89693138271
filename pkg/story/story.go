// Package story defines the world model for one loadable adventure: the
// metadata, rooms, items, NPCs and quests of a story package, plus the
// loader that materializes them from a story directory.
//
// A Story is immutable after load with two exceptions that belong to the
// running game rather than the content: Room lock state (cleared by using
// an unlocking item) and NPC dialog cursors (advanced by talking).
package story

import "strings"

// Metadata is the story-level configuration from story.ini.
type Metadata struct {
	Title              string
	Author             string
	Version            string
	Description        string
	StartRoom          string // room id
	RespawnRoom        string // room id, falls back to StartRoom when empty
	MaxInventoryWeight int
	VictoryScore       int
	VictoryText        string
}

// Story is a complete loaded content package. Rooms, items, NPCs and
// quests keep file order; the index maps resolve identifiers to slots.
type Story struct {
	Metadata Metadata
	Dir      string

	Rooms  []*Room
	Items  []*Item
	NPCs   []*NPC
	Quests []*Quest

	roomIndex  map[string]*Room
	itemIndex  map[string]*Item
	npcIndex   map[string]*NPC
	questIndex map[string]*Quest
}

// New assembles a Story from records and builds the identifier indexes.
// The loader uses it after reading a story directory; tests and tools
// can use it to construct worlds directly.
func New(meta Metadata, rooms []*Room, items []*Item, npcs []*NPC, quests []*Quest) *Story {
	s := &Story{
		Metadata: meta,
		Rooms:    rooms,
		Items:    items,
		NPCs:     npcs,
		Quests:   quests,
	}
	s.reindex()
	return s
}

// FindRoom resolves a room identifier, nil when unknown.
func (s *Story) FindRoom(id string) *Room {
	return s.roomIndex[id]
}

// FindItem resolves an item identifier, nil when unknown.
func (s *Story) FindItem(id string) *Item {
	return s.itemIndex[id]
}

// FindNPC resolves an NPC identifier, nil when unknown.
func (s *Story) FindNPC(id string) *NPC {
	return s.npcIndex[id]
}

// FindQuest resolves a quest identifier, nil when unknown.
func (s *Story) FindQuest(id string) *Quest {
	return s.questIndex[id]
}

func (s *Story) reindex() {
	s.roomIndex = make(map[string]*Room, len(s.Rooms))
	for _, r := range s.Rooms {
		s.roomIndex[r.ID] = r
	}
	s.itemIndex = make(map[string]*Item, len(s.Items))
	for _, it := range s.Items {
		s.itemIndex[it.ID] = it
	}
	s.npcIndex = make(map[string]*NPC, len(s.NPCs))
	for _, n := range s.NPCs {
		s.npcIndex[n.ID] = n
	}
	s.questIndex = make(map[string]*Quest, len(s.Quests))
	for _, q := range s.Quests {
		s.questIndex[q.ID] = q
	}
}

// Exit is one directed connection out of a room.
type Exit struct {
	Direction string
	RoomID    string
}

// Room is a location in the game world. Items and NPCs are held as
// identifier lists so save files stay stable across content edits.
type Room struct {
	ID          string
	Name        string
	Description string
	Exits       []Exit
	Items       []string
	NPCs        []string
	Dark        bool
	Locked      bool
	LockedExit  string
	Visited     bool
}

// FindExit matches a direction case-insensitively against the room's
// exits, preserving the file order of the exit list.
func (r *Room) FindExit(direction string) (Exit, bool) {
	for _, e := range r.Exits {
		if strings.EqualFold(e.Direction, direction) {
			return e, true
		}
	}
	return Exit{}, false
}

// RemoveItem deletes the first occurrence of an item id from the room,
// keeping the order of the remaining items. Reports whether it was found.
func (r *Room) RemoveItem(id string) bool {
	for i, it := range r.Items {
		if it == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Item is defined once per story; rooms and the inventory refer to it by
// identifier, so at most one logical copy exists in the world.
type Item struct {
	ID          string
	Name        string
	Description string
	Weight      int
	Takeable    bool
	Useable     bool
	Illuminates bool
	Unlocks     bool
}

// NPC is a character anchored to a home room. DialogIndex is the only
// field that changes after load; it cycles through Dialog on each talk.
type NPC struct {
	ID          string
	Name        string
	Description string
	Location    string // home room id
	Dialog      []string
	DialogIndex int

	// Combat stats, zero means the NPC cannot be fought.
	HP         int
	ArmorClass int
	Damage     int
}

// NextDialog returns the current dialog line and advances the cursor.
// NPCs without dialog report not-ok and the cursor stays put.
func (n *NPC) NextDialog() (string, bool) {
	if len(n.Dialog) == 0 {
		return "", false
	}
	line := n.Dialog[n.DialogIndex]
	n.DialogIndex = (n.DialogIndex + 1) % len(n.Dialog)
	return line, true
}

// Quest completes the first time all of its non-empty predicates are
// satisfied by a single event. Completion is monotonic.
type Quest struct {
	ID                string
	Name              string
	Description       string
	Required          bool
	Completed         bool
	CompletionItem    string
	CompletionNPC     string
	CompletionRoom    string
	CompletionMessage string
}

// Satisfied evaluates the quest predicates against an event triple. An
// empty predicate always matches. Already-completed quests report false
// so callers never re-fire completion.
func (q *Quest) Satisfied(itemID, npcID, roomID string) bool {
	if q.Completed {
		return false
	}
	if q.CompletionItem != "" && q.CompletionItem != itemID {
		return false
	}
	if q.CompletionNPC != "" && q.CompletionNPC != npcID {
		return false
	}
	if q.CompletionRoom != "" && q.CompletionRoom != roomID {
		return false
	}
	return true
}
