package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// renderRoom prints the current room: name, description, then exits,
// items and NPCs. In a dark room those details stay hidden unless the
// player carries a light source; possession is enough, the renderer
// scans the inventory directly. forceLight bypasses the check for the
// use-a-light re-render. brief skips the description on re-entry to a
// visited room; an explicit look always prints it.
func (e *Engine) renderRoom(forceLight, brief bool) {
	room := e.gs.CurrentRoom

	e.printf("\n%s\n", room.Name)
	if !brief {
		e.printf("%s\n", room.Description)
	}

	if room.Dark && !forceLight && !e.gs.HasLight() {
		e.printf("It's too dark to see anything.\n")
		return
	}

	if len(room.Exits) > 0 {
		parts := make([]string, 0, len(room.Exits))
		for _, exit := range room.Exits {
			label := titleCaser.String(strings.ToLower(exit.Direction))
			if room.Locked && strings.EqualFold(exit.Direction, room.LockedExit) {
				label += " (locked)"
			}
			parts = append(parts, label)
		}
		e.printf("Exits: %s\n", strings.Join(parts, ", "))
	}

	if len(room.Items) > 0 {
		parts := make([]string, 0, len(room.Items))
		for _, id := range room.Items {
			if item := e.gs.Story.FindItem(id); item != nil {
				parts = append(parts, item.Name)
			} else {
				parts = append(parts, "[unknown item: "+id+"]")
			}
		}
		e.printf("You see: %s\n", strings.Join(parts, ", "))
	}

	if len(room.NPCs) > 0 {
		parts := make([]string, 0, len(room.NPCs))
		for _, id := range room.NPCs {
			if npc := e.gs.Story.FindNPC(id); npc != nil {
				parts = append(parts, npc.Name)
			} else {
				parts = append(parts, "[unknown npc: "+id+"]")
			}
		}
		e.printf("Also here: %s\n", strings.Join(parts, ", "))
	}
}
