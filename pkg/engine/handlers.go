package engine

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/command"
)

func (e *Engine) cmdGo(cmd command.Command) Result {
	if cmd.Noun == "" {
		e.printf("Go where?\n")
		return ResultError
	}

	direction := command.ExpandDirection(cmd.Noun)
	room := e.gs.CurrentRoom

	exit, ok := room.FindExit(direction)
	if !ok {
		e.printf("You can't go %s from here.\n", direction)
		return ResultError
	}

	if room.Locked && strings.EqualFold(exit.Direction, room.LockedExit) {
		e.printf("The way %s is locked.\n", strings.ToLower(exit.Direction))
		return ResultError
	}

	dest := e.gs.Story.FindRoom(exit.RoomID)
	if dest == nil {
		// Broken content: the exit names a room that was never defined.
		e.logger.Error("exit destination does not resolve",
			"room", room.ID, "direction", exit.Direction, "dest", exit.RoomID)
		e.printf("The way %s leads nowhere.\n", strings.ToLower(exit.Direction))
		return ResultError
	}

	if e.gs.Combat != nil {
		e.printf("You flee from the fight.\n")
		e.endCombat()
	}

	seen := dest.Visited
	e.gs.CurrentRoom = dest
	dest.Visited = true
	e.gs.TurnCount++

	e.checkQuests("", "", dest.ID)
	e.renderRoom(false, seen)
	return ResultOK
}

func (e *Engine) cmdLook() Result {
	e.renderRoom(false, false)
	return ResultOK
}

func (e *Engine) cmdExamine(cmd command.Command) Result {
	if cmd.Noun == "" {
		e.printf("Examine what?\n")
		return ResultError
	}

	// Inventory first, then the room floor. Examine is the forgiving
	// matcher: substring hits count, unlike take/drop.
	item := e.gs.FindInventoryItem(cmd.Noun, true)
	if item == nil {
		item = e.gs.FindRoomItem(cmd.Noun, true)
	}
	if item == nil {
		e.printf("You don't see any '%s' here.\n", cmd.Noun)
		return ResultError
	}

	e.printf("%s\n", item.Description)
	e.printf("Weight: %d\n", item.Weight)
	if item.Useable {
		e.printf("It looks useable.\n")
	}
	return ResultOK
}

func (e *Engine) cmdTake(cmd command.Command) Result {
	if cmd.Noun == "" {
		e.printf("Take what?\n")
		return ResultError
	}

	item := e.gs.FindRoomItem(cmd.Noun, false)
	if item == nil {
		e.printf("You don't see any '%s' here.\n", cmd.Noun)
		return ResultError
	}
	if !item.Takeable {
		e.printf("You can't take the %s.\n", item.Name)
		return ResultError
	}

	limit := e.gs.Story.Metadata.MaxInventoryWeight
	if e.gs.InventoryWeight+item.Weight > limit {
		e.printf("The %s is too heavy to carry. (carrying %d/%d)\n",
			item.Name, e.gs.InventoryWeight, limit)
		return ResultError
	}

	e.gs.CurrentRoom.RemoveItem(item.ID)
	e.gs.AddItem(item)
	e.printf("You take the %s.\n", item.Name)

	e.checkQuests(item.ID, "", "")
	return ResultOK
}

func (e *Engine) cmdDrop(cmd command.Command) Result {
	if cmd.Noun == "" {
		e.printf("Drop what?\n")
		return ResultError
	}

	item := e.gs.FindInventoryItem(cmd.Noun, false)
	if item == nil {
		e.printf("You aren't carrying any '%s'.\n", cmd.Noun)
		return ResultError
	}

	e.gs.RemoveItem(item)
	e.gs.CurrentRoom.Items = append(e.gs.CurrentRoom.Items, item.ID)
	e.printf("You drop the %s.\n", item.Name)
	return ResultOK
}

func (e *Engine) cmdInventory() Result {
	if len(e.gs.Inventory) == 0 {
		e.printf("You aren't carrying anything.\n")
		return ResultOK
	}

	e.printf("You are carrying:\n")
	for _, id := range e.gs.Inventory {
		if item := e.gs.Story.FindItem(id); item != nil {
			e.printf("  - %s (weight %d)\n", item.Name, item.Weight)
		} else {
			e.printf("  - [unknown item: %s]\n", id)
		}
	}
	e.printf("Total weight: %d/%d\n", e.gs.InventoryWeight, e.gs.Story.Metadata.MaxInventoryWeight)
	return ResultOK
}

func (e *Engine) cmdUse(cmd command.Command) Result {
	if cmd.Noun == "" {
		e.printf("Use what?\n")
		return ResultError
	}

	item := e.gs.FindInventoryItem(cmd.Noun, true)
	if item == nil {
		e.printf("You aren't carrying any '%s'.\n", cmd.Noun)
		return ResultError
	}
	if !item.Useable {
		e.printf("The %s isn't useable.\n", item.Name)
		return ResultError
	}

	// Exactly one branch fires: illuminate, then unlock, then nothing.
	room := e.gs.CurrentRoom
	switch {
	case item.Illuminates:
		if room.Dark {
			e.printf("The %s lights up the room.\n", item.Name)
			e.renderRoom(true, false)
		} else {
			e.printf("You already have plenty of light.\n")
		}
	case item.Unlocks:
		if room.Locked {
			room.Locked = false
			room.LockedExit = ""
			e.printf("You hear a click. The way is unlocked.\n")
		} else {
			e.printf("There's nothing to unlock here.\n")
		}
	default:
		e.printf("Nothing special happens.\n")
	}
	return ResultOK
}

func (e *Engine) cmdTalk(cmd command.Command) Result {
	if cmd.Noun == "" {
		e.printf("Talk to whom?\n")
		return ResultError
	}

	npc := e.gs.FindRoomNPC(cmd.Noun)
	if npc == nil {
		e.printf("There's no '%s' here.\n", cmd.Noun)
		return ResultError
	}

	// The conversation counts for quests even when the NPC is silent.
	if line, ok := npc.NextDialog(); ok {
		e.printf("%s says: \"%s\"\n", npc.Name, line)
	} else {
		e.printf("%s has nothing to say.\n", npc.Name)
	}

	e.checkQuests("", npc.ID, "")
	return ResultOK
}

func (e *Engine) cmdQuests() Result {
	quests := e.gs.Story.Quests
	if len(quests) == 0 {
		e.printf("There are no quests in this story.\n")
		return ResultOK
	}

	completed, required, requiredDone := 0, 0, 0
	e.printf("\n=== QUESTS ===\n")
	for _, q := range quests {
		marker := "[ ]"
		if q.Completed {
			marker = "[x]"
			completed++
		}
		suffix := ""
		if q.Required {
			required++
			suffix = " (Required)"
			if q.Completed {
				requiredDone++
			}
		}
		e.printf("%s %s%s\n", marker, q.Name, suffix)
		if q.Description != "" {
			e.printf("    %s\n", q.Description)
		}
	}
	e.printf("\n%d/%d quests completed\n", completed, len(quests))
	if required > 0 {
		e.printf("%d/%d required quests completed\n", requiredDone, required)
	}
	return ResultOK
}

// parseSlot resolves the optional slot argument, defaulting to 1.
func parseSlot(noun string) (int, bool) {
	if noun == "" {
		return 1, true
	}
	slot, err := strconv.Atoi(noun)
	if err != nil || !storage.ValidSlot(slot) {
		return 0, false
	}
	return slot, true
}

func (e *Engine) cmdSave(ctx context.Context, cmd command.Command) Result {
	slot, ok := parseSlot(cmd.Noun)
	if !ok {
		e.printf("Invalid save slot '%s' (valid slots are 1-%d).\n", cmd.Noun, storage.MaxSlots)
		return ResultError
	}

	if err := e.store.SaveGame(ctx, e.gs.Snapshot(), slot); err != nil {
		e.logger.Error("save failed", "slot", slot, "error", err)
		e.printf("Failed to save the game.\n")
		return ResultError
	}
	e.printf("Game saved to slot %d.\n", slot)
	return ResultOK
}

func (e *Engine) cmdLoad(ctx context.Context, cmd command.Command) Result {
	slot, ok := parseSlot(cmd.Noun)
	if !ok {
		e.printf("Invalid save slot '%s' (valid slots are 1-%d).\n", cmd.Noun, storage.MaxSlots)
		return ResultError
	}

	snap, err := e.store.LoadGame(ctx, e.gs.Story.Metadata.Title, slot)
	if err != nil {
		if errors.Is(err, storage.ErrNoSave) {
			e.printf("There's no saved game in slot %d.\n", slot)
		} else {
			e.logger.Error("load failed", "slot", slot, "error", err)
			e.printf("Failed to load the game.\n")
		}
		return ResultError
	}

	if err := e.gs.Restore(snap); err != nil {
		e.logger.Error("restore failed", "slot", slot, "error", err)
		e.printf("That save doesn't match this story.\n")
		return ResultError
	}

	e.endCombat()
	e.printf("Game loaded from slot %d.\n", slot)
	e.renderRoom(false, false)
	return ResultOK
}
