package main

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/story"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <story-directory>\n", os.Args[0])
		os.Exit(1)
	}

	dir := os.Args[1]
	validator := &StoryValidator{}

	if err := validator.validateDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Story is valid!")
}

type StoryValidator struct {
	errors []string
}

func (v *StoryValidator) validateDir(dir string) error {
	fmt.Printf("Validating %s...\n", dir)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	s, err := story.NewLoader(log).Load(dir)
	if err != nil {
		return err
	}

	v.errors = nil
	v.validateStory(s)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", dir, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *StoryValidator) validateStory(s *story.Story) {
	v.validateIDFormat("start_room", s.Metadata.StartRoom)
	if s.Metadata.RespawnRoom != "" {
		v.validateIDFormat("respawn_room", s.Metadata.RespawnRoom)
		if s.FindRoom(s.Metadata.RespawnRoom) == nil {
			v.addError(fmt.Sprintf("respawn_room '%s' does not exist", s.Metadata.RespawnRoom))
		}
	}

	for _, room := range s.Rooms {
		v.validateRoom(s, room)
	}
	for _, item := range s.Items {
		v.validateIDFormat("item ID", item.ID)
		if item.Name == "" {
			v.addError(fmt.Sprintf("item '%s' has no name", item.ID))
		}
	}
	for _, npc := range s.NPCs {
		v.validateIDFormat("NPC ID", npc.ID)
		if npc.Location != "" && s.FindRoom(npc.Location) == nil {
			v.addError(fmt.Sprintf("NPC '%s' is located in unknown room '%s'", npc.ID, npc.Location))
		}
	}
	for _, quest := range s.Quests {
		v.validateQuest(s, quest)
	}

	// Dark rooms are unwinnable without at least one light source.
	hasDark := false
	for _, room := range s.Rooms {
		if room.Dark {
			hasDark = true
			break
		}
	}
	if hasDark {
		hasLight := false
		for _, item := range s.Items {
			if item.Illuminates {
				hasLight = true
				break
			}
		}
		if !hasLight {
			v.addError("story has dark rooms but no illuminating item")
		}
	}
}

func (v *StoryValidator) validateRoom(s *story.Story, room *story.Room) {
	v.validateIDFormat("room ID", room.ID)
	if room.Name == "" {
		v.addError(fmt.Sprintf("room '%s' has no name", room.ID))
	}

	for _, exit := range room.Exits {
		if s.FindRoom(exit.RoomID) == nil {
			v.addError(fmt.Sprintf("room '%s' exit %s leads to unknown room '%s'", room.ID, exit.Direction, exit.RoomID))
		}
	}
	if room.Locked && room.LockedExit != "" {
		if _, ok := room.FindExit(room.LockedExit); !ok {
			v.addError(fmt.Sprintf("room '%s' locks exit '%s' which does not exist", room.ID, room.LockedExit))
		}
	}

	for _, id := range room.Items {
		if s.FindItem(id) == nil {
			v.addError(fmt.Sprintf("room '%s' contains unknown item '%s'", room.ID, id))
		}
	}
	for _, id := range room.NPCs {
		if s.FindNPC(id) == nil {
			v.addError(fmt.Sprintf("room '%s' contains unknown NPC '%s'", room.ID, id))
		}
	}
}

func (v *StoryValidator) validateQuest(s *story.Story, quest *story.Quest) {
	v.validateIDFormat("quest ID", quest.ID)

	if quest.CompletionItem != "" && s.FindItem(quest.CompletionItem) == nil {
		v.addError(fmt.Sprintf("quest '%s' requires unknown item '%s'", quest.ID, quest.CompletionItem))
	}
	if quest.CompletionNPC != "" && s.FindNPC(quest.CompletionNPC) == nil {
		v.addError(fmt.Sprintf("quest '%s' requires unknown NPC '%s'", quest.ID, quest.CompletionNPC))
	}
	if quest.CompletionRoom != "" && s.FindRoom(quest.CompletionRoom) == nil {
		v.addError(fmt.Sprintf("quest '%s' requires unknown room '%s'", quest.ID, quest.CompletionRoom))
	}
	if quest.CompletionItem == "" && quest.CompletionNPC == "" && quest.CompletionRoom == "" {
		v.addError(fmt.Sprintf("quest '%s' has no completion condition and would complete on the first action", quest.ID))
	}
}

func (v *StoryValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}
	if !validIDRegex.MatchString(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *StoryValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
