package engine

// checkQuests evaluates every open quest against an event triple after
// the actions that can complete quests: taking an item, talking to an
// NPC (or defeating one), entering a room. Completion is monotonic;
// Satisfied never re-fires a completed quest.
func (e *Engine) checkQuests(itemID, npcID, roomID string) {
	for _, q := range e.gs.Story.Quests {
		if !q.Satisfied(itemID, npcID, roomID) {
			continue
		}
		q.Completed = true

		e.printf("\n*** Quest completed: %s ***\n", q.Name)
		if q.CompletionMessage != "" {
			e.printf("%s\n", q.CompletionMessage)
		}
		e.logger.Info("quest completed", "session", e.gs.ID, "quest", q.ID)

		e.checkVictory()
	}
}

// checkVictory flips the victory flag when every required quest is
// completed. Stories without required quests never auto-win; the flag
// is monotonic either way.
func (e *Engine) checkVictory() {
	if e.gs.GameWon {
		return
	}

	required, done := 0, 0
	for _, q := range e.gs.Story.Quests {
		if q.Required {
			required++
			if q.Completed {
				done++
			}
		}
	}
	if required == 0 || done < required {
		return
	}

	e.gs.MarkVictory()
	e.gs.Score += e.gs.Story.Metadata.VictoryScore

	e.printf("\n*** VICTORY ***\n")
	if e.gs.Story.Metadata.VictoryText != "" {
		e.printf("%s\n", e.gs.Story.Metadata.VictoryText)
	}
	e.logger.Info("game won", "session", e.gs.ID, "turns", e.gs.TurnCount)
}
