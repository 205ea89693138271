package engine

import (
	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/story"
)

// Player combat baseline. Stories tune fights through NPC hp /
// armor_class / damage keys; the player side is fixed.
const (
	playerMaxHP  = 20
	playerAC     = 12
	playerAttack = 2 // to-hit bonus
	playerDamage = 6 // d6
	defaultFoeAC = 10
)

// combatants holds the d20 actors for the running fight. The game state
// mirrors their HP in its Combat sub-state so saves and displays see it.
type combatants struct {
	player *d20.Actor
	foe    *d20.Actor
	npc    *story.NPC
}

func (e *Engine) cmdAttack(cmd command.Command) Result {
	if cmd.Noun == "" {
		e.printf("Attack what?\n")
		return ResultError
	}

	npc := e.gs.FindRoomNPC(cmd.Noun)
	if npc == nil {
		e.printf("There's no '%s' here.\n", cmd.Noun)
		return ResultError
	}
	if npc.HP <= 0 {
		e.printf("%s doesn't want to fight.\n", npc.Name)
		return ResultError
	}

	if e.combat == nil || e.combat.npc != npc {
		if err := e.startCombat(npc); err != nil {
			e.logger.Error("failed to start combat", "npc", npc.ID, "error", err)
			e.printf("The fight never gets going.\n")
			return ResultError
		}
		e.printf("You square up against %s!\n", npc.Name)
	}

	e.playerBlow()
	if e.combat == nil {
		// Opponent went down; the fight is over.
		return ResultOK
	}

	e.opponentBlow()
	return ResultOK
}

func (e *Engine) startCombat(npc *story.NPC) error {
	ac := npc.ArmorClass
	if ac == 0 {
		ac = defaultFoeAC
	}

	player, err := d20.NewActor("player").
		WithHP(playerMaxHP).
		WithAC(playerAC).
		Build()
	if err != nil {
		return err
	}
	foe, err := d20.NewActor(npc.ID).
		WithHP(npc.HP).
		WithAC(ac).
		Build()
	if err != nil {
		return err
	}

	e.combat = &combatants{player: player, foe: foe, npc: npc}
	e.gs.Combat = &state.Combat{
		OpponentID: npc.ID,
		OpponentHP: foe.HP(),
		PlayerHP:   player.HP(),
	}
	return nil
}

func (e *Engine) endCombat() {
	e.combat = nil
	e.gs.Combat = nil
}

func (e *Engine) playerBlow() {
	c := e.combat
	attack := e.roll(20) + playerAttack
	if attack < c.foe.AC() {
		e.printf("You swing at %s and miss.\n", c.npc.Name)
		return
	}

	damage := e.roll(playerDamage)
	remaining := c.foe.HP() - damage
	if remaining < 1 {
		e.printf("You hit %s for %d. %s goes down!\n", c.npc.Name, damage, c.npc.Name)
		e.gs.Score += c.foe.MaxHP()
		defeated := c.npc
		e.endCombat()
		e.checkQuests("", defeated.ID, "")
		return
	}

	if err := c.foe.SetHP(remaining); err != nil {
		e.logger.Error("failed to set foe hp", "npc", c.npc.ID, "error", err)
	}
	e.gs.Combat.OpponentHP = c.foe.HP()
	e.printf("You hit %s for %d. (%d hp left)\n", c.npc.Name, damage, c.foe.HP())
}

func (e *Engine) opponentBlow() {
	c := e.combat
	attack := e.roll(20)
	if attack < c.player.AC() {
		e.printf("%s lunges at you and misses.\n", c.npc.Name)
		return
	}

	damage := e.roll(4) + c.npc.Damage
	remaining := c.player.HP() - damage
	if remaining < 1 {
		e.printf("%s strikes you down!\n", c.npc.Name)
		e.die()
		return
	}

	if err := c.player.SetHP(remaining); err != nil {
		e.logger.Error("failed to set player hp", "error", err)
	}
	e.gs.Combat.PlayerHP = c.player.HP()
	e.printf("%s hits you for %d. (you have %d hp)\n", c.npc.Name, damage, c.player.HP())
}

// die handles player death: count it, end the fight and respawn with
// inventory and progress intact.
func (e *Engine) die() {
	e.gs.DeathCount++
	e.endCombat()

	respawn := e.gs.Story.FindRoom(e.gs.RespawnRoom)
	if respawn == nil {
		respawn = e.gs.Story.FindRoom(e.gs.Story.Metadata.StartRoom)
	}
	e.gs.CurrentRoom = respawn
	respawn.Visited = true

	e.logger.Info("player died", "session", e.gs.ID, "deaths", e.gs.DeathCount)
	e.printf("\nEverything goes dark... you wake up somewhere familiar.\n")
	e.renderRoom(false, false)
}
