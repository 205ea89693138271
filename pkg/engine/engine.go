// Package engine executes parsed commands against the game state,
// enforcing the world rules: locked exits, darkness, inventory weight,
// quest completion and the victory condition.
package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// Result is the outcome of one executed command.
type Result int

const (
	// ResultOK is a completed action.
	ResultOK Result = iota
	// ResultQuit ends the game loop.
	ResultQuit
	// ResultError is a recognized command that failed: missing argument,
	// target not found, precondition unmet. Always recoverable.
	ResultError
	// ResultInvalid is an unrecognized command type.
	ResultInvalid
)

// Engine runs one playthrough. It is the sole mutator of the game state
// and of the two runtime-mutable world fields (room locks, NPC dialog
// cursors); everything happens synchronously within the running turn.
type Engine struct {
	gs     *state.GameState
	store  storage.Store
	out    io.Writer
	in     *bufio.Reader
	logger *slog.Logger

	// confirmQuit overrides the interactive y/n prompt; the TUI uses it
	// to supply its own modal answer.
	confirmQuit func() bool

	// roll returns a uniform int in [1, sides]; swapped in tests.
	roll func(sides int) int

	combat *combatants
}

// New wires an engine. out defaults to stdout, in to stdin, and a nil
// logger falls back to slog.Default. Callers that read input themselves
// should pass their own *bufio.Reader; it is used as-is, so the quit
// confirmation and the caller's loop consume one buffer.
func New(gs *state.GameState, store storage.Store, out io.Writer, in io.Reader, logger *slog.Logger) *Engine {
	if out == nil {
		out = os.Stdout
	}
	if in == nil {
		in = os.Stdin
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		gs:     gs,
		store:  store,
		out:    out,
		in:     bufio.NewReader(in),
		logger: logger,
		roll:   func(sides int) int { return rand.Intn(sides) + 1 },
	}
}

// SetQuitConfirmer replaces the interactive quit prompt.
func (e *Engine) SetQuitConfirmer(f func() bool) {
	e.confirmQuit = f
}

// State exposes the game state for display surfaces (read-only use).
func (e *Engine) State() *state.GameState {
	return e.gs
}

// Execute dispatches one parsed command. Recognized commands that fail
// return ResultError with a player-facing message; unrecognized verbs
// return ResultInvalid. Execute never returns a Go error to the loop.
func (e *Engine) Execute(ctx context.Context, cmd command.Command) Result {
	e.logger.Debug("executing command",
		"session", e.gs.ID,
		"type", cmd.Type,
		"verb", cmd.Verb,
		"noun", cmd.Noun)

	switch cmd.Type {
	case command.Go:
		return e.cmdGo(cmd)
	case command.Look:
		return e.cmdLook()
	case command.Examine:
		return e.cmdExamine(cmd)
	case command.Take:
		return e.cmdTake(cmd)
	case command.Drop:
		return e.cmdDrop(cmd)
	case command.Inventory:
		return e.cmdInventory()
	case command.Use:
		return e.cmdUse(cmd)
	case command.Talk:
		return e.cmdTalk(cmd)
	case command.Attack:
		return e.cmdAttack(cmd)
	case command.Quests:
		return e.cmdQuests()
	case command.Score:
		return e.cmdScore()
	case command.Help:
		return e.cmdHelp()
	case command.Quit:
		return e.cmdQuit()
	case command.Save:
		return e.cmdSave(ctx, cmd)
	case command.Load:
		return e.cmdLoad(ctx, cmd)
	default:
		e.printf("I don't understand '%s'.\n", cmd.Verb)
		return ResultInvalid
	}
}

func (e *Engine) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func (e *Engine) cmdQuit() Result {
	confirmed := false
	if e.confirmQuit != nil {
		confirmed = e.confirmQuit()
	} else {
		e.printf("Are you sure you want to quit? (y/n): ")
		line, _ := e.in.ReadString('\n')
		confirmed = strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
	}

	if confirmed {
		e.printf("Thanks for playing!\n")
		return ResultQuit
	}
	e.printf("Continuing game...\n")
	return ResultOK
}

func (e *Engine) cmdHelp() Result {
	e.printf(`
=== AVAILABLE COMMANDS ===

Movement:
  go <direction>, north, south, east, west, up, down, n, s, e, w, u, d

Interaction:
  look, examine <object>, take <item>, drop <item>
  use <item>, talk <npc>, attack <npc>, inventory (or i)

Progress:
  quests, score

System:
  help, save [slot], load [slot], quit

`)
	return ResultOK
}

func (e *Engine) cmdScore() Result {
	e.printf("Score: %d   Turns: %d   Deaths: %d\n", e.gs.Score, e.gs.TurnCount, e.gs.DeathCount)
	if e.gs.GameWon {
		e.printf("You have won the game!\n")
	}
	return ResultOK
}
