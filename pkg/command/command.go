// Package command turns raw player input into structured commands using
// the fixed grammar: verb [noun] [preposition] [noun2].
package command

import "strings"

// Type classifies the verb of a parsed command.
type Type string

const (
	Go        Type = "go"
	Look      Type = "look"
	Examine   Type = "examine"
	Take      Type = "take"
	Drop      Type = "drop"
	Inventory Type = "inventory"
	Use       Type = "use"
	Talk      Type = "talk"
	Attack    Type = "attack"
	Quests    Type = "quests"
	Score     Type = "score"
	Help      Type = "help"
	Save      Type = "save"
	Load      Type = "load"
	Quit      Type = "quit"
	Unknown   Type = "unknown"
)

// Command is one parsed line of player input. Verb keeps the raw first
// token so unknown commands can echo it back.
type Command struct {
	Type        Type
	Verb        string
	Noun        string
	Preposition string
	Noun2       string
}

var verbs = map[string]Type{
	"go":   Go,
	"move": Go,
	"walk": Go,

	"look": Look,
	"l":    Look,

	"examine": Examine,
	"x":       Examine,
	"inspect": Examine,

	"take": Take,
	"get":  Take,
	"grab": Take,
	"pick": Take,

	"drop": Drop,
	"put":  Drop,

	"inventory": Inventory,
	"inv":       Inventory,
	"i":         Inventory,

	"use": Use,

	"talk":  Talk,
	"speak": Talk,

	"attack": Attack,
	"fight":  Attack,
	"hit":    Attack,

	"quests":  Quests,
	"journal": Quests,

	"score":  Score,
	"status": Score,

	"help": Help,
	"?":    Help,

	"save": Save,
	"load": Load,

	"quit": Quit,
	"exit": Quit,
	"q":    Quit,
}

// directions maps every accepted direction token to its full word.
var directions = map[string]string{
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
	"u":     "up",
	"d":     "down",
	"north": "north",
	"south": "south",
	"east":  "east",
	"west":  "west",
	"up":    "up",
	"down":  "down",
}

// ExpandDirection resolves a direction abbreviation to its full word.
// Non-direction tokens pass through unchanged.
func ExpandDirection(token string) string {
	if full, ok := directions[strings.ToLower(token)]; ok {
		return full
	}
	return token
}

// IsDirection reports whether a token is a bare direction word or letter.
func IsDirection(token string) bool {
	_, ok := directions[strings.ToLower(token)]
	return ok
}

// Parse tokenizes one input line. The line is lowercased and split on
// spaces; the first token is the verb, then noun, preposition and noun2.
// A bare direction ("north", "n") becomes a Go command with the
// direction in the noun slot. Parse never fails: worst case is Unknown.
func Parse(input string) Command {
	tokens := strings.Fields(strings.ToLower(input))
	if len(tokens) == 0 {
		return Command{Type: Unknown}
	}

	cmd := Command{Verb: tokens[0]}

	if IsDirection(tokens[0]) {
		// "north" behaves exactly like "go north".
		cmd.Type = Go
		cmd.Noun = tokens[0]
		return cmd
	}

	t, ok := verbs[tokens[0]]
	if !ok {
		cmd.Type = Unknown
		return cmd
	}
	cmd.Type = t

	if len(tokens) > 1 {
		cmd.Noun = tokens[1]
	}
	if len(tokens) > 2 {
		cmd.Preposition = tokens[2]
	}
	if len(tokens) > 3 {
		cmd.Noun2 = tokens[3]
	}
	return cmd
}
