package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{
			name:  "verb and noun",
			input: "take key",
			want:  Command{Type: Take, Verb: "take", Noun: "key"},
		},
		{
			name:  "full grammar",
			input: "use key on door",
			want:  Command{Type: Use, Verb: "use", Noun: "key", Preposition: "on", Noun2: "door"},
		},
		{
			name:  "uppercase input is lowered",
			input: "TAKE Key",
			want:  Command{Type: Take, Verb: "take", Noun: "key"},
		},
		{
			name:  "bare direction word",
			input: "north",
			want:  Command{Type: Go, Verb: "north", Noun: "north"},
		},
		{
			name:  "bare direction letter",
			input: "n",
			want:  Command{Type: Go, Verb: "n", Noun: "n"},
		},
		{
			name:  "go with direction",
			input: "go north",
			want:  Command{Type: Go, Verb: "go", Noun: "north"},
		},
		{
			name:  "synonym grab",
			input: "grab torch",
			want:  Command{Type: Take, Verb: "grab", Noun: "torch"},
		},
		{
			name:  "talk synonym",
			input: "speak steward",
			want:  Command{Type: Talk, Verb: "speak", Noun: "steward"},
		},
		{
			name:  "attack synonym",
			input: "fight troll",
			want:  Command{Type: Attack, Verb: "fight", Noun: "troll"},
		},
		{
			name:  "unknown verb keeps text",
			input: "frobnicate lever",
			want:  Command{Type: Unknown, Verb: "frobnicate"},
		},
		{
			name:  "empty input",
			input: "",
			want:  Command{Type: Unknown},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  Command{Type: Unknown},
		},
		{
			name:  "extra spaces between tokens",
			input: "take   key",
			want:  Command{Type: Take, Verb: "take", Noun: "key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandDirection(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"n", "north"},
		{"s", "south"},
		{"e", "east"},
		{"w", "west"},
		{"u", "up"},
		{"d", "down"},
		{"north", "north"},
		{"NE", "NE"},
		{"door", "door"},
	}
	for _, tt := range tests {
		if got := ExpandDirection(tt.token); got != tt.want {
			t.Errorf("ExpandDirection(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestIsDirection(t *testing.T) {
	for _, token := range []string{"n", "north", "W", "down"} {
		if !IsDirection(token) {
			t.Errorf("IsDirection(%q) = false, want true", token)
		}
	}
	for _, token := range []string{"go", "key", ""} {
		if IsDirection(token) {
			t.Errorf("IsDirection(%q) = true, want false", token)
		}
	}
}
