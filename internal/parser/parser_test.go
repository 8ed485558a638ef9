package parser

import (
	"errors"
	"reflect"
	"regexp"
	"testing"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/event"
)

func envelope(kind event.Kind, msg string) event.Event {
	return event.Event{
		Kind:    kind,
		Time:    "12:34:56",
		Thread:  "Server thread",
		Level:   "INFO",
		Message: msg,
		Source:  "[12:34:56] [Server thread/INFO]: " + msg,
	}
}

func line(msg string) string {
	return "[12:34:56] [Server thread/INFO]: " + msg
}

func TestParse(t *testing.T) {
	withPlayer := func(ev event.Event, player string) event.Event {
		ev.Player = player
		return ev
	}

	tests := []struct {
		name  string
		input string
		want  event.Event
	}{
		// Login / logout
		{
			name:  "login",
			input: line("Steve joined the game"),
			want:  withPlayer(envelope(event.Login, "Steve joined the game"), "Steve"),
		},
		{
			name:  "logout",
			input: line("Alex left the game"),
			want:  withPlayer(envelope(event.Logout, "Alex left the game"), "Alex"),
		},
		{
			name:  "login name with spaces is not a login",
			input: line("Steve the Great joined the game"),
			want:  envelope(event.Generic, "Steve the Great joined the game"),
		},

		// Chat
		{
			name:  "chat",
			input: line("<Steve> hello world"),
			want: func() event.Event {
				ev := withPlayer(envelope(event.Chat, "<Steve> hello world"), "Steve")
				ev.Text = "hello world"
				return ev
			}(),
		},
		{
			name:  "chat with empty text",
			input: line("<Steve> "),
			want:  withPlayer(envelope(event.Chat, "<Steve> "), "Steve"),
		},

		// Generic
		{
			name:  "generic",
			input: line("Saving world"),
			want:  envelope(event.Generic, "Saving world"),
		},
		{
			name:  "generic empty message",
			input: line(""),
			want:  envelope(event.Generic, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_Envelope(t *testing.T) {
	got, err := Parse("[01:02:03] [User Authenticator #1/WARN]: something odd\r\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Time != "01:02:03" || got.Thread != "User Authenticator #1" || got.Level != "WARN" {
		t.Errorf("envelope = %q %q %q", got.Time, got.Thread, got.Level)
	}
	if got.Message != "something odd" {
		t.Errorf("Message = %q", got.Message)
	}
	if got.Source != "[01:02:03] [User Authenticator #1/WARN]: something odd" {
		t.Errorf("Source = %q, want line without terminators", got.Source)
	}
}

func TestParse_Unrecognized(t *testing.T) {
	inputs := []string{
		"garbage line with no brackets",
		"",
		"[12:34:56] Server thread/INFO: missing brackets",
		"[1:2:3] [Server thread/INFO]: short time",
		"[12:34:56] [Server thread INFO]: no slash",
		"12:34:56 [Server thread/INFO]: no time brackets",
		"[12:34:56] [Server thread/INFO] missing colon",
		"2024-01-15 12:34:56 INFO joined the game",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Parse(input)
			if !errors.Is(err, ErrUnrecognizedFormat) {
				t.Fatalf("Parse(%q) error = %v, want ErrUnrecognizedFormat", input, err)
			}
			if !reflect.DeepEqual(got, event.Event{}) {
				t.Errorf("Parse(%q) = %+v, want zero event", input, got)
			}
		})
	}
}

func TestParse_Death(t *testing.T) {
	tests := []struct {
		msg    string
		player string
		killer string
		weapon string
	}{
		{"Steve was slain by Zombie using Iron Sword", "Steve", "Zombie", "Iron Sword"},
		{"Steve was slain by Zombie", "Steve", "Zombie", ""},
		{"Steve was shot by arrow", "Steve", "", ""},
		{"Steve was shot by Skeleton", "Steve", "Skeleton", ""},
		{"Steve was shot by Skeleton using Bow", "Steve", "Skeleton", "Bow"},
		{"Steve was pricked to death", "Steve", "", ""},
		{"Steve walked into a cactus while trying to escape Creeper", "Steve", "Creeper", ""},
		{"Steve drowned", "Steve", "", ""},
		{"Steve drowned whilst trying to escape Guardian", "Steve", "Guardian", ""},
		{"Steve experienced kinetic energy", "Steve", "", ""},
		{"Steve blew up", "Steve", "", ""},
		{"Steve was blown up by Creeper", "Steve", "Creeper", ""},
		{"Steve hit the ground too hard", "Steve", "", ""},
		{"Steve fell from a high place", "Steve", "", ""},
		{"Steve fell off a ladder", "Steve", "", ""},
		{"Steve fell off some vines", "Steve", "", ""},
		{"Steve fell out of the water", "Steve", "", ""},
		{"Steve fell into a patch of fire", "Steve", "", ""},
		{"Steve fell into a patch of cacti", "Steve", "", ""},
		{"Steve was doomed to fall by Enderman", "Steve", "Enderman", ""},
		{"Steve was shot off some vines by Skeleton", "Steve", "Skeleton", ""},
		{"Steve was shot off a ladder by Skeleton", "Steve", "Skeleton", ""},
		{"Steve was blown from a high place by Creeper", "Steve", "Creeper", ""},
		{"Steve was squashed by a falling anvil", "Steve", "", ""},
		{"Steve was squashed by a falling block", "Steve", "", ""},
		{"Steve went up in flames", "Steve", "", ""},
		{"Steve burned to death", "Steve", "", ""},
		{"Steve was burnt to a crisp whilst fighting Blaze", "Steve", "Blaze", ""},
		{"Steve walked into a fire whilst fighting Zombie", "Steve", "Zombie", ""},
		{"Steve tried to swim in lava", "Steve", "", ""},
		{"Steve tried to swim in lava while trying to escape Zombie", "Steve", "Zombie", ""},
		{"Steve was struck by lightning", "Steve", "", ""},
		{"Steve got finished off by Alex", "Steve", "Alex", ""},
		{"Steve got finished off by Alex using Diamond Axe", "Steve", "Alex", "Diamond Axe"},
		{"Steve was fireballed by Ghast", "Steve", "Ghast", ""},
		{"Steve was killed by magic", "Steve", "", ""},
		{"Steve was killed by Witch using magic", "Steve", "Witch", ""},
		{"Steve starved to death", "Steve", "", ""},
		{"Steve fell out of the world", "Steve", "", ""},
		{"Steve fell from a high place and fell out of the world", "Steve", "", ""},
		{"Steve withered away", "Steve", "", ""},
		{"Steve was pummeled by Alex", "Steve", "Alex", ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := Parse(line(tt.msg))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Kind != event.Death {
				t.Fatalf("Kind = %q, want death", got.Kind)
			}
			if got.Player != tt.player || got.Killer != tt.killer || got.Weapon != tt.weapon {
				t.Errorf("got (%q, %q, %q), want (%q, %q, %q)",
					got.Player, got.Killer, got.Weapon, tt.player, tt.killer, tt.weapon)
			}
		})
	}
}

func TestParse_DeathBeatsChat(t *testing.T) {
	// Body matches both the chat template and a death template.
	got, err := Parse(line("<Steve> Alex was slain by Zombie"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Kind != event.Death {
		t.Fatalf("Kind = %q, want death", got.Kind)
	}
	if got.Player != "<Steve> Alex" || got.Killer != "Zombie" {
		t.Errorf("got player %q killer %q", got.Player, got.Killer)
	}
}

func TestParse_LoginBeatsDeath(t *testing.T) {
	got, err := Parse(line("Steve joined the game"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != event.Login {
		t.Errorf("Kind = %q, want login", got.Kind)
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		line("Steve joined the game"),
		line("<Steve> hi"),
		line("Steve was slain by Zombie using Iron Sword"),
		line("Done (3.2s)! For help, type \"help\""),
		"garbage",
	}
	for _, input := range inputs {
		a, errA := Parse(input)
		b, errB := Parse(input)
		if !reflect.DeepEqual(a, b) || errA != errB {
			t.Errorf("Parse(%q) not idempotent: %+v/%v vs %+v/%v", input, a, errA, b, errB)
		}
	}
}

func TestNew_ExtraTemplates(t *testing.T) {
	c, err := New(
		Template{Kind: event.Death, Regex: regexp.MustCompile(`^(\S+) was eaten by (\S+)$`)},
		Template{Kind: event.Login, Regex: regexp.MustCompile(`^\[\+\] (\S+)$`)},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.Classify(line("Steve was eaten by Grue"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != event.Death || got.Player != "Steve" || got.Killer != "Grue" {
		t.Errorf("custom death = %+v", got)
	}

	got, err = c.Classify(line("[+] Alex"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != event.Login || got.Player != "Alex" {
		t.Errorf("custom login = %+v", got)
	}

	// Built-ins still take precedence within their kind.
	got, _ = c.Classify(line("Steve was slain by Zombie"))
	if got.Kind != event.Death || got.Killer != "Zombie" {
		t.Errorf("built-in death = %+v", got)
	}

	// The default classifier is untouched.
	got, _ = Parse(line("Steve was eaten by Grue"))
	if got.Kind != event.Generic {
		t.Errorf("default classifier picked up extra template: %+v", got)
	}
}

func TestNew_InvalidTemplates(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
	}{
		{"generic kind", Template{Kind: event.Generic, Regex: regexp.MustCompile(`(x)`)}},
		{"unknown kind", Template{Kind: "rocket", Regex: regexp.MustCompile(`(x)`)}},
		{"nil regex", Template{Kind: event.Login}},
		{"login without group", Template{Kind: event.Login, Regex: regexp.MustCompile(`joined`)}},
		{"chat with one group", Template{Kind: event.Chat, Regex: regexp.MustCompile(`^(\S+): .*$`)}},
		{"death with four groups", Template{Kind: event.Death, Regex: regexp.MustCompile(`(a)(b)(c)(d)`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.tmpl); err == nil {
				t.Error("New() expected error")
			}
		})
	}
}
