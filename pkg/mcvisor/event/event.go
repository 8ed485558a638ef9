// Package event defines the event model produced by classifying Minecraft
// server log lines.
package event

import "fmt"

// Kind identifies which variant of Event a value holds.
type Kind string

// Event kinds. Generic is produced for every well-formed log line that no
// specialized template recognizes.
const (
	Generic Kind = "generic"
	Login   Kind = "login"
	Logout  Kind = "logout"
	Death   Kind = "death"
	Chat    Kind = "chat"
)

// Kinds returns all event kinds in cascade priority order, Generic last.
func Kinds() []Kind {
	return []Kind{Login, Logout, Death, Chat, Generic}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case Generic, Login, Logout, Death, Chat:
		return true
	}
	return false
}

// ParseKind converts a string such as "chat" into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown event kind %q", s)
	}
	return k, nil
}

// Event is one classified server log line.
//
// The envelope fields (Time, Thread, Level, Message, Source) are set for every
// kind. Payload fields are only populated for the kinds that carry them:
//
//	Login, Logout: Player
//	Death:         Player, Killer (optional), Weapon (optional)
//	Chat:          Player, Text
type Event struct {
	Kind Kind `json:"kind"`

	// Time is the wall-clock stamp printed by the server, formatted HH:MM:SS.
	Time    string `json:"time"`
	Thread  string `json:"thread"`
	Level   string `json:"level"`
	Message string `json:"message"`

	Player string `json:"player,omitempty"`
	Killer string `json:"killer,omitempty"`
	Weapon string `json:"weapon,omitempty"`
	Text   string `json:"text,omitempty"`

	// Source is the original line with line terminators removed.
	Source string `json:"source_line,omitempty"`
}

// HasKiller reports whether a death event names a killer.
func (e Event) HasKiller() bool { return e.Killer != "" }

// HasWeapon reports whether a death event names a weapon.
func (e Event) HasWeapon() bool { return e.Weapon != "" }
