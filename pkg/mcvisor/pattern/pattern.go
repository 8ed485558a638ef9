// Package pattern loads extra classification templates from YAML files.
//
// Modded and proxied servers print messages the built-in templates do not
// know: plugin join messages, localized death messages, chat relayed from a
// proxy. A pattern file maps each such message to one of the specialized
// event kinds so it is dispatched like its vanilla counterpart.
package pattern

// PatternFile is the structure of a YAML pattern file.
//
// Example YAML file:
//
//	version: 1
//	patterns:
//	  - id: essentials_join
//	    kind: login
//	    regex: '^(\S+) has joined the server$'
//	  - id: bungee_chat
//	    kind: chat
//	    regex: '^\[(?:\w+)\] (\S+): (.*)$'
//	  - id: mod_death_laser
//	    kind: death
//	    regex: '^(.*) was vaporized by (.*)$'
type PatternFile struct {
	// Version is the file format version. Only version 1 is supported.
	Version int `yaml:"version"`

	// Patterns is the list of template definitions, tried in order after the
	// built-in templates of the same kind.
	Patterns []Pattern `yaml:"patterns"`
}

// Pattern is a single template definition.
//
// Regex is matched against the message part of a log line, after the
// "[HH:MM:SS] [thread/LEVEL]: " envelope. Capture groups map positionally:
//
//	login, logout: player
//	death:         player, killer (optional), weapon (optional)
//	chat:          player, text
type Pattern struct {
	// ID identifies the pattern in error messages. IDs must be unique
	// within a file.
	ID string `yaml:"id"`

	// Kind is the event kind produced on a match: login, logout, death or chat.
	Kind string `yaml:"kind"`

	// Regex is the regular expression applied to the message.
	Regex string `yaml:"regex"`
}
