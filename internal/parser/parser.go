// Package parser provides Minecraft server log line classification.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/event"
)

// ErrUnrecognizedFormat is returned when a line does not carry the
// "[HH:MM:SS] [thread/LEVEL]: message" envelope.
var ErrUnrecognizedFormat = errors.New("unrecognized log line format")

// Template is an additional body pattern for one of the specialized kinds.
// It is matched against the envelope message, never the whole line.
type Template struct {
	Kind  event.Kind
	Regex *regexp.Regexp
}

// matcher is one stage of the cascade.
type matcher struct {
	kind     event.Kind
	patterns []*regexp.Regexp
}

// Classifier turns log lines into events using an ordered cascade of
// matchers: login, logout, death, chat. It is immutable after construction
// and safe for concurrent use.
type Classifier struct {
	cascade []matcher
}

var defaultClassifier = newClassifier()

func newClassifier() *Classifier {
	return &Classifier{cascade: []matcher{
		{kind: event.Login, patterns: []*regexp.Regexp{loginPattern}},
		{kind: event.Logout, patterns: []*regexp.Regexp{logoutPattern}},
		{kind: event.Death, patterns: append([]*regexp.Regexp(nil), deathPatterns...)},
		{kind: event.Chat, patterns: []*regexp.Regexp{chatPattern}},
	}}
}

// Default returns the classifier holding only the built-in templates.
func Default() *Classifier {
	return defaultClassifier
}

// New returns a classifier with extra templates appended after the built-in
// templates of their kind. Kind priority is unaffected.
func New(extra ...Template) (*Classifier, error) {
	c := newClassifier()
	for i, t := range extra {
		if err := ValidateTemplate(t.Kind, t.Regex); err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		for j := range c.cascade {
			if c.cascade[j].kind == t.Kind {
				c.cascade[j].patterns = append(c.cascade[j].patterns, t.Regex)
			}
		}
	}
	return c, nil
}

// ValidateTemplate checks that re can populate an event of the given kind.
func ValidateTemplate(kind event.Kind, re *regexp.Regexp) error {
	if re == nil {
		return errors.New("regex is nil")
	}
	n := re.NumSubexp()
	switch kind {
	case event.Login, event.Logout:
		if n < 1 {
			return fmt.Errorf("%s template needs a player group, has %d groups", kind, n)
		}
	case event.Chat:
		if n < 2 {
			return fmt.Errorf("chat template needs player and text groups, has %d groups", n)
		}
	case event.Death:
		if n < 1 || n > 3 {
			return fmt.Errorf("death template needs 1 to 3 groups (player, killer, weapon), has %d", n)
		}
	default:
		return fmt.Errorf("templates cannot target kind %q", kind)
	}
	return nil
}

// Parse classifies a line with the built-in templates.
//
// Returns:
//   - (Event, nil): the envelope matched; Kind is Generic when no template did
//   - (zero Event, ErrUnrecognizedFormat): the envelope did not match
func Parse(line string) (event.Event, error) {
	return defaultClassifier.Classify(line)
}

// Classify classifies a single line.
func (c *Classifier) Classify(line string) (event.Event, error) {
	line = strings.TrimRight(line, "\r\n")

	env := envelopePattern.FindStringSubmatch(line)
	if env == nil {
		return event.Event{}, ErrUnrecognizedFormat
	}

	ev := event.Event{
		Kind:    event.Generic,
		Time:    env[1],
		Thread:  env[2],
		Level:   env[3],
		Message: env[4],
		Source:  line,
	}

	for _, m := range c.cascade {
		for _, re := range m.patterns {
			match := re.FindStringSubmatch(ev.Message)
			if match == nil {
				continue
			}
			fill(&ev, m.kind, match)
			return ev, nil
		}
	}

	return ev, nil
}

func fill(ev *event.Event, kind event.Kind, match []string) {
	ev.Kind = kind
	ev.Player = match[1]

	switch kind {
	case event.Death:
		if len(match) > 2 {
			ev.Killer = match[2]
		}
		if len(match) > 3 {
			ev.Weapon = match[3]
		}
	case event.Chat:
		ev.Text = match[2]
	}
}
