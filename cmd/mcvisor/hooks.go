package main

import (
	"fmt"
	"strings"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
)

// expandCommand fills a hook command template from an event. Placeholders:
// {player} {killer} {weapon} {text} {message} {time} {thread} {level}.
// Unknown placeholders are left as is.
func expandCommand(tmpl string, ev mcvisor.Event) string {
	return strings.NewReplacer(
		"{player}", ev.Player,
		"{killer}", ev.Killer,
		"{weapon}", ev.Weapon,
		"{text}", ev.Text,
		"{message}", ev.Message,
		"{time}", ev.Time,
		"{thread}", ev.Thread,
		"{level}", ev.Level,
	).Replace(tmpl)
}

// registerHooks subscribes one handler per hook, sending the expanded
// command to console.
func registerHooks(reg *mcvisor.Registry, console *mcvisor.Console, hooks []Hook) error {
	for i, h := range hooks {
		send := func(ev mcvisor.Event) error {
			return console.Command("%s", expandCommand(h.Command, ev))
		}

		var err error
		if mcvisor.EventKind(h.On) == mcvisor.EventChat {
			err = reg.RegisterChat(mcvisor.ChatFilter{Pattern: h.Pattern, Level: h.Level, Thread: h.Thread}, send)
		} else {
			err = reg.Register(mcvisor.EventKind(h.On), send)
		}
		if err != nil {
			return fmt.Errorf("hooks[%d]: %w", i, err)
		}
	}
	return nil
}
