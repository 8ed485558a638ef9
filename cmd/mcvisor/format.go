package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/event"
)

// validFormats lists all valid output formats.
var validFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputEvent writes an event in the specified format to the writer.
func OutputEvent(format string, ev mcvisor.Event, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(ev, out)
	case "pretty":
		return OutputPretty(ev, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes an event as one JSON Lines record.
func OutputJSON(ev mcvisor.Event, out io.Writer) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes an event in human-readable form.
func OutputPretty(ev mcvisor.Event, out io.Writer) error {
	var err error
	switch ev.Kind {
	case mcvisor.EventLogin:
		_, err = fmt.Fprintf(out, "[%s] + %s joined\n", ev.Time, ev.Player)
	case mcvisor.EventLogout:
		_, err = fmt.Fprintf(out, "[%s] - %s left\n", ev.Time, ev.Player)
	case mcvisor.EventDeath:
		_, err = fmt.Fprintf(out, "[%s] x %s\n", ev.Time, ev.Message)
	case mcvisor.EventChat:
		_, err = fmt.Fprintf(out, "[%s] <%s> %s\n", ev.Time, ev.Player, ev.Text)
	default:
		if ev.Level != "" && ev.Level != "INFO" {
			_, err = fmt.Fprintf(out, "[%s] * %s: %s\n", ev.Time, ev.Level, ev.Message)
		} else {
			_, err = fmt.Fprintf(out, "[%s] * %s\n", ev.Time, ev.Message)
		}
	}
	return err
}

// parseKinds converts --kinds values into a set. An empty list selects
// every kind.
func parseKinds(values []string) (map[mcvisor.EventKind]bool, error) {
	set := make(map[mcvisor.EventKind]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			k, err := event.ParseKind(part)
			if err != nil {
				return nil, err
			}
			set[k] = true
		}
	}
	if len(set) == 0 {
		for _, k := range event.Kinds() {
			set[k] = true
		}
	}
	return set, nil
}

// registerPrinter subscribes a handler writing every event of the selected
// kinds to out.
func registerPrinter(reg *mcvisor.Registry, kinds map[mcvisor.EventKind]bool, format string, out io.Writer) error {
	write := func(ev mcvisor.Event) error {
		return OutputEvent(format, ev, out)
	}
	for _, k := range event.Kinds() {
		if !kinds[k] {
			continue
		}
		if err := reg.Register(k, write); err != nil {
			return err
		}
	}
	return nil
}
