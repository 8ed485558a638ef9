package mcvisor

import "github.com/mcvisor/mcvisor-go/pkg/mcvisor/event"

// Event is a classified server log line. See the event package for field details.
type Event = event.Event

// EventKind identifies an Event variant.
type EventKind = event.Kind

// Event kinds.
const (
	EventGeneric = event.Generic
	EventLogin   = event.Login
	EventLogout  = event.Logout
	EventDeath   = event.Death
	EventChat    = event.Chat
)
