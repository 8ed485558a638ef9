package mcvisor

import (
	"fmt"
	"sync"
)

// Handler is invoked with each dispatched event it subscribed to.
// A non-nil error stops the dispatch of that event.
type Handler func(ev Event) error

// subscription is one registered handler.
type subscription struct {
	handler Handler
	filter  *compiledFilter // chat subscriptions only; nil means unconditional
}

// Registry holds per-kind ordered handler lists and dispatches events to them.
//
// Handlers run synchronously on the dispatching goroutine, in registration
// order. Registration may happen concurrently with Dispatch; a dispatch in
// progress sees the handlers registered before it started.
type Registry struct {
	mu   sync.RWMutex
	subs map[EventKind][]subscription
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[EventKind][]subscription)}
}

// Register subscribes h to every event of the given kind.
// Chat subscriptions registered this way are unconditional; use RegisterChat
// to filter them.
func (r *Registry) Register(kind EventKind, h Handler) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if h == nil {
		return fmt.Errorf("nil handler for %s", kind)
	}
	r.add(kind, subscription{handler: h})
	return nil
}

// RegisterChat subscribes h to chat events accepted by filter.
// Returns a *FilterError if filter.Pattern does not compile.
func (r *Registry) RegisterChat(filter ChatFilter, h Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler for %s", EventChat)
	}
	cf, err := filter.compile()
	if err != nil {
		return err
	}
	r.add(EventChat, subscription{handler: h, filter: cf})
	return nil
}

func (r *Registry) add(kind EventKind, s subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs == nil {
		r.subs = make(map[EventKind][]subscription)
	}
	r.subs[kind] = append(r.subs[kind], s)
}

// OnLogin subscribes h to login events.
func (r *Registry) OnLogin(h Handler) error { return r.Register(EventLogin, h) }

// OnLogout subscribes h to logout events.
func (r *Registry) OnLogout(h Handler) error { return r.Register(EventLogout, h) }

// OnDeath subscribes h to death events.
func (r *Registry) OnDeath(h Handler) error { return r.Register(EventDeath, h) }

// OnGeneric subscribes h to lines no specialized template recognized.
func (r *Registry) OnGeneric(h Handler) error { return r.Register(EventGeneric, h) }

// OnChat subscribes h to chat events accepted by filter.
func (r *Registry) OnChat(filter ChatFilter, h Handler) error { return r.RegisterChat(filter, h) }

// Len returns the number of handlers registered for kind.
func (r *Registry) Len(kind EventKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[kind])
}

// Handlers returns, in registration order, the handlers that Dispatch would
// invoke for ev. Filters are evaluated for chat events only.
func (r *Registry) Handlers(ev Event) []Handler {
	r.mu.RLock()
	subs := r.subs[ev.Kind]
	r.mu.RUnlock()

	// subs is append-only, so the slice header read under the lock is a
	// stable snapshot.
	handlers := make([]Handler, 0, len(subs))
	for _, s := range subs {
		if ev.Kind == EventChat && s.filter != nil && !s.filter.allows(ev) {
			continue
		}
		handlers = append(handlers, s.handler)
	}
	return handlers
}

// Dispatch invokes the handlers resolved for ev in registration order.
// The first handler error stops the dispatch and is returned as a
// *HandlerError. Panics are not recovered.
func (r *Registry) Dispatch(ev Event) error {
	for i, h := range r.Handlers(ev) {
		if err := h(ev); err != nil {
			return &HandlerError{Kind: ev.Kind, Index: i, Err: err}
		}
	}
	return nil
}
