package mcvisor

import (
	"errors"
	"fmt"

	"github.com/mcvisor/mcvisor-go/internal/parser"
)

// Sentinel errors.
var (
	// ErrUnrecognizedFormat is returned by Parser implementations when a line
	// lacks the "[HH:MM:SS] [thread/LEVEL]: message" envelope.
	ErrUnrecognizedFormat = parser.ErrUnrecognizedFormat

	// ErrInvalidKind is returned when registering for an unknown event kind.
	ErrInvalidKind = errors.New("invalid event kind")

	// ErrHandlerPanic wraps a panic raised by a handler during Processor dispatch.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrNotRunning is returned by Console when no command sink is attached.
	ErrNotRunning = errors.New("server is not running")

	// ErrAlreadyRunning is returned by Server.Run when the server is already running.
	ErrAlreadyRunning = errors.New("server is already running")

	// ErrShutdownTimeout is returned by Server.Run when the server had to be
	// killed because it did not exit within the shutdown timeout.
	ErrShutdownTimeout = errors.New("server killed after shutdown timeout")
)

// ParseError wraps a classification failure with the offending line.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v (line: %q)", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// HandlerError reports a handler that failed while an event was dispatched.
// Index is the handler's position among the handlers resolved for the event.
type HandlerError struct {
	Kind  EventKind
	Index int
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler %d: %v", e.Kind, e.Index, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// FilterError reports a chat filter that could not be compiled.
type FilterError struct {
	Pattern string
	Err     error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid chat filter pattern %q: %v", e.Pattern, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}

// ExitError reports that the server process exited on its own with a failure status.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("server process exited with code %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
