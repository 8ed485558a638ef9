package mcvisor

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// CommandSink accepts pre-formatted console commands, each already
// terminated by a newline.
type CommandSink interface {
	Send(cmd string) error
}

// writerSink writes commands to an io.Writer such as a process stdin pipe.
type writerSink struct {
	w io.Writer
}

// WriterSink returns a CommandSink writing commands verbatim to w.
func WriterSink(w io.Writer) CommandSink {
	return writerSink{w: w}
}

func (s writerSink) Send(cmd string) error {
	_, err := io.WriteString(s.w, cmd)
	return err
}

// Console sends commands to a server console. Sends are serialized, so
// commands from concurrent callers never interleave.
//
// There is no acknowledgement: the server's reaction, if any, shows up as
// further log lines.
type Console struct {
	mu   sync.Mutex
	sink CommandSink
}

// NewConsole returns a Console writing to sink. A nil sink yields a detached
// console whose sends fail with ErrNotRunning.
func NewConsole(sink CommandSink) *Console {
	return &Console{sink: sink}
}

func (c *Console) attach(sink CommandSink) {
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()
}

func (c *Console) detach() {
	c.attach(nil)
}

// Send writes cmd verbatim. The caller supplies the trailing newline.
func (c *Console) Send(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sink == nil {
		return ErrNotRunning
	}
	return c.sink.Send(cmd)
}

// Command formats a single command and sends it with a trailing newline.
// Embedded newlines are replaced with spaces so one call is always one command.
func (c *Console) Command(format string, args ...any) error {
	cmd := fmt.Sprintf(format, args...)
	cmd = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(cmd)
	return c.Send(cmd + "\n")
}

// Stop asks the server to save and shut down.
func (c *Console) Stop() error {
	return c.Command("/stop")
}
