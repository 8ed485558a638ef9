// Package tailer follows a growing server log file, surviving the rename
// and recreate the server performs on startup.
package tailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nxadm/tail"
)

// Config controls how a file is followed.
type Config struct {
	// FromStart reads the existing content first instead of starting at the end.
	FromStart bool

	// Poll checks the file for changes by polling instead of inotify.
	// Needed on some network and container file systems.
	Poll bool

	// MustExist fails New when the file does not exist yet.
	MustExist bool
}

// DefaultConfig follows new lines only, using inotify, and waits for the
// file to appear.
func DefaultConfig() Config {
	return Config{}
}

// Tailer delivers lines appended to a file. It implements the ReadLine
// method of mcvisor.LineSource.
type Tailer struct {
	t      *tail.Tail
	lines  chan string
	errs   chan error
	cancel context.CancelFunc
	done   chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// New starts following path. The tailer stops when ctx is cancelled or
// Stop is called, after which ReadLine returns io.EOF.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	whence := io.SeekEnd
	if cfg.FromStart {
		whence = io.SeekStart
	}

	t, err := tail.TailFile(path, tail.Config{
		Location:  &tail.SeekInfo{Offset: 0, Whence: whence},
		ReOpen:    true,
		Follow:    true,
		MustExist: cfg.MustExist,
		Poll:      cfg.Poll,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("tailing %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	tl := &Tailer{
		t:      t,
		lines:  make(chan string),
		errs:   make(chan error, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go tl.run(ctx)
	return tl, nil
}

func (tl *Tailer) run(ctx context.Context) {
	defer close(tl.done)
	defer close(tl.lines)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-tl.t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				select {
				case tl.errs <- line.Err:
				case <-ctx.Done():
					return
				}
				continue
			}
			select {
			case tl.lines <- strings.TrimRight(line.Text, "\r"):
			case <-ctx.Done():
				return
			}
		}
	}
}

// Lines returns the channel of lines, closed once the tailer stops.
func (tl *Tailer) Lines() <-chan string {
	return tl.lines
}

// ReadLine blocks until the next line. It returns io.EOF once the tailer has
// stopped and any per-line error reported by the underlying follower, such
// as a line exceeding its buffer.
func (tl *Tailer) ReadLine() (string, error) {
	select {
	case line, ok := <-tl.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case err := <-tl.errs:
		return "", err
	}
}

// Stop stops following the file and releases its watches.
func (tl *Tailer) Stop() error {
	tl.stopOnce.Do(func() {
		tl.cancel()
		<-tl.done
		err := tl.t.Stop()
		tl.t.Cleanup()
		if err != nil && !errors.Is(err, tail.ErrStop) {
			tl.stopErr = err
		}
	})
	return tl.stopErr
}
