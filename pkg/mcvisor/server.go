package mcvisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// errStopRequested is logged as the shutdown reason for Server.Stop.
var errStopRequested = errors.New("stop requested")

// Server supervises a Minecraft server process.
//
// Register handlers through the embedded Registry before calling Run, and
// send commands through the embedded Console while it runs:
//
//	srv, err := mcvisor.NewServer("server.jar", mcvisor.WithDir("/srv/minecraft"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.OnLogin(func(ev mcvisor.Event) error {
//	    return srv.Tell(ev.Player, "Welcome back!")
//	})
//	err = srv.Run(ctx) // returns after ctx is cancelled and the server has stopped
type Server struct {
	*Registry
	*Console

	id   string
	jar  string
	cfg  config
	log  *slog.Logger
	proc *Processor

	mu            sync.Mutex
	running       bool
	process       *os.Process
	exited        chan struct{} // closed once the running process has been reaped
	startHandlers []func()
	relayOnce     sync.Once

	stopping atomic.Bool // a stop command has been sent for the current run
	killed   atomic.Bool // the current run was killed after the shutdown timeout
}

// NewServer creates a supervisor for the server jar.
// Does NOT start the process; call Run for that.
func NewServer(jar string, opts ...Option) (*Server, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if len(cfg.command) == 0 {
		if jar == "" {
			return nil, errors.New("server jar is required")
		}
		abs, err := filepath.Abs(jar)
		if err != nil {
			return nil, fmt.Errorf("resolving server jar: %w", err)
		}
		jar = abs
	}

	id := uuid.NewString()
	log := cfg.loggerOrDiscard().With("server_id", id)
	reg := NewRegistry()

	m, err := newMetrics(cfg.meterProviderOrGlobal())
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &Server{
		Registry: reg,
		Console:  NewConsole(nil),
		id:       id,
		jar:      jar,
		cfg:      *cfg,
		log:      log,
		proc:     &Processor{reg: reg, cfg: *cfg, log: log, metrics: m},
	}, nil
}

// ID returns the unique id of this supervisor, included in every log record.
func (s *Server) ID() string {
	return s.id
}

// Args returns the command line used to start the server.
func (s *Server) Args() []string {
	if len(s.cfg.command) > 0 {
		return append([]string(nil), s.cfg.command...)
	}
	args := append([]string{s.cfg.java}, s.cfg.javaOpts...)
	return append(args, "-jar", s.jar, "nogui")
}

// OnStart registers fn to run right after the process has been spawned,
// before any output is processed.
func (s *Server) OnStart(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.startHandlers = append(s.startHandlers, fn)
	s.mu.Unlock()
}

// IsRunning reports whether the server process is currently running.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// PID returns the process id of the running server, or 0.
func (s *Server) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.process == nil {
		return 0
	}
	return s.process.Pid
}

// Stop sends the stop command to the running server. Run returns once the
// process has exited.
func (s *Server) Stop() error {
	s.mu.Lock()
	p, exited := s.process, s.exited
	s.mu.Unlock()
	if p == nil {
		return ErrNotRunning
	}
	return s.beginShutdown(p, exited, errStopRequested)
}

// Run starts the server and processes its output until the process exits.
//
// When ctx is cancelled the stop command is sent and output keeps being
// processed until the server has shut down. Run returns nil after a
// requested stop or a clean exit, *ExitError when the server exits on its
// own with a failure status, ErrShutdownTimeout when it had to be killed,
// and the *HandlerError that aborted processing under WithStopOnHandlerError.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()
	s.stopping.Store(false)
	s.killed.Store(false)

	defer func() {
		s.mu.Lock()
		s.running = false
		s.process = nil
		s.exited = nil
		s.mu.Unlock()
	}()

	args := s.Args()
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = s.cfg.dir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("creating stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("creating stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	exited := make(chan struct{})
	s.mu.Lock()
	s.process = cmd.Process
	s.exited = exited
	handlers := append([]func(){}, s.startHandlers...)
	s.mu.Unlock()

	s.log.Info("server started", "pid", cmd.Process.Pid, "args", args, "dir", s.cfg.dir)
	s.Console.attach(WriterSink(stdin))
	defer s.Console.detach()

	for _, h := range handlers {
		h()
	}

	// One relay serves every run so that repeated runs never have two
	// readers competing for the same input.
	if s.cfg.input != nil {
		s.relayOnce.Do(func() { go s.relay(s.cfg.input) })
	}

	go func() {
		select {
		case <-exited:
		case <-ctx.Done():
			if err := s.beginShutdown(cmd.Process, exited, ctx.Err()); err != nil {
				s.log.Warn("sending stop command failed", "error", err)
			}
		}
	}()

	src := NewLineReader(stdout)
	pumpErr := s.proc.Pump(src)
	if pumpErr != nil {
		if err := s.beginShutdown(cmd.Process, exited, pumpErr); err != nil {
			s.log.Warn("sending stop command failed", "error", err)
		}
		s.drain(src)
	}

	waitErr := cmd.Wait()
	close(exited)
	s.log.Info("server exited", "error", waitErr)

	switch {
	case s.killed.Load() && killedBySignal(cmd.ProcessState):
		return ErrShutdownTimeout
	case pumpErr != nil:
		return pumpErr
	case s.stopping.Load():
		return nil
	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Err: waitErr}
		}
		return fmt.Errorf("waiting for server: %w", waitErr)
	}
	return nil
}

// beginShutdown sends the stop command once per run and, with a shutdown
// timeout, arms a timer that kills p unless exited is closed first.
func (s *Server) beginShutdown(p *os.Process, exited <-chan struct{}, reason error) error {
	if !s.stopping.CompareAndSwap(false, true) {
		return nil
	}
	s.log.Info("stopping server", "reason", reason)
	err := s.Console.Stop()

	if timeout := s.cfg.shutdownTimeout; timeout > 0 {
		go func() {
			timer := time.NewTimer(timeout)
			defer timer.Stop()
			select {
			case <-exited:
			case <-timer.C:
				s.log.Warn("server did not stop in time, killing", "timeout", timeout)
				if err := p.Kill(); err != nil {
					s.log.Debug("kill failed", "error", err)
					return
				}
				s.killed.Store(true)
			}
		}()
	}
	return err
}

// killedBySignal reports whether the reaped process was terminated by a
// signal rather than exiting on its own. A process that exits right as the
// kill timer fires still reports a normal exit here.
func killedBySignal(ps *os.ProcessState) bool {
	return ps != nil && !ps.Exited()
}

// drain echoes remaining output without dispatching it.
func (s *Server) drain(src LineSource) {
	for {
		line, err := src.ReadLine()
		if err != nil {
			return
		}
		if s.cfg.output != nil {
			fmt.Fprintln(s.cfg.output, line)
		}
	}
}

// relay forwards operator input to the console line by line until EOF on r.
// Lines read while no run is active are dropped.
func (s *Server) relay(r io.Reader) {
	src := NewLineReader(r)
	for {
		line, err := src.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Debug("reading operator input failed", "error", err)
			}
			return
		}
		if err := s.Console.Send(line + "\n"); err != nil {
			if errors.Is(err, ErrNotRunning) {
				s.log.Debug("dropping operator input, server not running", "line", line)
				continue
			}
			s.log.Warn("relaying operator input failed", "error", err)
		}
	}
}
