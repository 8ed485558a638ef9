// Package rconsink sends console commands to a running server over RCON.
package rconsink

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorcon/rcon"
)

// DefaultPort is the vanilla rcon.port.
const DefaultPort = "25575"

// Sink is a mutex-protected RCON connection that reconnects on failure.
// It implements mcvisor.CommandSink.
type Sink struct {
	addr     string
	password string
	timeout  time.Duration
	log      *slog.Logger

	mu   sync.Mutex
	conn *rcon.Conn
}

// New returns a Sink for host:port. The connection is opened lazily on the
// first command. A zero timeout uses the library default.
func New(host, port, password string, timeout time.Duration, logger *slog.Logger) *Sink {
	if port == "" {
		port = DefaultPort
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sink{
		addr:     net.JoinHostPort(host, port),
		password: password,
		timeout:  timeout,
		log:      logger,
	}
}

// Addr returns the server address.
func (s *Sink) Addr() string {
	return s.addr
}

// Send implements mcvisor.CommandSink. The trailing newline and leading
// slash of console commands are not part of the RCON request and are
// stripped. The server's reply is logged at debug level.
func (s *Sink) Send(cmd string) error {
	resp, err := s.Execute(cmd)
	if err != nil {
		return err
	}
	if resp != "" {
		s.log.Debug("rcon response", "command", Normalize(cmd), "response", resp)
	}
	return nil
}

// Normalize converts a console command line into an RCON request body.
func Normalize(cmd string) string {
	cmd = strings.TrimRight(cmd, "\r\n")
	return strings.TrimPrefix(cmd, "/")
}

// Execute runs a command and returns the server's reply, reconnecting once
// if the connection has gone stale. Commands longer than rcon.MaxCommandLen
// are rejected with rcon.ErrCommandTooLong before anything is sent.
func (s *Sink) Execute(cmd string) (string, error) {
	cmd = Normalize(cmd)
	if cmd == "" {
		return "", errors.New("empty command")
	}
	if len(cmd) > rcon.MaxCommandLen {
		return "", fmt.Errorf("rcon command is %d bytes, limit %d: %w", len(cmd), rcon.MaxCommandLen, rcon.ErrCommandTooLong)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.getConn()
	if err != nil {
		return "", fmt.Errorf("rcon connect: %w", err)
	}

	resp, err := conn.Execute(cmd)
	if err != nil {
		if !transient(err) {
			return "", fmt.Errorf("rcon execute: %w", err)
		}
		s.log.Debug("rcon execute failed, reconnecting", "error", err)
		s.closeConn()

		conn, err = s.getConn()
		if err != nil {
			return "", fmt.Errorf("rcon reconnect: %w", err)
		}
		resp, err = conn.Execute(cmd)
		if err != nil {
			s.closeConn()
			return "", fmt.Errorf("rcon execute after reconnect: %w", err)
		}
	}
	return resp, nil
}

func (s *Sink) getConn() (*rcon.Conn, error) {
	if s.conn != nil {
		return s.conn, nil
	}
	var opts []rcon.Option
	if s.timeout > 0 {
		opts = append(opts, rcon.SetDialTimeout(s.timeout), rcon.SetDeadline(s.timeout))
	}
	conn, err := rcon.Dial(s.addr, s.password, opts...)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	return conn, nil
}

// transient reports whether err may be cured by reconnecting. Request
// validation errors leave the connection intact.
func transient(err error) bool {
	return !errors.Is(err, rcon.ErrCommandTooLong) && !errors.Is(err, rcon.ErrCommandEmpty)
}

func (s *Sink) closeConn() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}

// Close closes the connection, if open.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
