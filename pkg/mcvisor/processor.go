package mcvisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// LineSource yields server output one line at a time, without line
// terminators. ReadLine blocks until a line is available and returns io.EOF
// once the stream has ended; any other error is a read failure.
type LineSource interface {
	ReadLine() (string, error)
}

// lineReader adapts an io.Reader to LineSource.
type lineReader struct {
	r *bufio.Reader
}

// NewLineReader returns a LineSource reading newline-terminated lines from r.
// A final line without a terminator is still returned before io.EOF.
func NewLineReader(r io.Reader) LineSource {
	return &lineReader{r: bufio.NewReader(r)}
}

func (lr *lineReader) ReadLine() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimRight(s, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Processor classifies lines and dispatches the resulting events to a Registry.
//
// A Processor is meant to be driven by a single goroutine: ProcessLine and
// Pump must not be called concurrently, so handlers observe events in line
// order.
type Processor struct {
	reg     *Registry
	cfg     config
	log     *slog.Logger
	metrics *metrics
}

// NewProcessor creates a Processor dispatching to reg.
func NewProcessor(reg *Registry, opts ...Option) (*Processor, error) {
	if reg == nil {
		return nil, errors.New("registry is nil")
	}
	cfg := applyOptions(opts)

	m, err := newMetrics(cfg.meterProviderOrGlobal())
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &Processor{
		reg:     reg,
		cfg:     *cfg,
		log:     cfg.loggerOrDiscard(),
		metrics: m,
	}, nil
}

// ProcessLine classifies one line and dispatches the event.
//
// Lines without a log envelope are logged at debug level and skipped.
// Handler failures, including panics, are logged and skipped unless
// WithStopOnHandlerError was given, in which case the *HandlerError is
// returned.
func (p *Processor) ProcessLine(line string) error {
	ctx := context.Background()

	ev, err := p.cfg.parser.Classify(line)
	if err != nil {
		if errors.Is(err, ErrUnrecognizedFormat) {
			p.metrics.recordUnrecognized(ctx)
			p.log.Debug("skipping unrecognized line", "line", line)
			return nil
		}
		p.log.Warn("parser failed", "line", line, "error", err)
		return nil
	}
	p.metrics.recordEvent(ctx, ev)

	if err := p.dispatch(ev); err != nil {
		p.metrics.recordHandlerError(ctx, ev.Kind)
		if p.cfg.stopOnHandlerError {
			return err
		}
		p.log.Warn("handler failed", "kind", ev.Kind, "error", err)
	}
	return nil
}

// dispatch mirrors Registry.Dispatch but converts handler panics into errors.
func (p *Processor) dispatch(ev Event) error {
	for i, h := range p.reg.Handlers(ev) {
		if err := callHandler(h, ev); err != nil {
			return &HandlerError{Kind: ev.Kind, Index: i, Err: err}
		}
	}
	return nil
}

func callHandler(h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return h(ev)
}

// Pump processes lines from src until it reports io.EOF, returning nil.
// Every line is echoed to the WithOutput writer, if any, before processing.
// Read failures are returned wrapped; so are handler errors when
// WithStopOnHandlerError is set.
func (p *Processor) Pump(src LineSource) error {
	for {
		line, err := src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading server output: %w", err)
		}

		if p.cfg.output != nil {
			if _, err := fmt.Fprintln(p.cfg.output, line); err != nil {
				p.log.Debug("echo failed", "error", err)
			}
		}

		if err := p.ProcessLine(line); err != nil {
			return err
		}
	}
}
