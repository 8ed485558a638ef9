package mcvisor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// DefaultJavaOpts are the JVM flags used when WithJavaOpts is not given.
var DefaultJavaOpts = []string{"-Xmx2G"}

// Option configures a Processor or a Server using the functional options pattern.
// Options that only concern the child process are ignored by NewProcessor.
type Option func(*config)

// config holds internal configuration shared by Processor and Server.
type config struct {
	parser             Parser
	logger             *slog.Logger
	meterProvider      metric.MeterProvider
	stopOnHandlerError bool
	output             io.Writer

	// Child process.
	dir             string
	java            string
	javaOpts        []string
	command         []string // overrides java/javaOpts/jar when set
	input           io.Reader
	shutdownTimeout time.Duration
}

// defaultConfig returns a config with sensible defaults.
func defaultConfig() *config {
	return &config{
		parser:   DefaultParser{},
		java:     "java",
		javaOpts: DefaultJavaOpts,
	}
}

// applyOptions applies functional options to a config.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option combinations.
func (c *config) validate() error {
	if c.shutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must be non-negative, got %v", c.shutdownTimeout)
	}
	if len(c.command) == 0 && c.java == "" {
		return errors.New("java executable must not be empty")
	}
	return nil
}

// loggerOrDiscard returns the configured logger, or one that discards output.
func (c *config) loggerOrDiscard() *slog.Logger {
	if c.logger == nil {
		return discardLogger
	}
	return c.logger
}

// meterProviderOrGlobal returns the configured meter provider, falling back
// to the global one (a no-op unless the application installs an SDK).
func (c *config) meterProviderOrGlobal() metric.MeterProvider {
	if c.meterProvider == nil {
		return otel.GetMeterProvider()
	}
	return c.meterProvider
}

// WithParser sets the parser used to classify lines.
// If p is nil, this option has no effect (the default parser remains active).
func WithParser(p Parser) Option {
	return func(c *config) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithLogger sets a logger for diagnostics.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for line, handler
// and player metrics. Default: the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithStopOnHandlerError makes line processing return the first handler
// error instead of logging it and moving on to the next line.
// Default: false.
func WithStopOnHandlerError(stop bool) Option {
	return func(c *config) {
		c.stopOnHandlerError = stop
	}
}

// WithOutput echoes every raw line read from the server to w.
// Default: no echo.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithDir sets the working directory of the server process.
// Default: the current directory.
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// WithJava sets the java executable. Default: "java" from PATH.
func WithJava(java string) Option {
	return func(c *config) {
		c.java = java
	}
}

// WithJavaOpts sets the JVM flags placed before "-jar". Default: DefaultJavaOpts.
func WithJavaOpts(opts ...string) Option {
	return func(c *config) {
		c.javaOpts = opts
	}
}

// WithCommand replaces the java command line entirely, for servers started
// through a wrapper script. The jar passed to NewServer is then ignored.
func WithCommand(name string, args ...string) Option {
	return func(c *config) {
		c.command = append([]string{name}, args...)
	}
}

// WithInput relays lines read from r (typically os.Stdin) verbatim to the
// server console while it runs.
func WithInput(r io.Reader) Option {
	return func(c *config) {
		c.input = r
	}
}

// WithShutdownTimeout kills the server if it has not exited this long after
// the stop command was sent. Zero (default) waits indefinitely.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		c.shutdownTimeout = d
	}
}
