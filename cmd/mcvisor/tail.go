package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcvisor/mcvisor-go/internal/logfinder"
	"github.com/mcvisor/mcvisor-go/internal/rconsink"
	"github.com/mcvisor/mcvisor-go/internal/tailer"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
)

var (
	// tail flags
	tailDir       string
	tailFile      string
	tailFormat    string
	tailKinds     []string
	tailPatterns  []string
	tailFromStart bool
	tailPoll      bool
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow a server log and output events",
	Long: `Follow the log of a running server (logs/latest.log, or server.log for
old versions) and output classified events.

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq. When RCON is configured,
hooks from the config file are sent to the server over RCON.

Examples:
  # Follow the server in the current directory
  mcvisor tail

  # Only deaths and chat, human-readable
  mcvisor tail --dir /srv/minecraft --kinds death,chat --format pretty

  # Replay the whole current log first
  mcvisor tail --from-start

  # Pipe to jq for filtering
  mcvisor tail | jq 'select(.kind == "login") | .player'`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVarP(&tailDir, "dir", "d", "",
		"Server directory (default: config, $"+logfinder.EnvServerDir+", or the current directory)")
	tailCmd.Flags().StringVar(&tailFile, "file", "",
		"Log file to follow (overrides --dir)")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	tailCmd.Flags().StringSliceVarP(&tailKinds, "kinds", "k", nil,
		"Event kinds to show (comma-separated: login,logout,death,chat,generic)")
	tailCmd.Flags().StringArrayVarP(&tailPatterns, "patterns", "p", nil,
		"YAML pattern file extending the built-in templates (repeatable)")
	tailCmd.Flags().BoolVar(&tailFromStart, "from-start", false,
		"Read the existing log content before following")
	tailCmd.Flags().BoolVar(&tailPoll, "poll", false,
		"Poll for changes instead of using file system notifications")

	rootCmd.AddCommand(tailCmd)
}

// resolveLogFile picks the log file to follow.
func resolveLogFile(file, dir string) (string, error) {
	if file != "" {
		return file, nil
	}
	if dir == "" {
		dir = cfg.Server.Dir
	}
	serverDir, err := logfinder.FindServerDir(dir)
	if err != nil {
		return "", err
	}
	return logfinder.FindLogFile(serverDir)
}

// rconConsole returns a console backed by RCON, or nil when RCON is not
// configured. The returned close function is always non-nil.
func rconConsole(logger *slog.Logger) (*mcvisor.Console, func()) {
	if !cfg.RCON.Enabled() {
		return nil, func() {}
	}
	sink := rconsink.New(cfg.RCON.Host, cfg.RCON.Port, cfg.RCON.Password, cfg.RCON.Timeout, logger)
	return mcvisor.NewConsole(sink), func() { _ = sink.Close() }
}

func runTail(cmd *cobra.Command, args []string) error {
	if !validFormats[tailFormat] {
		return fmt.Errorf("invalid format %q (want jsonl or pretty)", tailFormat)
	}
	kinds, err := parseKinds(tailKinds)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	path, err := resolveLogFile(tailFile, tailDir)
	if err != nil {
		return err
	}

	p, err := buildParser(append(append([]string(nil), cfg.Patterns...), tailPatterns...))
	if err != nil {
		return err
	}

	mp, shutdownMetrics, err := setupMetrics(ctx, cfg.Metrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			logger.Warn("flushing metrics failed", "error", err)
		}
	}()

	reg := mcvisor.NewRegistry()
	if err := registerPrinter(reg, kinds, tailFormat, cmd.OutOrStdout()); err != nil {
		return err
	}

	if len(cfg.Hooks) > 0 {
		console, closeConsole := rconConsole(logger)
		defer closeConsole()
		if console == nil {
			logger.Warn("hooks ignored: rcon is not configured", "hint", "set rcon.host and $"+EnvRCONPassword)
		} else if err := registerHooks(reg, console, cfg.Hooks); err != nil {
			return err
		}
	}

	proc, err := mcvisor.NewProcessor(reg,
		mcvisor.WithParser(p),
		mcvisor.WithLogger(logger),
		mcvisor.WithMeterProvider(mp),
		mcvisor.WithStopOnHandlerError(cfg.StopOnHandlerError),
	)
	if err != nil {
		return err
	}

	t, err := tailer.New(ctx, path, tailer.Config{FromStart: tailFromStart, Poll: tailPoll})
	if err != nil {
		return err
	}
	defer t.Stop()
	logger.Debug("following log", "path", path, "from_start", tailFromStart)

	return pumpUntilDone(ctx, proc, t, logger)
}

// pumpUntilDone keeps pumping src across transient read errors until ctx is
// cancelled or the source ends. Handler errors are returned.
func pumpUntilDone(ctx context.Context, proc *mcvisor.Processor, src mcvisor.LineSource, logger *slog.Logger) error {
	for {
		err := proc.Pump(src)
		if err == nil || ctx.Err() != nil {
			return nil
		}
		var handlerErr *mcvisor.HandlerError
		if errors.As(err, &handlerErr) {
			return err
		}
		logger.Warn("reading log failed", "error", err)
	}
}
