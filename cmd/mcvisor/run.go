package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcvisor/mcvisor-go/internal/logfinder"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
)

var (
	// run flags
	runDir             string
	runJava            string
	runJavaOpts        []string
	runPatterns        []string
	runFormat          string
	runKinds           []string
	runShutdownTimeout time.Duration
	runNoInput         bool
)

var runCmd = &cobra.Command{
	Use:   "run [jar]",
	Short: "Run a Minecraft server and react to its events",
	Long: `Start a Minecraft server as a child process, echo its console and relay
stdin to it. Hooks from the config file send console commands when events
occur.

The jar is taken from the argument, the config file, $` + EnvJar + `, or the
newest server jar in the server directory, in that order.

Examples:
  # Run the jar in the current directory
  mcvisor run

  # Run a specific jar with more memory
  mcvisor run --dir /srv/minecraft --java-opts=-Xmx4G minecraft_server.1.8.9.jar

  # Print events as JSON Lines instead of the raw console
  mcvisor run --format jsonl --kinds login,logout,death`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runDir, "dir", "d", "",
		"Server directory (default: config, $"+logfinder.EnvServerDir+", or the current directory)")
	runCmd.Flags().StringVar(&runJava, "java", "",
		"Java executable (default: config or java from PATH)")
	runCmd.Flags().StringSliceVar(&runJavaOpts, "java-opts", nil,
		"JVM flags placed before -jar (default: config or -Xmx2G)")
	runCmd.Flags().StringArrayVarP(&runPatterns, "patterns", "p", nil,
		"YAML pattern file extending the built-in templates (repeatable)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "",
		"Print events in this format (jsonl, pretty) instead of the raw console")
	runCmd.Flags().StringSliceVarP(&runKinds, "kinds", "k", nil,
		"Event kinds to print with --format (login,logout,death,chat,generic)")
	runCmd.Flags().DurationVar(&runShutdownTimeout, "shutdown-timeout", 0,
		"Kill the server if it has not stopped this long after /stop (0 = wait)")
	runCmd.Flags().BoolVar(&runNoInput, "no-input", false,
		"Do not relay stdin to the server console")

	rootCmd.AddCommand(runCmd)
}

// serverOptions merges flags and config into server options.
func serverOptions(dir string) ([]mcvisor.Option, error) {
	opts := []mcvisor.Option{
		mcvisor.WithDir(dir),
		mcvisor.WithStopOnHandlerError(cfg.StopOnHandlerError),
	}

	java := cfg.Server.Java
	if runJava != "" {
		java = runJava
	}
	opts = append(opts, mcvisor.WithJava(java))

	javaOpts := cfg.Server.JavaOpts
	if len(runJavaOpts) > 0 {
		javaOpts = runJavaOpts
	}
	if len(javaOpts) > 0 {
		opts = append(opts, mcvisor.WithJavaOpts(javaOpts...))
	}

	if len(cfg.Server.Command) > 0 {
		opts = append(opts, mcvisor.WithCommand(cfg.Server.Command[0], cfg.Server.Command[1:]...))
	}

	timeout := cfg.Server.ShutdownTimeout
	if runShutdownTimeout > 0 {
		timeout = runShutdownTimeout
	}
	opts = append(opts, mcvisor.WithShutdownTimeout(timeout))

	patterns := append(append([]string(nil), cfg.Patterns...), runPatterns...)
	p, err := buildParser(patterns)
	if err != nil {
		return nil, err
	}
	if p != nil {
		opts = append(opts, mcvisor.WithParser(p))
	}
	return opts, nil
}

// resolveJar picks the server jar; see the run command help.
func resolveJar(args []string, dir string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Server.Jar != "" {
		return cfg.Server.Jar, nil
	}
	if len(cfg.Server.Command) > 0 {
		return "", nil
	}
	return logfinder.FindServerJar(dir)
}

func runRun(cmd *cobra.Command, args []string) error {
	if runFormat != "" && !validFormats[runFormat] {
		return fmt.Errorf("invalid format %q (want jsonl or pretty)", runFormat)
	}
	kinds, err := parseKinds(runKinds)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	dirArg := runDir
	if dirArg == "" {
		dirArg = cfg.Server.Dir
	}
	dir, err := logfinder.FindServerDir(dirArg)
	if err != nil {
		return err
	}

	jar, err := resolveJar(args, dir)
	if err != nil {
		return err
	}

	opts, err := serverOptions(dir)
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

	opts = append(opts, mcvisor.WithLogger(logger), mcvisor.WithMeterProvider(mp))
	if runFormat == "" {
		opts = append(opts, mcvisor.WithOutput(cmd.OutOrStdout()))
	}
	if !runNoInput {
		opts = append(opts, mcvisor.WithInput(os.Stdin))
	}

	srv, err := mcvisor.NewServer(jar, opts...)
	if err != nil {
		return err
	}

	if runFormat != "" {
		if err := registerPrinter(srv.Registry, kinds, runFormat, cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if err := registerHooks(srv.Registry, srv.Console, cfg.Hooks); err != nil {
		return err
	}

	logger.Info("starting server", "server_id", srv.ID(), "dir", dir, "args", srv.Args())
	err = srv.Run(ctx)

	var exitErr *mcvisor.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("server exited with code %d", exitErr.Code)
	}
	return err
}
