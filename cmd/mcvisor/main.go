// Command mcvisor runs and watches Minecraft servers.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string

	// cfg is loaded before any subcommand runs.
	cfg Config
)

var rootCmd = &cobra.Command{
	Use:   "mcvisor",
	Short: "Minecraft server supervisor",
	Long: `mcvisor runs a Minecraft server, classifies its console output into
login, logout, death, chat and generic events, and reacts to them with
console commands.

It can also follow the log of a server it does not own, classify existing
log files, and send commands over RCON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv(EnvConfig)
		}
		loaded, err := LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default $"+EnvConfig+")")
}

// newLogger returns the CLI logger: text records on stderr, debug level
// with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
