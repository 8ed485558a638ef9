package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
)

var (
	// parse flags
	parseFormat   string
	parseKindsArg []string
	parsePatterns []string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Classify server log lines from files or stdin",
	Long: `Classify existing server log lines and output the events.

Lines without a log envelope (for example JVM startup output) are skipped.

Examples:
  # Classify a rotated log
  zcat logs/2024-01-15-1.log.gz | mcvisor parse --kinds death

  # Check a pattern file against a log
  mcvisor parse -p templates.yaml --format pretty logs/latest.log`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	parseCmd.Flags().StringSliceVarP(&parseKindsArg, "kinds", "k", nil,
		"Event kinds to show (comma-separated: login,logout,death,chat,generic)")
	parseCmd.Flags().StringArrayVarP(&parsePatterns, "patterns", "p", nil,
		"YAML pattern file extending the built-in templates (repeatable)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if !validFormats[parseFormat] {
		return fmt.Errorf("invalid format %q (want jsonl or pretty)", parseFormat)
	}
	kinds, err := parseKinds(parseKindsArg)
	if err != nil {
		return err
	}

	p, err := buildParser(append(append([]string(nil), cfg.Patterns...), parsePatterns...))
	if err != nil {
		return err
	}

	reg := mcvisor.NewRegistry()
	if err := registerPrinter(reg, kinds, parseFormat, cmd.OutOrStdout()); err != nil {
		return err
	}

	proc, err := mcvisor.NewProcessor(reg,
		mcvisor.WithParser(p),
		mcvisor.WithLogger(newLogger()),
		mcvisor.WithStopOnHandlerError(true),
	)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return classifyReader(proc, cmd.InOrStdin())
	}
	for _, path := range args {
		if err := classifyFile(proc, path); err != nil {
			return err
		}
	}
	return nil
}

func classifyFile(proc *mcvisor.Processor, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return classifyReader(proc, f)
}

func classifyReader(proc *mcvisor.Processor, r io.Reader) error {
	return proc.Pump(mcvisor.NewLineReader(r))
}
