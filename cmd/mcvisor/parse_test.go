package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
)

const serverLog = `[16:20:00] [Server thread/INFO]: Starting minecraft server version 1.8.9
[16:20:05] [Server thread/INFO]: Alex joined the game
[16:21:00] [Server thread/INFO]: <Alex> anyone here?
[16:22:30] [Server thread/INFO]: Alex tried to swim in lava
[16:23:00] [Server thread/INFO]: Alex left the game
`

func newPrintingProcessor(t *testing.T, kinds []string, format string, out io.Writer) *mcvisor.Processor {
	t.Helper()
	set, err := parseKinds(kinds)
	if err != nil {
		t.Fatal(err)
	}
	reg := mcvisor.NewRegistry()
	if err := registerPrinter(reg, set, format, out); err != nil {
		t.Fatal(err)
	}
	proc, err := mcvisor.NewProcessor(reg,
		mcvisor.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		mcvisor.WithStopOnHandlerError(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	return proc
}

func TestClassifyReader(t *testing.T) {
	var buf bytes.Buffer
	proc := newPrintingProcessor(t, []string{"login,death,logout"}, "pretty", &buf)

	if err := classifyReader(proc, strings.NewReader(serverLog)); err != nil {
		t.Fatalf("classifyReader() error = %v", err)
	}

	want := "[16:20:05] + Alex joined\n" +
		"[16:22:30] x Alex tried to swim in lava\n" +
		"[16:23:00] - Alex left\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestClassifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.log")
	if err := os.WriteFile(path, []byte(serverLog), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	proc := newPrintingProcessor(t, nil, "jsonl", &buf)
	if err := classifyFile(proc, path); err != nil {
		t.Fatalf("classifyFile() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d records, want 5:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], `"kind":"chat"`) || !strings.Contains(lines[2], `"text":"anyone here?"`) {
		t.Errorf("lines[2] = %s", lines[2])
	}
}

func TestClassifyFile_NotFound(t *testing.T) {
	proc := newPrintingProcessor(t, nil, "jsonl", io.Discard)
	if err := classifyFile(proc, filepath.Join(t.TempDir(), "missing.log")); err == nil {
		t.Fatal("classifyFile() expected error")
	}
}
