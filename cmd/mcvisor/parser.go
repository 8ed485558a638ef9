package main

import (
	"fmt"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/pattern"
)

// buildParser builds a Parser extending the built-in templates with the
// given pattern files, in order. Returns nil if no files are given, meaning
// the default parser.
func buildParser(patternFiles []string) (mcvisor.Parser, error) {
	if len(patternFiles) == 0 {
		return nil, nil
	}

	merged := &pattern.PatternFile{Version: pattern.SupportedVersion}
	for i, path := range patternFiles {
		pf, err := pattern.Load(path)
		if err != nil {
			// Errors from the pattern package carry no path.
			return nil, fmt.Errorf("pattern file %d: %w", i+1, err)
		}
		merged.Patterns = append(merged.Patterns, pf.Patterns...)
	}

	// IDs must stay unique across files.
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	p, err := pattern.NewParser(merged)
	if err != nil {
		return nil, err
	}
	return p, nil
}
