package pattern

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mcvisor/mcvisor-go/internal/safefile"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/event"
)

const (
	// MaxPatternFileSize is the maximum size of a pattern file (1 MB).
	MaxPatternFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum length of a single regex, which keeps
	// pathological expressions out of the per-line hot path.
	MaxPatternLength = 512

	// MaxPatternCount is the maximum number of patterns in one file.
	MaxPatternCount = 1000

	// SupportedVersion is the supported pattern file format version.
	SupportedVersion = 1
)

// Load reads and validates a pattern file.
//
// Only regular files are read: symlinks, FIFOs and devices are rejected so a
// misconfigured path cannot block startup. File system paths are stripped
// from returned errors.
//
// Example:
//
//	pf, err := pattern.Load("templates.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load pattern file: %v", err)
//	}
func Load(path string) (*PatternFile, error) {
	data, err := safefile.ReadRegular(path, MaxPatternFileSize)
	if err != nil {
		switch {
		case errors.Is(err, safefile.ErrNotRegularFile):
			return nil, errors.New("pattern file must be a regular file (not a symlink, FIFO, device, or directory)")
		case errors.Is(err, safefile.ErrTooLarge):
			return nil, fmt.Errorf("pattern %w", err)
		}
		return nil, fmt.Errorf("failed to read pattern file: %w", safefile.SanitizePathError(err))
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a pattern file held in memory.
func LoadBytes(data []byte) (*PatternFile, error) {
	if len(data) == 0 {
		return nil, errors.New("pattern file is empty")
	}
	if len(data) > MaxPatternFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", len(data), MaxPatternFileSize)
	}

	var pf PatternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pf.Validate(); err != nil {
		return nil, err
	}
	return &pf, nil
}

// Validate performs schema-level validation: version, pattern count,
// required fields, known kinds, unique ids and regex length.
//
// Regular expressions are compiled by NewParser, not here.
func (pf *PatternFile) Validate() error {
	if pf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", pf.Version, SupportedVersion),
		}
	}
	if len(pf.Patterns) == 0 {
		return &ValidationError{Field: "patterns", Message: "at least one pattern is required"}
	}
	if len(pf.Patterns) > MaxPatternCount {
		return &ValidationError{
			Field:   "patterns",
			Message: fmt.Sprintf("too many patterns (%d), maximum allowed is %d", len(pf.Patterns), MaxPatternCount),
		}
	}

	seenIDs := make(map[string]int, len(pf.Patterns))
	for i, p := range pf.Patterns {
		if p.ID == "" {
			return &PatternError{Index: i, Field: "id", Message: "id is required"}
		}
		if p.Kind == "" {
			return &PatternError{Index: i, ID: p.ID, Field: "kind", Message: "kind is required"}
		}
		if !templateKind(event.Kind(p.Kind)) {
			return &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "kind",
				Message: fmt.Sprintf("unsupported kind %q (want login, logout, death or chat)", p.Kind),
			}
		}
		if p.Regex == "" {
			return &PatternError{Index: i, ID: p.ID, Field: "regex", Message: "regex is required"}
		}

		if prev, exists := seenIDs[p.ID]; exists {
			return &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id (previously defined at pattern[%d])", prev),
			}
		}
		seenIDs[p.ID] = i

		if len(p.Regex) > MaxPatternLength {
			return &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(p.Regex), MaxPatternLength),
			}
		}
	}
	return nil
}

func templateKind(k event.Kind) bool {
	switch k {
	case event.Login, event.Logout, event.Death, event.Chat:
		return true
	}
	return false
}
