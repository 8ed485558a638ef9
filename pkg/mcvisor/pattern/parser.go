package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mcvisor/mcvisor-go/internal/parser"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/event"
)

// NewParser compiles the patterns of pf into a parser that extends the
// built-in templates. Returns a *PatternError naming the first pattern whose
// regex does not compile or lacks the capture groups its kind needs.
//
// Example:
//
//	pf, err := pattern.Load("templates.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := pattern.NewParser(pf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := mcvisor.NewServer(jar, mcvisor.WithParser(p))
func NewParser(pf *PatternFile) (*mcvisor.TemplateParser, error) {
	if pf == nil {
		return nil, errors.New("pattern file is nil")
	}

	templates := make([]mcvisor.Template, 0, len(pf.Patterns))
	for i, p := range pf.Patterns {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
				Cause:   err,
			}
		}
		if err := parser.ValidateTemplate(event.Kind(p.Kind), re); err != nil {
			return nil, &PatternError{Index: i, ID: p.ID, Field: "regex", Message: err.Error(), Cause: err}
		}
		templates = append(templates, mcvisor.Template{ID: p.ID, Kind: event.Kind(p.Kind), Regex: p.Regex})
	}

	return mcvisor.NewTemplateParser(templates...)
}

// NewParserFromFile loads a pattern file and compiles it in one step.
func NewParserFromFile(path string) (*mcvisor.TemplateParser, error) {
	pf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewParser(pf)
}
