package mcvisor

import (
	"fmt"
	"regexp"

	"github.com/mcvisor/mcvisor-go/internal/parser"
)

// Parser classifies one server log line into exactly one Event.
//
// Implementations return an error wrapping ErrUnrecognizedFormat when the
// line has no log envelope. Lines with an envelope that no specialized
// template recognizes yield an EventGeneric event, not an error.
type Parser interface {
	Classify(line string) (Event, error)
}

// ParserFunc is an adapter to allow ordinary functions to be used as Parsers.
type ParserFunc func(line string) (Event, error)

// Classify implements the Parser interface.
func (f ParserFunc) Classify(line string) (Event, error) {
	return f(line)
}

// Template is an extra body pattern for one of the specialized kinds
// (login, logout, death, chat). Regex is matched against the envelope
// message; capture groups map positionally to the kind's fields:
//
//	login, logout: player
//	death:         player, killer (optional), weapon (optional)
//	chat:          player, text
//
// The regex is not anchored implicitly.
type Template struct {
	ID    string
	Kind  EventKind
	Regex string
}

// TemplateParser is the built-in cascade extended with extra templates.
// Extra templates are tried after the built-in templates of their kind.
//
// TemplateParser is safe for concurrent use by multiple goroutines.
type TemplateParser struct {
	classifier *parser.Classifier
}

// NewTemplateParser compiles templates into a TemplateParser.
// Returns an error naming the first template whose regex is invalid or
// cannot populate its kind.
func NewTemplateParser(templates ...Template) (*TemplateParser, error) {
	compiled := make([]parser.Template, 0, len(templates))
	for i, t := range templates {
		name := t.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		re, err := regexp.Compile(t.Regex)
		if err != nil {
			return nil, fmt.Errorf("template %s: invalid regular expression: %w", name, err)
		}
		if err := parser.ValidateTemplate(t.Kind, re); err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		compiled = append(compiled, parser.Template{Kind: t.Kind, Regex: re})
	}

	c, err := parser.New(compiled...)
	if err != nil {
		return nil, err
	}
	return &TemplateParser{classifier: c}, nil
}

// Classify implements the Parser interface.
func (p *TemplateParser) Classify(line string) (Event, error) {
	return classifyWith(p.classifier, line)
}

// Ensure implementations satisfy Parser.
var (
	_ Parser = DefaultParser{}
	_ Parser = (*TemplateParser)(nil)
	_ Parser = ParserFunc(nil)
)
