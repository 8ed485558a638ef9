package mcvisor

import (
	"errors"

	"github.com/mcvisor/mcvisor-go/internal/parser"
)

// DefaultParser classifies lines with the built-in vanilla templates.
type DefaultParser struct{}

// Classify implements the Parser interface.
func (DefaultParser) Classify(line string) (Event, error) {
	return classifyWith(parser.Default(), line)
}

func classifyWith(c *parser.Classifier, line string) (Event, error) {
	ev, err := c.Classify(line)
	if err != nil {
		if errors.Is(err, parser.ErrUnrecognizedFormat) {
			return Event{}, &ParseError{Line: line, Err: err}
		}
		return Event{}, err
	}
	return ev, nil
}
