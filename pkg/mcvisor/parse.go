package mcvisor

// ParseLine classifies a single server log line with the built-in templates.
//
// Return values:
//   - (Event, nil): the envelope parsed; Kind is EventGeneric when no
//     login, logout, death or chat template matched
//   - (Event{}, *ParseError): the line has no envelope; errors.Is(err,
//     ErrUnrecognizedFormat) reports true
//
// Example:
//
//	ev, err := mcvisor.ParseLine("[12:34:56] [Server thread/INFO]: Steve joined the game")
//	if err != nil {
//	    log.Printf("not a log line: %v", err)
//	} else if ev.Kind == mcvisor.EventLogin {
//	    fmt.Printf("%s joined\n", ev.Player)
//	}
func ParseLine(line string) (Event, error) {
	return DefaultParser{}.Classify(line)
}
