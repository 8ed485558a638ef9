package mcvisor

import (
	"regexp"
	"sync"
)

// matchAllPattern is used when ChatFilter.Pattern is empty.
const matchAllPattern = `^.*$`

// filterPatterns caches compiled filter patterns by source. Only valid
// patterns are stored.
var filterPatterns sync.Map // string -> *regexp.Regexp

// ChatFilter restricts a chat subscription. Every non-empty field must match
// for the handler to run.
type ChatFilter struct {
	// Pattern is a regular expression matched against Event.Text from its
	// first character. It is not anchored at the end unless the pattern
	// ends with "$". Empty matches every message.
	Pattern string

	// Level, when set, must equal Event.Level (e.g. "INFO").
	Level string

	// Thread, when set, must equal Event.Thread (e.g. "Server thread").
	Thread string
}

// compiledFilter is a ChatFilter ready for evaluation.
type compiledFilter struct {
	re     *regexp.Regexp
	level  string
	thread string
}

// compile anchors the pattern at the start of the text, mirroring how the
// body templates are applied.
func (f ChatFilter) compile() (*compiledFilter, error) {
	pattern := f.Pattern
	if pattern == "" {
		pattern = matchAllPattern
	}
	re, err := compileAnchored(pattern)
	if err != nil {
		return nil, &FilterError{Pattern: f.Pattern, Err: err}
	}
	return &compiledFilter{re: re, level: f.Level, thread: f.Thread}, nil
}

func compileAnchored(pattern string) (*regexp.Regexp, error) {
	src := `^(?:` + pattern + `)`
	if re, ok := filterPatterns.Load(src); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	actual, _ := filterPatterns.LoadOrStore(src, re)
	return actual.(*regexp.Regexp), nil
}

// Match reports whether ev satisfies the filter. Non-chat events never match.
// An invalid pattern never matches. The compiled pattern is cached, so
// repeated calls with the same filter do not recompile it.
func (f ChatFilter) Match(ev Event) bool {
	cf, err := f.compile()
	if err != nil {
		return false
	}
	return cf.allows(ev)
}

func (f *compiledFilter) allows(ev Event) bool {
	if ev.Kind != EventChat {
		return false
	}
	if f.level != "" && ev.Level != f.level {
		return false
	}
	if f.thread != "" && ev.Thread != f.thread {
		return false
	}
	return f.re.MatchString(ev.Text)
}
