package domain

import "fmt"

// ParseError reports malformed TODO.md content or an unparseable version,
// date or datetime token. Field names the metadata that was expected and
// Line carries the offending raw text when there is one.
type ParseError struct {
	Field string
	Line  string
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "parse error"
	}
	if e.Line != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
