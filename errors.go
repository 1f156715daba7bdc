package paf

import "fmt"

// ParseError describes a structurally malformed PAF line: too few
// mandatory columns, a bad strand character, a malformed optional field,
// or an unrecognized tag name. Line numbers are 1-based; Line is zero
// when the error was produced outside the Reader (e.g. by ParseTag).
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("paf: line %d: %s", e.Line, e.Msg)
	}
	return "paf: " + e.Msg
}

// NumericError indicates that a mandatory numeric column failed to parse
// as its expected integer width. It is a distinct type from ParseError so
// callers can tell malformed numbers from structural malformation.
type NumericError struct {
	Line  int
	Field string
	Err   error
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("paf: line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *NumericError) Unwrap() error { return e.Err }
