package varbed

import "fmt"

// MissingFieldError reports that a required sub-field (or column) was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// MalformedValueError reports a sub-field that was present but could not be
// parsed as its expected type.
type MalformedValueError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value %q for field %q: %v", e.Value, e.Field, e.Err)
}

func (e *MalformedValueError) Unwrap() error { return e.Err }

// LineError attributes a parse failure to a 1-based line of the input.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
