package dbsnp

import "fmt"

// MalformedResponseError reports a payload that could not be decoded as a
// stream of RefSNP objects.
type MalformedResponseError struct {
	Offset int64
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed dbSNP response near byte %d: %v", e.Offset, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
