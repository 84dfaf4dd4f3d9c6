package eutils

import "fmt"

// RemoteRequestError covers transport failures and non-2xx responses.
type RemoteRequestError struct {
	URL        string
	StatusCode int // Zero when no response was received
	Attempts   int
	Err        error
}

func (e *RemoteRequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d after %d attempt(s): %v", e.URL, e.StatusCode, e.Attempts, e.Err)
	}
	return fmt.Sprintf("request to %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *RemoteRequestError) Unwrap() error { return e.Err }
