package provider

import "fmt"

// Raised when the provider could not be reached at all (DNS, TLS, timeouts).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Raised for any non-200 reply. Body is kept for operators and must not be
// echoed back to end users.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider responded with status %d", e.StatusCode)
}

// Raised when a 200 reply can't be read as a media info document.
type MalformedBodyError struct {
	Err  error
	Body string
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed provider response: %v", e.Err)
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}
