package relay

import (
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidRequest        Kind = "invalid_request"
	KindUpstreamUnreachable   Kind = "upstream_unreachable"
	KindUpstreamHTTPError     Kind = "upstream_http_error"
	KindUpstreamMalformedBody Kind = "upstream_malformed_body"
	KindNoPlayableVariant     Kind = "no_playable_variant"
	KindMediaFetchFailed      Kind = "media_fetch_failed"
)

// StatusCode is 400 for failures the caller can fix by sending a different
// reference and 500 for everything that went wrong on our side or upstream.
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidRequest, KindNoPlayableVariant:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message is what end users get to see. It never carries upstream detail.
func (k Kind) Message() string {
	switch k {
	case KindInvalidRequest:
		return "Missing code_or_id_or_url in request body"
	case KindNoPlayableVariant:
		return "Failed to retrieve video URL from API response"
	case KindUpstreamUnreachable, KindUpstreamHTTPError, KindUpstreamMalformedBody:
		return "Failed to look up media from the upstream provider"
	case KindMediaFetchFailed:
		return "Failed to download the video"
	default:
		return "Internal server error"
	}
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
