package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for API operations
var (
	// ErrNetwork indicates the request could not be sent or no response arrived
	ErrNetwork = errors.New("tvmaze is unreachable")

	// ErrParse indicates the body was not valid JSON or lacked required fields
	ErrParse = errors.New("malformed response")
)

// HTTPError is returned when TVMaze answers with a non-2xx status
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// ErrorKind classifies an error for logging. The UI does not distinguish kinds.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindHTTP
	KindParse
)

// String returns a human-readable representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// KindOf classifies err into the error taxonomy
func KindOf(err error) ErrorKind {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrNetwork),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	default:
		return KindUnknown
	}
}
