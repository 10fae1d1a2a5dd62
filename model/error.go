package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// QueryError describes one failed query against the cluster. It keeps
// everything a caller needs to classify the failure: the HTTP status (0 when
// the exchange never completed), the raw response body, and the underlying
// transport or decode error, if any.
type QueryError struct {
	Path   string // request path, for context in messages and logs
	Status int    // HTTP status code, 0 if no response was received
	Body   []byte // raw response body, nil if no response was received
	Err    error  // transport or decode error, nil for HTTP-level failures
}

func (e *QueryError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("query %s: %s", e.Path, describeError(e.Err))
	case len(e.Body) == 0:
		return fmt.Sprintf("query %s: empty response (status %d)", e.Path, e.Status)
	default:
		return fmt.Sprintf("query %s: status %d", e.Path, e.Status)
	}
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// describeError maps transport errors to operator-friendly phrases.
func describeError(err error) string {
	var opErr *net.OpError
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.As(err, &urlErr) && urlErr.Timeout():
		return "request timed out"
	case errors.As(err, &opErr):
		return fmt.Sprintf("network error: %v", opErr.Err)
	default:
		return err.Error()
	}
}

// ServerError is the JSON error body CouchDB returns for failed requests,
// e.g. {"error":"unauthorized","reason":"Name or password is incorrect."}.
type ServerError struct {
	Err    string `json:"error"`
	Reason string `json:"reason"`
}

// ParseServerError attempts to decode body as a CouchDB error document. The
// second return value reports whether the body carried an error tag.
func ParseServerError(body []byte) (ServerError, bool) {
	var se ServerError
	if err := json.Unmarshal(body, &se); err != nil {
		return ServerError{}, false
	}
	return se, se.Err != ""
}
