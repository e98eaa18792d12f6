package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel values reported when the server could not be reached at all.
// The status code is deliberately outside the range a marketplace API
// would return for a handled request so callers can tell "no response"
// from "error response".
const (
	RequestFailedStatus  = 503
	RequestFailedMessage = "Request failed"
)

// APIError is implemented by every error the client layer produces for a
// request that was attempted. Caller-input mistakes (bad argument
// combinations) are plain errors raised before any request is made.
type APIError interface {
	error
	Message() string
	StatusCode() int
}

// HTTPError covers the transport failure category: the server was
// unreachable, or it responded with a non-2xx status. For an unreachable
// server StatusCode is RequestFailedStatus and Msg is RequestFailedMessage
// regardless of the underlying transport error.
type HTTPError struct {
	Msg    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
}

func (e *HTTPError) Message() string { return e.Msg }

func (e *HTTPError) StatusCode() int { return e.Status }

// InvalidResponseError covers the decode failure category: a successful
// status whose body could not be parsed as JSON. Msg carries the parser's
// message and Status the (successful) response status.
type InvalidResponseError struct {
	Msg    string
	Status int
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
}

func (e *InvalidResponseError) Message() string { return e.Msg }

func (e *InvalidResponseError) StatusCode() int { return e.Status }

// IsNotFound reports whether err is an HTTPError carrying a 404. Wrapper
// methods that document "absent result on 404" use this to decide.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == 404
}
