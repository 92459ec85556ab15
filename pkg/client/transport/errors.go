package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies how a request failed.
type Kind string

const (
	KindTimeout Kind = "timeout"
	KindHTTP    Kind = "http"
	KindNetwork Kind = "network"
	KindDecode  Kind = "decode"
)

// Error is the single error type surfaced by the transport. Status mirrors an
// HTTP status: the response code for KindHTTP, 408 for timeouts and 500 otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("aims api %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a transport error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func timeoutError(err error) *Error {
	return &Error{Kind: KindTimeout, Status: http.StatusRequestTimeout, Message: "request timeout", Err: err}
}

func httpError(status int, statusText string) *Error {
	return &Error{Kind: KindHTTP, Status: status, Message: "API error: " + statusText}
}

func networkError(err error) *Error {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindNetwork, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

func decodeError(msg string, err error) *Error {
	return &Error{Kind: KindDecode, Status: http.StatusInternalServerError, Message: msg + ": " + err.Error(), Err: err}
}
