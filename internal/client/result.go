package client

import (
	"errors"
	"fmt"
)

// FallbackErrorMessage is shown when a failed response carries no message of its own.
const FallbackErrorMessage = "Something went wrong"

// ErrorInfo is the decoded body of a non-2xx API response.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// TransportError reports a request that failed or returned a non-success status.
// StatusCode is zero when no response was received. Info is nil when the body
// could not be decoded.
type TransportError struct {
	StatusCode int
	Info       *ErrorInfo
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Info != nil && e.Info.Message != "":
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Info.Message)
	case e.Err != nil:
		return fmt.Sprintf("api error (status %d): %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DisplayMessage returns the server supplied message, or FallbackErrorMessage.
func (e *TransportError) DisplayMessage() string {
	if e != nil && e.Info != nil && e.Info.Message != "" {
		return e.Info.Message
	}
	return FallbackErrorMessage
}

// DisplayMessage returns the user facing text for any error returned by the client.
func DisplayMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.DisplayMessage()
	}
	return FallbackErrorMessage
}

func asTransportError(err error) *TransportError {
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	return &TransportError{Err: err}
}

// Status discriminates the variants of Result.
type Status int

const (
	// StatusPending means no response has arrived yet.
	StatusPending Status = iota
	// StatusOK means the request succeeded and Data is set.
	StatusOK
	// StatusError means the request failed and Err is set.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of a fetch: exactly one of Pending, Ok or Err.
// The zero value is Pending.
type Result[D any] struct {
	status Status
	data   D
	err    *TransportError
}

// Pending returns a result for a request that has not completed.
func Pending[D any]() Result[D] {
	return Result[D]{status: StatusPending}
}

// Ok returns a successful result.
func Ok[D any](data D) Result[D] {
	return Result[D]{status: StatusOK, data: data}
}

// Failed returns an error result. A nil err is replaced by an empty TransportError
// so that Err never returns nil for StatusError.
func Failed[D any](err *TransportError) Result[D] {
	if err == nil {
		err = &TransportError{}
	}
	return Result[D]{status: StatusError, err: err}
}

// Status reports which variant r holds.
func (r Result[D]) Status() Status { return r.status }

// Data returns the payload and whether r is Ok.
func (r Result[D]) Data() (D, bool) {
	return r.data, r.status == StatusOK
}

// Err returns the transport error when r is an error result, otherwise nil.
func (r Result[D]) Err() *TransportError {
	if r.status != StatusError {
		return nil
	}
	return r.err
}
