// Package envelope describes the response shape shared by every /api endpoint.
//
// A successful response carries data and an optional message; a failed one carries
// only a message (and a machine readable code). Whether a body is a success or an
// error is decided by the HTTP status, not by inspecting the body.
package envelope

// Success wraps the payload of a 2xx response.
type Success[D any] struct {
	Data    D      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// OK builds a success envelope without a message.
func OK[D any](data D) Success[D] {
	return Success[D]{Data: data}
}

// WithMessage builds a success envelope carrying a human readable message.
func WithMessage[D any](data D, message string) Success[D] {
	return Success[D]{Data: data, Message: message}
}
