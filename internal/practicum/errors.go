package practicum

import (
	"errors"
	"fmt"
)

// Error values double as user-facing notification text: the poll loop turns
// any classified failure into a candidate message, so wording here is what the
// user eventually reads in Telegram.
var (
	ErrUnauthorized = errors.New("review API rejected the provided credentials")
	ErrBadRequest   = errors.New("review API rejected the from_date parameter")
	ErrTimeout      = errors.New("timed out waiting for the review API")
	ErrConnection   = errors.New("could not reach the review API")
)

// RequestError covers any other failed request: unexpected HTTP status or an
// undecodable 2xx body.
type RequestError struct {
	Status int
	Cause  error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("review API request failed: %v", e.Cause)
	}
	return fmt.Sprintf("review API returned HTTP %d", e.Status)
}

func (e *RequestError) Unwrap() error { return e.Cause }

// ShapeError reports a response that decoded as JSON but does not have the
// documented shape.
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Field == "" {
		return "review API response has unexpected shape: " + e.Reason
	}
	return fmt.Sprintf("review API response has unexpected shape: %s %s", e.Field, e.Reason)
}

// UnknownStatusError reports a homework status outside the three documented
// values.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", e.Status)
}

// MissingFieldError reports a homework entry without a name or status.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("homework entry is missing the %s field", e.Field)
}
