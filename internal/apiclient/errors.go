package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// EnvelopeError is a rejected envelope: the server answered but its code is not 200.
type EnvelopeError struct {
	Envelope *Envelope
}

func (e *EnvelopeError) Error() string {
	if e.Envelope.Message != "" {
		return e.Envelope.Message
	}
	return fmt.Sprintf("request failed (code %d)", e.Envelope.Code)
}

// Code returns the envelope code
func (e *EnvelopeError) Code() int {
	return e.Envelope.Code
}

// TransportErrorKind classifies failures that never produced a usable envelope
type TransportErrorKind string

const (
	// KindStatus means the server responded with a non-2xx status
	KindStatus TransportErrorKind = "status"
	// KindNoResponse means the request was sent but no response arrived
	KindNoResponse TransportErrorKind = "no_response"
	// KindSetup means the request was never sent
	KindSetup TransportErrorKind = "setup"
	// KindInvalidPayload means a 2xx response body was not an envelope
	KindInvalidPayload TransportErrorKind = "invalid_payload"
)

// TransportError is the normalized {message} rejection. Kind and StatusCode are kept
// for logging and tests; callers only need Message.
type TransportError struct {
	Kind       TransportErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fixed messages for well-known statuses
var statusMessages = map[int]string{
	http.StatusUnauthorized:        "not logged in or session expired, please log in again",
	http.StatusForbidden:           "access denied",
	http.StatusNotFound:            "the requested resource does not exist",
	http.StatusInternalServerError: "internal server error",
}

const (
	msgNoResponse     = "no response from server, please check your network connection"
	msgTimeout        = "request timed out, please try again"
	msgSetup          = "request configuration error"
	msgInvalidPayload = "unexpected response from server"
)

// IsUnauthorized reports whether err is an authentication failure from either shape
func IsUnauthorized(err error) bool {
	var envErr *EnvelopeError
	if errors.As(err, &envErr) {
		return envErr.Code() == http.StatusUnauthorized
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Kind == KindStatus && tErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// Message returns the human-readable message to show for err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var envErr *EnvelopeError
	if errors.As(err, &envErr) {
		return envErr.Error()
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Message
	}
	return err.Error()
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	var envErr *EnvelopeError
	if errors.As(err, &envErr) {
		return "envelope_error"
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return string(tErr.Kind)
	}
	return "interceptor_error"
}
