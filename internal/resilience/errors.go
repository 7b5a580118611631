// Package resilience classifies failures from upstream HTTP services so
// callers can log whether an absorbed or surfaced failure is likely to clear
// on its own. Nothing here retries.
package resilience

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Class describes how an upstream failure should be read by an operator.
type Class string

const (
	// ClassNone is reported for a nil error.
	ClassNone Class = ""
	// ClassTransient covers timeouts, dropped connections, 408/429 and 5xx.
	ClassTransient Class = "transient"
	// ClassPermanent covers everything else: bad credentials, 4xx, bad payloads.
	ClassPermanent Class = "permanent"
)

// StatusError is implemented by upstream client errors that carry the HTTP
// status code of the failed call.
type StatusError interface {
	error
	HTTPStatus() int
}

// TransientError wraps an error that is expected to clear without a change
// on our side.
type TransientError struct {
	Err        error
	StatusCode int
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError marks err as transient with an optional HTTP status code.
func NewTransientError(err error, statusCode int) *TransientError {
	return &TransientError{Err: err, StatusCode: statusCode}
}

var transientPatterns = []string{
	"connection reset by peer",
	"broken pipe",
	"temporary failure in name resolution",
	"no such host",
	"tls handshake timeout",
	"i/o timeout",
	"server closed idle connection",
	"client.timeout exceeded",
}

// IsTransient reports whether err, or anything it wraps, looks like a
// passing condition: an explicit TransientError, a StatusError with a
// transient status, a network timeout, a reset or refused connection, or a
// deadline.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var se StatusError
	if errors.As(err, &se) {
		return IsTransientHTTPStatus(se.HTTPStatus())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// IsTransientHTTPStatus reports whether an HTTP status code indicates a
// server-side condition rather than a problem with the request.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// Classify maps err to a Class for structured logging.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case IsTransient(err):
		return ClassTransient
	default:
		return ClassPermanent
	}
}
