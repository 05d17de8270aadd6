package classifier

import (
	"errors"
	"fmt"
)

// Kind classifies what went wrong during an analysis call, so callers can
// branch on the failure class instead of matching error strings.
type Kind int

const (
	// KindValidation means the request was rejected locally before any
	// network traffic: empty data, oversized upload, or a non-image file.
	KindValidation Kind = iota
	// KindTransport means the request never produced an HTTP response.
	KindTransport
	// KindUpstream means the service answered with a non-OK status.
	KindUpstream
	// KindMalformedResponse means the service answered OK but the body
	// could not be decoded into a usable result.
	KindMalformedResponse
	// KindCancelled means the caller's context ended the call.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindUpstream:
		return "upstream"
	case KindMalformedResponse:
		return "malformed response"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by Client operations. StatusCode
// is set only for KindUpstream failures.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	err        error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, err: err}
}

// IsCancelled reports whether err is an analysis error caused by context
// cancellation.
func IsCancelled(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindCancelled
}
