package hyperliquid

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures produced by this package. Transport kinds
// mirror the exchange API surface; the remainder cover input validation and
// signing.
type ErrorKind string

const (
	ErrUnknownSymbol ErrorKind = "UNKNOWN_SYMBOL"
	ErrNoPosition    ErrorKind = "NO_POSITION"
	ErrBadNumber     ErrorKind = "BAD_NUMBER"
	ErrBadAddress    ErrorKind = "BAD_ADDRESS"
	ErrBadPosition   ErrorKind = "BAD_POSITION"
	ErrEncode        ErrorKind = "ENCODE_ERROR"
	ErrBadBuilderFee ErrorKind = "BAD_BUILDER_FEE"
	ErrSign          ErrorKind = "SIGN_ERROR"
	ErrHTTP4xx       ErrorKind = "HTTP_4XX"
	ErrHTTP5xx       ErrorKind = "HTTP_5XX"
	ErrIO            ErrorKind = "IO"
)

// Error is the typed error returned by every operation in this package.
// Status is set only for the HTTP kinds.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hyperliquid: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("hyperliquid: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so callers can match with errors.Is against a
// bare &Error{Kind: ...} sentinel.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf extracts the error kind, or "" when err is not from this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func httpError(status int, body string) *Error {
	kind := ErrHTTP5xx
	if status >= 400 && status < 500 {
		kind = ErrHTTP4xx
	}
	return &Error{Kind: kind, Status: status, Message: fmt.Sprintf("http status %d: %s", status, body)}
}

// retryable reports whether a failed request may be reissued. Client errors
// are final; server errors and transport failures are not.
func retryable(err error) bool {
	switch KindOf(err) {
	case ErrHTTP5xx, ErrIO:
		return true
	}
	return false
}
