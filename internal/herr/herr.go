// Package herr defines the error taxonomy the stream engine reports upward:
// resource failures, input-validity failures, and internal invariant
// violations, each tagged with a stable code so callers can branch on
// errors.Is without string matching.
package herr

import "fmt"

// ErrorCode identifies the class of failure reported by the engine.
type ErrorCode int

const (
	// NoMem means a memory allocation failed; the caller must tear down
	// the owning stream.
	NoMem ErrorCode = iota + 1
	// InvalidArgument means a caller passed malformed input (e.g. a
	// truncated varint with fin set).
	InvalidArgument
	// WouldBlock means an operation could not complete without blocking;
	// callers normally convert this into a flag rather than propagate it.
	WouldBlock
	// CallbackFailure means an application-supplied callback returned an
	// error; the transport must not invoke the stream for serialization
	// again.
	CallbackFailure
	// HTTPInternalError indicates a bug in the caller, such as delivering
	// a framing event to a stream whose receive state is NONE.
	HTTPInternalError
	// HTTPUnexpectedFrame means a framing event arrived in a state that
	// does not accept it, and a different event was expected.
	HTTPUnexpectedFrame
	// HTTPGeneralProtocolError means a framing event arrived in a state
	// that forbids it for a reason other than ordering (e.g. a header
	// block or body that failed the caller's validation, or any event
	// after the message has already ended).
	HTTPGeneralProtocolError
)

func (c ErrorCode) String() string {
	switch c {
	case NoMem:
		return "NOMEM"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case WouldBlock:
		return "WOULDBLOCK"
	case CallbackFailure:
		return "CALLBACK_FAILURE"
	case HTTPInternalError:
		return "HTTP_INTERNAL_ERROR"
	case HTTPUnexpectedFrame:
		return "HTTP_UNEXPECTED_FRAME"
	case HTTPGeneralProtocolError:
		return "HTTP_GENERAL_PROTOCOL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error is the concrete error type the engine returns. Code is always set;
// Err, when non-nil, is the underlying cause and is reachable via Unwrap.
type Error struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Code, so
// errors.Is(err, herr.New(herr.WouldBlock, "")) works regardless of Msg/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New constructs an *Error with no wrapped cause.
func New(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap constructs an *Error carrying cause as its Unwrap target.
func Wrap(code ErrorCode, msg string, cause error) *Error {
	return &Error{Code: code, Msg: msg, Err: cause}
}

// Sentinels usable with errors.Is(err, herr.ErrWouldBlock) and friends. Each
// carries an empty Msg; Is() compares only on Code.
var (
	ErrNoMem                   = New(NoMem, "")
	ErrInvalidArgument         = New(InvalidArgument, "")
	ErrWouldBlock              = New(WouldBlock, "")
	ErrCallbackFailure         = New(CallbackFailure, "")
	ErrHTTPInternalError       = New(HTTPInternalError, "")
	ErrHTTPUnexpectedFrame     = New(HTTPUnexpectedFrame, "")
	ErrHTTPGeneralProtocolErr  = New(HTTPGeneralProtocolError, "")
)

// CodeOf extracts the ErrorCode from err if it is (or wraps) an *Error,
// returning ok=false otherwise.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	for err != nil {
		if he, ok := err.(*Error); ok {
			e = he
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return 0, false
	}
	return e.Code, true
}
