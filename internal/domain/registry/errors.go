// Where: internal/domain/registry/errors.go
// What: Error taxonomy for registry administration.
// Why: Let every layer classify failures without string matching.
package registry

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Every kind is terminal for the invocation.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindTransport
	KindAuth
	KindLookup
	KindAPI
	KindVerification
	KindVerificationUncertain
	KindNotImplemented
	KindUsage
	KindAborted
)

var (
	ErrConfig                = errors.New("config error")
	ErrTransport             = errors.New("transport error")
	ErrAuth                  = errors.New("auth error")
	ErrLookup                = errors.New("lookup error")
	ErrAPI                   = errors.New("api error")
	ErrVerification          = errors.New("verification error")
	ErrVerificationUncertain = errors.New("verification uncertain")
	ErrNotImplemented        = errors.New("not implemented")
	ErrUsage                 = errors.New("usage error")
	ErrAborted               = errors.New("aborted")

	errGroupIDNull = errors.New("group id is null")
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindTransport:
		return "TransportError"
	case KindAuth:
		return "AuthError"
	case KindLookup:
		return "LookupError"
	case KindAPI:
		return "ApiError"
	case KindVerification:
		return "VerificationError"
	case KindVerificationUncertain:
		return "VerificationUncertain"
	case KindNotImplemented:
		return "NotImplemented"
	case KindUsage:
		return "UsageError"
	case KindAborted:
		return "Aborted"
	default:
		return "Error"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindTransport:
		return ErrTransport
	case KindAuth:
		return ErrAuth
	case KindLookup:
		return ErrLookup
	case KindAPI:
		return ErrAPI
	case KindVerification:
		return ErrVerification
	case KindVerificationUncertain:
		return ErrVerificationUncertain
	case KindNotImplemented:
		return ErrNotImplemented
	case KindUsage:
		return ErrUsage
	case KindAborted:
		return ErrAborted
	default:
		return nil
	}
}

// Error is a classified failure. Msg is the operator-facing line; Err is
// the optional underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// NewError builds a classified error.
func NewError(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel, so errors.Is(err, ErrVerification) works
// through any amount of wrapping.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}
