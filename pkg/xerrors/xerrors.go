package xerrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindKeyNotFound
	KindSettingNotConfigured
	KindConfigurationMissing
	KindInvalidArgument
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindKeyNotFound:
		return "key not found"
	case KindSettingNotConfigured:
		return "setting not configured"
	case KindConfigurationMissing:
		return "configuration missing"
	case KindInvalidArgument:
		return "invalid argument"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "internal"
}

// Error is a business error. Errors with the same kind match with errors.Is.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func New(msg string) *Error {
	return &Error{Kind: KindInternal, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error of the same kind with an empty
// message, so that kind sentinels can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// Sentinel returns an error that matches any error of kind.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindInternal, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
