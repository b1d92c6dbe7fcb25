package zinc

import (
	"errors"
	"fmt"
)

// ErrorKind categorises decode failures.
type ErrorKind uint8

const (
	// KindRejected: the eligibility guard found a construct outside the
	// fast-path subset.
	KindRejected ErrorKind = iota + 1
	// KindMalformed: a value, tag or line did not have its expected shape.
	KindMalformed
	// KindFallback: the full-grammar parser failed.
	KindFallback
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	case KindFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

var (
	// ErrRejected matches every KindRejected error via errors.Is.
	ErrRejected = errors.New("zinc: outside fast-path coverage")
	// ErrMalformed matches every KindMalformed error via errors.Is.
	ErrMalformed = errors.New("zinc: malformed input")
	// ErrNoFallback is returned by NoFallback.
	ErrNoFallback = errors.New("zinc: no full-grammar parser configured")
)

// Error is a decode failure with location. Line is 1-based, 0 when unknown.
type Error struct {
	Kind  ErrorKind
	Line  int
	Token string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	s := "zinc: " + e.Kind.String()
	if e.Line > 0 {
		s += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Token != "" {
		s += fmt.Sprintf(" (%q)", e.Token)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRejected:
		return e.Kind == KindRejected
	case ErrMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

func rejectf(line int, format string, args ...any) *Error {
	return &Error{Kind: KindRejected, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func malformed(token, format string, args ...any) *Error {
	return &Error{Kind: KindMalformed, Token: token, Msg: fmt.Sprintf(format, args...)}
}

// atLine stamps a line number on err if it is an *Error without one.
func atLine(err error, line int) error {
	var ze *Error
	if errors.As(err, &ze) && ze.Line == 0 {
		ze.Line = line
	}
	return err
}
