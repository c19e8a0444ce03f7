package results

import (
	"errors"
	"fmt"
	"strings"
)

// Error carries a Reason alongside a message and an optional wrapped error.
// Callers build one by chaining:
//
//	if err := fetch(build); err != nil {
//	    return results.ForReason(results.ReasonTransport).WithError(err).Errorf("could not fetch %s", build)
//	}
type Error struct {
	reason  Reason
	message string
	wrapped error
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// Is allows errors.Is(err, &Error{}) to detect any reason-tagged error.
func (e *Error) Is(target error) bool {
	_, is := target.(*Error)
	return is
}

// Reason returns the reason of this error only, not of wrapped ones.
func (e *Error) Reason() Reason {
	return e.reason
}

// Reasons provides the chains of error reasons, one chain per aggregated
// error, each chain joined by colons.
func Reasons(errs ...error) (ret []string) {
	for _, err := range errs {
		switch err := err.(type) {
		case *Error:
			children := Reasons(err.Unwrap())
			if len(children) == 0 {
				ret = append(ret, string(err.reason))
				break
			}
			for _, r := range children {
				ret = append(ret, fmt.Sprintf("%s:%s", err.reason, r))
			}
		case interface{ Errors() []error }:
			ret = append(ret, Reasons(err.Errors()...)...)
		case interface{ Unwrap() error }:
			ret = append(ret, Reasons(err.Unwrap())...)
		}
	}
	return
}

// FullReason joins all reason chains of err. Errors without any reason
// report ReasonUnknown.
func FullReason(err error) string {
	reasons := Reasons(err)
	if len(reasons) == 0 {
		return string(ReasonUnknown)
	}
	return strings.Join(reasons, ",")
}

// HasReason reports whether any Error in err's chain carries reason.
func HasReason(err error, reason Reason) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.reason == reason {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

type BuilderWithReason struct {
	Error
}

// ForReason starts an Error. An empty reason becomes ReasonUnknown.
func ForReason(reason Reason) *BuilderWithReason {
	if reason == "" {
		reason = ReasonUnknown
	}
	return &BuilderWithReason{Error: Error{reason: reason}}
}

type BuilderWithReasonAndError struct {
	Error
}

// WithError adds the wrapped child; finish with Errorf.
func (e *BuilderWithReason) WithError(err error) *BuilderWithReasonAndError {
	b := &BuilderWithReasonAndError{Error: e.Error}
	b.wrapped = err
	return b
}

// Errorf sets the message on a builder without a child.
func (e *BuilderWithReason) Errorf(format string, args ...interface{}) error {
	e.message = fmt.Sprintf(format, args...)
	return &e.Error
}

// Errorf sets the message and returns the finished error.
func (e *BuilderWithReasonAndError) Errorf(format string, args ...interface{}) error {
	e.message = fmt.Sprintf(format, args...)
	return &e.Error
}

// ForError wraps err keeping its message. A nil err stays nil.
func (e *BuilderWithReason) ForError(err error) error {
	if err == nil {
		return nil
	}
	e.wrapped = err
	e.message = err.Error()
	return &e.Error
}

// DefaultReason tags err with ReasonUnknown unless it already carries a reason.
func DefaultReason(err error) error {
	if errors.Is(err, &Error{}) {
		return err
	}
	return ForReason(ReasonUnknown).ForError(err)
}
