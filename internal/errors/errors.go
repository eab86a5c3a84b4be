// Package errors provides typed error handling for the optbench harness.
//
// Configuration errors (unknown metric, unknown method keyword, a metric the
// chosen solver kind cannot produce) are ordinary recoverable values: callers
// inspect them with IsConfig and decide what to do. Nothing in this package
// terminates the process.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error so callers can branch without string matching.
type Kind int

const (
	// KindUnknown is the zero value for errors with no assigned class.
	KindUnknown Kind = iota
	// KindConfig marks an invalid benchmark configuration, detected before
	// any solver loop starts. Recoverable by fixing the configuration.
	KindConfig
	// KindRun marks a failure inside a running solver loop.
	KindRun
)

// Error is an error with benchmark context attached.
type Error struct {
	// Err is the underlying error, if any.
	Err error
	// Kind classifies the error.
	Kind Kind
	// Message is a human-readable description.
	Message string
	// Operation is what was being done when the error occurred.
	Operation string
	// Component is the package or subsystem that produced the error.
	Component string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Component != "" {
		b.WriteString(e.Component)
	}
	if e.Operation != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Operation)
	}
	if e.Message != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithOperation adds an operation to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Operation = op
	return e
}

// WithComponent adds a component to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// New creates a new error with a message.
func New(msg string) *Error {
	return &Error{Message: msg}
}

// Errorf creates a new error with a formatted message.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Config creates a new configuration error.
func Config(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

// Configf creates a new configuration error with a formatted message.
func Configf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// Runf creates a new run error with a formatted message.
func Runf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindRun, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context, preserving its kind if it
// already is an *Error. If err is nil, Wrap returns nil.
func Wrap(err error, msg string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{Err: err, Kind: e.Kind, Message: msg}
	}
	return &Error{Err: err, Message: msg}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsConfig reports whether err or any error in its chain is a
// configuration error.
func IsConfig(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConfig
}

// IsRun reports whether err or any error in its chain is a run error.
func IsRun(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindRun
}
