package robot

import (
	"errors"
	"fmt"

	"github.com/roach88/nono/internal/event"
)

// ErrorCode categorizes robot errors.
type ErrorCode string

const (
	// ErrCodeMissingTarget indicates a call resolved to no sink.
	ErrCodeMissingTarget ErrorCode = "MISSING_TARGET"

	// ErrCodeInvalidGesture indicates a gesture with an unsupported shape.
	ErrCodeInvalidGesture ErrorCode = "INVALID_GESTURE"

	// ErrCodeInvalidDirection indicates an unknown pan direction.
	ErrCodeInvalidDirection ErrorCode = "INVALID_DIRECTION"

	// ErrCodeDispatchFailed indicates the dispatcher returned an error.
	ErrCodeDispatchFailed ErrorCode = "DISPATCH_FAILED"
)

// RobotError is the error recorded by a Robot.
//
// Errors match the sentinels below by code:
//
//	errors.Is(r.Err(), robot.ErrMissingTarget)
type RobotError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Kind is the event being emitted when the error occurred, if any.
	Kind event.Kind

	// Target is the label of the resolved sink, if any.
	Target string

	// Err is the underlying cause (dispatch failures).
	Err error
}

// Sentinels for errors.Is.
var (
	ErrMissingTarget    = &RobotError{Code: ErrCodeMissingTarget, Message: "no target sink: supply one with On, Select or WithTarget"}
	ErrInvalidGesture   = &RobotError{Code: ErrCodeInvalidGesture, Message: "invalid gesture"}
	ErrInvalidDirection = &RobotError{Code: ErrCodeInvalidDirection, Message: "invalid pan direction"}
	ErrDispatchFailed   = &RobotError{Code: ErrCodeDispatchFailed, Message: "dispatch failed"}
)

// Error implements the error interface.
func (e *RobotError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Kind != "" {
		msg += fmt.Sprintf(" (kind=%s", e.Kind)
		if e.Target != "" {
			msg += fmt.Sprintf(", target=%s", e.Target)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RobotError) Unwrap() error {
	return e.Err
}

// Is matches any RobotError with the same code.
func (e *RobotError) Is(target error) bool {
	var re *RobotError
	if errors.As(target, &re) {
		return re.Code == e.Code
	}
	return false
}

// IsMissingTarget returns true if err is a missing target error.
// Uses errors.As to handle wrapped errors.
func IsMissingTarget(err error) bool {
	return hasCode(err, ErrCodeMissingTarget)
}

// IsInvalidGesture returns true if err is an invalid gesture or direction error.
func IsInvalidGesture(err error) bool {
	return hasCode(err, ErrCodeInvalidGesture) || hasCode(err, ErrCodeInvalidDirection)
}

// CodeOf returns the code of the RobotError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var re *RobotError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func newMissingTargetError(kind event.Kind) *RobotError {
	return &RobotError{
		Code:    ErrCodeMissingTarget,
		Message: ErrMissingTarget.Message,
		Kind:    kind,
	}
}

func newGestureError(format string, args ...any) *RobotError {
	return &RobotError{
		Code:    ErrCodeInvalidGesture,
		Message: fmt.Sprintf(format, args...),
	}
}

func newDirectionError(dir Direction) *RobotError {
	return &RobotError{
		Code:    ErrCodeInvalidDirection,
		Message: fmt.Sprintf("unknown direction %q (want top, bottom, left or right)", string(dir)),
	}
}

func newDispatchError(ev *event.Event, err error) *RobotError {
	return &RobotError{
		Code:    ErrCodeDispatchFailed,
		Message: ErrDispatchFailed.Message,
		Kind:    ev.Kind,
		Target:  event.LabelOf(ev.Target),
		Err:     err,
	}
}
