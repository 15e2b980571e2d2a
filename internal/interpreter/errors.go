package interpreter

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is matched by errors.Is for every TimeoutError.
var ErrTimeout = errors.New("interpreter timed out")

// TimeoutError indicates the interpreter ran past its wall-clock limit. The
// caller may retry with different code.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("execution timeout (%s)", e.Limit)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// OutputError indicates the interpreter wrote something other than a JSON
// result.
type OutputError struct {
	Output string
	Err    error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to parse interpreter output: %v\noutput: %s", e.Err, e.Output)
}

func (e *OutputError) Unwrap() error { return e.Err }

// ProcessError indicates the interpreter could not be started or exited
// abnormally without producing a result.
type ProcessError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("interpreter %s: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("interpreter %s: %v", e.Command, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
