package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPrecondition marks calls rejected before any process was spawned.
	ErrPrecondition = errors.New("precondition violation")
	// ErrProcessFailure marks a child process that exited with a non-zero code.
	ErrProcessFailure = errors.New("process failure")
	// ErrUnexpectedOutput marks tool output that could not be parsed.
	ErrUnexpectedOutput = errors.New("unexpected tool output")
	// ErrExternalTool marks failures to launch or talk to an external binary.
	ErrExternalTool = errors.New("external tool error")
)

// ProcessError reports a child process that ran to completion with a non-zero
// exit code. It matches ErrProcessFailure under errors.Is.
type ProcessError struct {
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	tool := e.Tool
	if tool == "" {
		tool = "process"
	}
	msg := fmt.Sprintf("%s exited with code %d", tool, e.ExitCode)
	if detail := strings.TrimSpace(e.Stderr); detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcessFailure
}

// ExitCode returns the exit code carried by err, or -1 when err does not wrap
// a ProcessError.
func ExitCode(err error) int {
	var procErr *ProcessError
	if errors.As(err, &procErr) {
		return procErr.ExitCode
	}
	return -1
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors of this package or of a caller's package.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
