package domain

import "errors"

var (
	ErrProbeAbsent        = errors.New("probe absent")
	ErrReportUnavailable  = errors.New("report unavailable")
	ErrUnknownBackend     = errors.New("unknown backend")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrNoProgram          = errors.New("no program for format")
	ErrEmptyCircuit       = errors.New("request carries no circuit")
)

// ExecutionError is returned when an external command fails to spawn or exits
// non-zero. Its message is the collected output when there is any.
type ExecutionError struct {
	Command string
	Output  string
	Err     error
}

func (e *ExecutionError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "command failed: " + e.Command
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
