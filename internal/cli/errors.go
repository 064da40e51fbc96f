package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code from a command without calling
// os.Exit inside RunE, keeping commands testable.
//
// Commands print their own diagnostics before returning an ExitError; the
// top-level [Execute] only converts the code, it does not re-print the
// message.
type ExitError struct {
	// Code is the exit code to return to the shell.
	Code int
}

// Error implements the error interface using the standard os/exec format.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError extracts the exit code when the error chain contains an
// *ExitError.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
