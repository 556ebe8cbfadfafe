package cli

import (
	"errors"

	"github.com/yaklabco/inkwell/pkg/config"
	"github.com/yaklabco/inkwell/pkg/fsutil"
)

// Exit codes for inkwell.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but could not produce its output.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps a command error onto a process exit code.
func ExitCode(err error) int {
	var validation *config.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validation), errors.Is(err, errConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIO):
		return ExitIOError
	default:
		return ExitFailure
	}
}
