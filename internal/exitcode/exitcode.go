package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/taskflowhq/taskflow/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure
	AuthError = 3

	// AccessDenied indicates an authorization (403-equivalent) failure
	AccessDenied = 4

	// NotFound indicates a missing resource
	NotFound = 5

	// ValidationError indicates the backend rejected the request payload
	ValidationError = 6

	// NetworkError indicates a network connectivity issue
	NetworkError = 7

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	// Coded errors map directly.
	var tfErr *errors.TaskFlowError
	if stderrors.As(err, &tfErr) {
		switch tfErr.Code {
		case errors.ErrCodeAuthInvalidCredentials,
			errors.ErrCodeAuthCompanyRejected,
			errors.ErrCodeAuthTokenExpired,
			errors.ErrCodeAuthTokenMalformed,
			errors.ErrCodeAuthNotLoggedIn,
			errors.ErrCodeAPIUnauthorized:
			return AuthError
		case errors.ErrCodeAccessDenied, errors.ErrCodeAPIForbidden:
			return AccessDenied
		case errors.ErrCodeAPINotFound:
			return NotFound
		case errors.ErrCodeAPIValidation:
			return ValidationError
		case errors.ErrCodeAPIUnreachable, errors.ErrCodeAPITimeout:
			return NetworkError
		}
		return GeneralError
	}

	// Fall back to message heuristics for uncoded errors.
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "authentication") {
		return AuthError
	}
	if strings.Contains(errMsg, "access denied") || strings.Contains(errMsg, "forbidden") {
		return AccessDenied
	}
	if strings.Contains(errMsg, "not found") {
		return NotFound
	}
	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "unknown command") ||
		strings.Contains(errMsg, "invalid flag") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case AccessDenied:
		return "Access denied"
	case NotFound:
		return "Resource not found"
	case ValidationError:
		return "Validation error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
