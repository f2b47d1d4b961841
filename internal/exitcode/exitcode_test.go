package exitcode

import (
	"fmt"
	"testing"

	"github.com/taskflowhq/taskflow/internal/errors"
)

func TestDetermineExitCodeCoded(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"invalid credentials", errors.NewInvalidCredentialsError(), AuthError},
		{"not logged in", errors.NewNotLoggedInError(), AuthError},
		{"forbidden", errors.New(errors.ErrCodeAPIForbidden, "forbidden"), AccessDenied},
		{"access denied", errors.NewAccessDeniedError("delete company"), AccessDenied},
		{"not found", errors.NewNotFoundError("user 9"), NotFound},
		{"validation", errors.NewValidationError("missing title"), ValidationError},
		{"unreachable", errors.NewAPIUnreachableError("http://localhost:8000", fmt.Errorf("refused")), NetworkError},
		{"session load", errors.New(errors.ErrCodeSessionLoadFailed, "corrupt state"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDetermineExitCodeHeuristics(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain unauthorized", fmt.Errorf("server said unauthorized"), AuthError},
		{"plain forbidden", fmt.Errorf("operation forbidden"), AccessDenied},
		{"plain not found", fmt.Errorf("task not found"), NotFound},
		{"plain timeout", fmt.Errorf("request timeout"), NetworkError},
		{"plain usage", fmt.Errorf(`required flag "email" not set`), UsageError},
		{"plain other", fmt.Errorf("something else"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	if GetExitCodeDescription(Success) != "Success" {
		t.Errorf("unexpected description for Success")
	}
	if GetExitCodeDescription(999) != "Unknown error" {
		t.Errorf("unexpected description for unknown code")
	}
}
