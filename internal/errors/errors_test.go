package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeAuthInvalidCredentials, "test error message")

	if err.Code != ErrCodeAuthInvalidCredentials {
		t.Errorf("expected code %s, got %s", ErrCodeAuthInvalidCredentials, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Code != ErrCodeFileReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeFileReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *TaskFlowError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeAccessDenied, "access denied: delete user"),
			wantCode: "ACCESS-001",
			wantMsg:  "access denied: delete user",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "IO-002",
			wantMsg:  "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain message '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrCodeAPIUnreachable, "backend unreachable").
		WithSuggestion("check the network").
		WithSuggestion("verify the base URL")

	if len(err.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(err.Suggestions))
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "Suggestions:") {
		t.Errorf("error string should contain suggestions section")
	}
	if !strings.Contains(errStr, "check the network") {
		t.Errorf("error string should contain first suggestion")
	}
}

func TestWithDocs(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad config").
		WithDocs("https://github.com/taskflowhq/taskflow#configuration")

	errStr := err.Error()
	if !strings.Contains(errStr, "Documentation: https://github.com/taskflowhq/taskflow#configuration") {
		t.Errorf("error string should contain documentation link, got: %s", errStr)
	}
}

func TestCommonConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *TaskFlowError
		code ErrorCode
	}{
		{"invalid credentials", NewInvalidCredentialsError(), ErrCodeAuthInvalidCredentials},
		{"not logged in", NewNotLoggedInError(), ErrCodeAuthNotLoggedIn},
		{"access denied", NewAccessDeniedError("manage users"), ErrCodeAccessDenied},
		{"not found", NewNotFoundError("task 42"), ErrCodeAPINotFound},
		{"validation", NewValidationError("title is required"), ErrCodeAPIValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if len(tt.err.Suggestions) == 0 {
				t.Errorf("common constructors should include suggestions")
			}
		})
	}
}
