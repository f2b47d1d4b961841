package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthCompanyRejected    ErrorCode = "AUTH-002"
	ErrCodeAuthTokenExpired       ErrorCode = "AUTH-003"
	ErrCodeAuthTokenMalformed     ErrorCode = "AUTH-004"
	ErrCodeAuthNotLoggedIn        ErrorCode = "AUTH-005"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionLoadFailed    ErrorCode = "SESSION-001"
	ErrCodeSessionPersistFailed ErrorCode = "SESSION-002"
	ErrCodeSessionInvalid       ErrorCode = "SESSION-003"

	// Access control errors (ACCESS-001 to ACCESS-099)
	ErrCodeAccessDenied       ErrorCode = "ACCESS-001"
	ErrCodeAccessUnknownRole  ErrorCode = "ACCESS-002"
	ErrCodeAccessUnknownRoute ErrorCode = "ACCESS-003"

	// API errors (API-001 to API-099)
	ErrCodeAPIUnreachable   ErrorCode = "API-001"
	ErrCodeAPIUnauthorized  ErrorCode = "API-002"
	ErrCodeAPIForbidden     ErrorCode = "API-003"
	ErrCodeAPINotFound      ErrorCode = "API-004"
	ErrCodeAPIValidation    ErrorCode = "API-005"
	ErrCodeAPIServer        ErrorCode = "API-006"
	ErrCodeAPIDecodeFailed  ErrorCode = "API-007"
	ErrCodeAPIEncodeFailed  ErrorCode = "API-008"
	ErrCodeAPITimeout       ErrorCode = "API-009"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigLoadFailed    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid       ErrorCode = "CONFIG-002"
	ErrCodeConfigWriteFailed   ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
)

// TaskFlowError represents an enhanced error with code, suggestions, and documentation
type TaskFlowError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *TaskFlowError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *TaskFlowError) Unwrap() error {
	return e.Cause
}

// New creates a new TaskFlowError
func New(code ErrorCode, message string) *TaskFlowError {
	return &TaskFlowError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new TaskFlowError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *TaskFlowError {
	return &TaskFlowError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *TaskFlowError) WithSuggestion(suggestion string) *TaskFlowError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *TaskFlowError) WithSuggestions(suggestions ...string) *TaskFlowError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
// WithCause attaches an underlying error
func (e *TaskFlowError) WithCause(cause error) *TaskFlowError {
	e.Cause = cause
	return e
}

func (e *TaskFlowError) WithDocs(url string) *TaskFlowError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewInvalidCredentialsError creates an invalid credentials error
func NewInvalidCredentialsError() *TaskFlowError {
	return New(ErrCodeAuthInvalidCredentials, "incorrect email or password").
		WithSuggestion("Check the identity and password and try again").
		WithSuggestion("Company accounts sign in with the company username, not an email")
}

// NewNotLoggedInError creates a not-logged-in error
func NewNotLoggedInError() *TaskFlowError {
	return New(ErrCodeAuthNotLoggedIn, "no active session").
		WithSuggestion("Run 'taskflow auth login' to authenticate")
}

// NewAccessDeniedError creates an access-denied error for a named action
func NewAccessDeniedError(action string) *TaskFlowError {
	return New(ErrCodeAccessDenied, fmt.Sprintf("access denied: %s", action)).
		WithSuggestion("Your role does not allow this operation").
		WithSuggestion("Ask an administrator if you believe this is wrong")
}

// NewAPIUnreachableError creates a network/connectivity error
func NewAPIUnreachableError(baseURL string, cause error) *TaskFlowError {
	return Wrap(ErrCodeAPIUnreachable, fmt.Sprintf("cannot reach TaskFlow API at %s", baseURL), cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify api.base_url in your configuration").
		WithSuggestion("Run 'taskflow status' to check backend health")
}

// NewNotFoundError creates a resource not found error
func NewNotFoundError(resource string) *TaskFlowError {
	return New(ErrCodeAPINotFound, fmt.Sprintf("%s not found", resource)).
		WithSuggestion("Check the identifier and try again")
}

// NewValidationError creates a request validation error
func NewValidationError(detail string) *TaskFlowError {
	return New(ErrCodeAPIValidation, fmt.Sprintf("invalid request: %s", detail)).
		WithSuggestion("Fix the highlighted fields and resubmit")
}

// NewConfigLoadError creates a config load error
func NewConfigLoadError(path string, cause error) *TaskFlowError {
	return Wrap(ErrCodeConfigLoadFailed, fmt.Sprintf("failed to load configuration: %s", path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion("Run 'taskflow config init' to write a fresh configuration")
}
