package ux

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/taskflowhq/taskflow/internal/errors"
)

func TestRenderError_Plain(t *testing.T) {
	got := RenderError(stderrors.New("boom"))
	if got != "Error: boom" {
		t.Errorf("RenderError() = %q", got)
	}
}

func TestRenderError_Nil(t *testing.T) {
	if got := RenderError(nil); got != "" {
		t.Errorf("RenderError(nil) = %q, want empty", got)
	}
}

func TestRenderError_WithSuggestions(t *testing.T) {
	err := errors.New(errors.ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'taskflow auth login' first")

	got := RenderError(err)
	if !strings.Contains(got, "not logged in") {
		t.Errorf("missing message: %q", got)
	}
	if !strings.Contains(got, "Suggestions:") {
		t.Errorf("missing suggestions header: %q", got)
	}
	if !strings.Contains(got, "taskflow auth login") {
		t.Errorf("missing suggestion text: %q", got)
	}
}

func TestRenderError_WrappedCodedError(t *testing.T) {
	inner := errors.New(errors.ErrCodeAPIUnreachable, "cannot reach TaskFlow API")
	wrapped := stderrors.Join(stderrors.New("context"), inner)

	got := RenderError(wrapped)
	if !strings.Contains(got, "cannot reach TaskFlow API") {
		t.Errorf("coded error not unwrapped: %q", got)
	}
}
