package ux

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/taskflowhq/taskflow/internal/errors"
)

// RenderError turns any error into the text shown on stderr. Coded errors
// carry suggestions and a docs link; everything else is printed as-is.
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	var tfErr *errors.TaskFlowError
	if !stderrors.As(err, &tfErr) {
		return fmt.Sprintf("Error: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s", tfErr.Message)

	if len(tfErr.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range tfErr.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if tfErr.DocsURL != "" {
		fmt.Fprintf(&b, "\n\nDocs: %s", tfErr.DocsURL)
	}

	return b.String()
}
