package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/ux"
)

// formatList writes a collection in the requested machine-readable format.
func formatList(cmd *cobra.Command, format string, data interface{}) error {
	f, err := ux.NewFormatter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return f.Format(data)
}
