package cli

import (
	"todo-cli/internal/script"

	"github.com/spf13/cobra"
)

func newSchemaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for JSON/YAML scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cmd.OutOrStdout().Write(script.Schema()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
