package cli

import (
	"errors"
	"fmt"
	"os"

	"todo-cli/internal/config"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect user configuration",
	}

	var asTOML bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (defaults, file, env)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asTOML {
				if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(app.Config); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}
			return writeOut(cmd, app, app.Config)
		},
	}
	show.Flags().BoolVar(&asTOML, "toml", false, "Print as TOML instead of --format")

	path := &cobra.Command{
		Use:         "path",
		Short:       "Print the config file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := os.Stat(p); err == nil && !force {
				return writeErr(cmd, fmt.Errorf("config already exists: %s (use --force to overwrite)", p))
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return writeErr(cmd, err)
			}
			if err := config.Save(config.Default()); err != nil {
				return writeErr(cmd, err)
			}
			app.Logger.Info("wrote config", "path", p)
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(show, path, initCmd)
	return cmd
}
