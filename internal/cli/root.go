package cli

import (
	"fmt"
	"os"
	"strings"

	"todo-cli/internal/config"
	"todo-cli/internal/format"
	"todo-cli/internal/itemlist"
	"todo-cli/internal/journal"
	"todo-cli/internal/logging"
	"todo-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	Format     string
	PrettyJSON bool
	LogLevel   string

	Config config.Config
	Logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "In-memory todo list (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Apply a script and print the final list
  printf 'add Buy milk\nadd Walk dog\ndelete 1\n' | todo run -

  # Same, as rendered markdown
  todo run tasks.yaml --format markdown --render
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return writeErr(cmd, err)
		}
		flags := cmd.Flags()
		if !flags.Changed("format") {
			app.Format = cfg.Format
		}
		if !flags.Changed("pretty") {
			app.PrettyJSON = cfg.Pretty
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = app.LogLevel
		}
		app.Config = cfg
		app.Logger = logging.New(cmd.ErrOrStderr(), logging.OptionsFromConfig(cfg.Log))
		return nil
	}

	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json|edn|markdown)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error); overrides config")

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newSchemaCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// skipConfigAnnotation marks commands that must work with a broken config
// file (they run on defaults).
const skipConfigAnnotation = "todo/skip-config"

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return config.Default(), nil
	}
	return config.Load()
}

func runTUI(cmd *cobra.Command, app *App) error {
	cfg := app.Config
	logger, closeLog, err := logging.OpenFile(cfg.Log.File, logging.OptionsFromConfig(cfg.Log))
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = closeLog() }()

	ctx := cmd.Context()
	j, err := journal.Open(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = j.Close() }()

	return tui.Run(ctx, tui.Options{
		Store:         itemlist.New(),
		Journal:       j,
		Logger:        logger.With("session", j.SessionID()),
		Glyphs:        cfg.TUI.Glyphs,
		ConfirmDelete: cfg.TUI.ConfirmDelete,
		ActivityRows:  cfg.TUI.ActivityRows,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, format.Options{Format: app.Format, Pretty: app.PrettyJSON})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
