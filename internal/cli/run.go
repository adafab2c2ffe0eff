package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/itemlist"
	"todo-cli/internal/journal"
	"todo-cli/internal/logging"
	"todo-cli/internal/metrics"
	"todo-cli/internal/model"
	"todo-cli/internal/script"

	"github.com/spf13/cobra"
)

// runOutput is what `todo run` prints.
type runOutput struct {
	Session  string              `json:"session"`
	Applied  int                 `json:"applied"`
	Rejected int                 `json:"rejected"`
	Steps    []script.StepResult `json:"steps"`
	Final    itemlist.Snapshot   `json:"final"`
	Journal  []journalEntry      `json:"journal,omitempty"`

	// Counts is the number of journal events per change kind.
	Counts map[model.ChangeKind]int `json:"counts,omitempty"`
}

type journalEntry struct {
	Seq    int64            `json:"seq"`
	TS     string           `json:"ts"`
	Kind   model.ChangeKind `json:"kind"`
	ItemID int              `json:"itemId"`
}

func (o runOutput) Markdown() string {
	var b strings.Builder
	b.WriteString(format.ListMarkdown("Todos", o.Final.Items, o.Final.EditingID))

	var rejected []script.StepResult
	for _, st := range o.Steps {
		if !st.OK {
			rejected = append(rejected, st)
		}
	}
	if len(rejected) > 0 {
		b.WriteString("\n## Rejected\n\n")
		for _, st := range rejected {
			fmt.Fprintf(&b, "- step %d `%s`: %s\n", st.Step, st.Action.String(), st.Reason)
		}
	}
	if len(o.Journal) > 0 {
		b.WriteString("\n## Journal\n\n")
		for _, e := range o.Journal {
			fmt.Fprintf(&b, "%d. %s #%d\n", e.Seq, e.Kind, e.ItemID)
		}
		b.WriteString("\n| Kind | Events |\n|---|---|\n")
		for _, k := range model.Kinds() {
			if n := o.Counts[k]; n > 0 {
				fmt.Fprintf(&b, "| %s | %d |\n", k, n)
			}
		}
	}
	return b.String()
}

func newRunCmd(app *App) *cobra.Command {
	var (
		strict     bool
		render     bool
		withLog    bool
		session    string
		encoding   string
		metricsOut string
	)

	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Apply a script of list actions to a fresh list and print the result",
		Long: strings.TrimSpace(`
Reads actions from a file (or stdin with "-" or no argument) and applies them
in order to an empty list.

Text scripts have one action per line:
  add <text>      append an item
  edit <id>       start editing an item
  type <text>     replace the edit buffer
  commit          save the edit buffer
  cancel          drop the edit
  delete <id>     remove an item

JSON and YAML scripts are arrays of {op, text, id} objects; see "todo schema".
Rejected actions change nothing and are reported per step; --strict stops at
the first one and exits non-zero.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			b, err := readScript(cmd, path)
			if err != nil {
				return writeErr(cmd, err)
			}

			enc := script.Encoding(strings.ToLower(strings.TrimSpace(encoding)))
			if enc == "" {
				if path == "-" {
					enc = script.Sniff(b)
				} else {
					enc = script.EncodingForPath(path)
				}
			}
			actions, err := script.Parse(bytes.NewReader(b), enc)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%s: %w", displayPath(path), err))
			}

			out, runErr := runScript(cmd.Context(), app, actions, runOptions{
				Strict:      strict,
				WithJournal: withLog,
				SessionID:   session,
				MetricsFile: metricsPath(app, metricsOut),
			})
			if out == nil {
				return writeErr(cmd, runErr)
			}

			opts := format.Options{Format: app.Format, Pretty: app.PrettyJSON, Render: render, Width: terminalWidth()}
			if err := format.Write(cmd.OutOrStdout(), *out, opts); err != nil {
				return writeErr(cmd, err)
			}
			if runErr != nil {
				return writeErr(cmd, runErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first rejected action and exit non-zero")
	cmd.Flags().BoolVar(&render, "render", false, "Render markdown output for the terminal")
	cmd.Flags().BoolVar(&withLog, "journal", false, "Include the session journal and per-kind event counts in the output")
	cmd.Flags().StringVar(&session, "session", "", "Session id to record in the journal (default: random UUID)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "Script encoding (text|json|yaml); default from extension or content")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics in textfile format to this path")
	return cmd
}

type runOptions struct {
	Strict      bool
	WithJournal bool
	// SessionID pins the journal session id; empty means a random UUID.
	SessionID   string
	MetricsFile string
}

// runScript applies actions to a new store with the journal, metrics and
// logging observers attached. A nil output means the run could not start.

func runScript(ctx context.Context, app *App, actions []script.Action, opts runOptions) (*runOutput, error) {
	logger := app.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	j, err := journal.Open(ctx, journal.WithSessionID(opts.SessionID))
	if err != nil {
		return nil, err
	}
	defer func() { _ = j.Close() }()
	logger = logger.With("session", j.SessionID())

	rec := metrics.NewRecorder()
	st := itemlist.New()
	defer st.Subscribe(j.Observer(ctx, func(err error) { logger.Warn("journal", "err", err) }))()
	defer st.Subscribe(func(c model.Change) {
		rec.Observe(c, st.Len())
		if c.Kind == model.ChangeDeleted {
			_, editing := st.EditingID()
			rec.SetEditing(editing)
		}
	})()
	defer st.Subscribe(logging.ChangeObserver(logger))()

	runner := script.Runner{
		Strict: opts.Strict,
		Logger: logger,
		OnReject: func(a script.Action, reason string) {
			rec.Rejected(string(a.Op), reason)
		},
	}
	res, runErr := runner.Run(ctx, st, actions)
	if ctx.Err() != nil {
		return nil, runErr
	}

	out := &runOutput{
		Session:  j.SessionID(),
		Applied:  res.Applied,
		Rejected: res.Rejected,
		Steps:    res.Steps,
		Final:    res.Final,
	}
	if opts.WithJournal {
		evs, err := j.Events(ctx)
		if err != nil {
			return nil, err
		}
		for _, ev := range evs {
			out.Journal = append(out.Journal, journalEntry{
				Seq:    ev.Seq,
				TS:     ev.TS.Format("2006-01-02T15:04:05.000Z07:00"),
				Kind:   ev.Kind,
				ItemID: ev.ItemID,
			})
		}
		counts, err := j.CountByKind(ctx)
		if err != nil {
			return nil, err
		}
		out.Counts = counts
	}

	if opts.MetricsFile != "" {
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			return out, fmt.Errorf("write metrics: %w", err)
		}
		logger.Debug("metrics written", "path", opts.MetricsFile)
	}
	return out, runErr
}

func readScript(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return b, nil
}

func displayPath(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

func metricsPath(app *App, flag string) string {
	if strings.TrimSpace(flag) != "" {
		return strings.TrimSpace(flag)
	}
	return strings.TrimSpace(app.Config.Metrics.File)
}

func terminalWidth() int {
	n, err := strconv.Atoi(envOr("COLUMNS", "80"))
	if err != nil || n <= 0 {
		return 80
	}
	return n
}
