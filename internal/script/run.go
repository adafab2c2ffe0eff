package script

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todo-cli/internal/itemlist"
	"todo-cli/internal/model"

	"github.com/charmbracelet/log"
)

// Apply runs one action against s. The returned item is the one the action
// created or touched, when there is one.
func Apply(s *itemlist.Store, a Action) (*model.Item, error) {
	switch a.Op {
	case OpAdd:
		it, err := s.Add(a.Text)
		if err != nil {
			return nil, err
		}
		return &it, nil
	case OpEdit:
		if err := s.BeginEdit(a.ID); err != nil {
			return nil, err
		}
		return itemPtr(s, a.ID), nil
	case OpType:
		return nil, s.UpdateEditBuffer(a.Text)
	case OpCommit:
		id, _ := s.EditingID()
		if err := s.CommitEdit(); err != nil {
			return nil, err
		}
		return itemPtr(s, id), nil
	case OpCancel:
		s.CancelEdit()
		return nil, nil
	case OpDelete:
		return nil, s.Delete(a.ID)
	default:
		return nil, fmt.Errorf("unknown action %q", a.Op)
	}
}

func itemPtr(s *itemlist.Store, id int) *model.Item {
	it, ok := s.Item(id)
	if !ok {
		return nil
	}
	return &it
}

// Reason classifies a rejected action for reporting and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, itemlist.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, itemlist.ErrNotFound):
		return "not_found"
	case errors.Is(err, itemlist.ErrNoActiveEdit):
		return "no_active_edit"
	default:
		return "error"
	}
}

type StepResult struct {
	Step   int         `json:"step"`
	Line   int         `json:"line,omitempty"`
	Action Action      `json:"action"`
	OK     bool        `json:"ok"`
	Reason string      `json:"reason,omitempty"`
	Error  string      `json:"error,omitempty"`
	Item   *model.Item `json:"item,omitempty"`
}

type Result struct {
	Steps    []StepResult      `json:"steps"`
	Applied  int               `json:"applied"`
	Rejected int               `json:"rejected"`
	Final    itemlist.Snapshot `json:"final"`
}

// StepError stops a strict run.
type StepError struct {
	Step   int
	Line   int
	Action Action
	Err    error
}

func (e StepError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("step %d (line %d, %s): %v", e.Step, e.Line, e.Action, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Action, e.Err)
}

func (e StepError) Unwrap() error { return e.Err }

type Runner struct {
	// Strict stops at the first rejected action.
	Strict bool
	Logger *log.Logger
	// OnReject is called for every rejected action (metrics hook).
	OnReject func(a Action, reason string)
}

// Run applies actions in order to s through a single-writer queue and
// returns the per-step outcome plus the final state. Rejected actions are
// no-ops on the store; they only fail the run in strict mode.
func (r Runner) Run(ctx context.Context, s *itemlist.Store, actions []Action) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	q := itemlist.NewQueue(s)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx)
	}()
	defer func() {
		q.Close()
		<-done
	}()

	res := Result{Steps: make([]StepResult, 0, len(actions))}
	for i, a := range actions {
		step := StepResult{Step: i + 1, Line: a.Line, Action: a}
		var item *model.Item
		err := q.Do(ctx, func(s *itemlist.Store) error {
			var err error
			item, err = Apply(s, a)
			return err
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		if err != nil {
			step.Reason = Reason(err)
			step.Error = err.Error()
			res.Rejected++
			res.Steps = append(res.Steps, step)
			logger.Debug("action rejected", "step", step.Step, "action", a.String(), "reason", step.Reason)
			if r.OnReject != nil {
				r.OnReject(a, step.Reason)
			}
			if r.Strict {
				res.Final = snapshot(ctx, q)
				return res, StepError{Step: step.Step, Line: a.Line, Action: a, Err: err}
			}
			continue
		}
		step.OK = true
		step.Item = item
		res.Applied++
		res.Steps = append(res.Steps, step)
	}

	res.Final = snapshot(ctx, q)
	logger.Info("script applied", "steps", len(actions), "applied", res.Applied, "rejected", res.Rejected)
	return res, nil
}

func snapshot(ctx context.Context, q *itemlist.Queue) itemlist.Snapshot {
	var snap itemlist.Snapshot
	_ = q.Do(ctx, func(s *itemlist.Store) error {
		snap = s.Snapshot()
		return nil
	})
	return snap
}
