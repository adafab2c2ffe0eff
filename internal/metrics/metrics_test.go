package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo-cli/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsChanges(t *testing.T) {
	r := NewRecorder()

	r.Observe(model.Change{Kind: model.ChangeAdded, ItemID: 1}, 1)
	r.Observe(model.Change{Kind: model.ChangeAdded, ItemID: 2}, 2)
	r.Observe(model.Change{Kind: model.ChangeEditStarted, ItemID: 1}, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.changes.WithLabelValues(string(model.ChangeAdded))))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.changes.WithLabelValues(string(model.ChangeDeleted))))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.items))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.editing))

	r.Observe(model.Change{Kind: model.ChangeEditCommitted, ItemID: 1}, 2)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.editing))
}

func TestRecorder_Rejected(t *testing.T) {
	r := NewRecorder()
	r.Rejected("add", "invalid_input")
	r.Rejected("add", "invalid_input")
	r.Rejected("delete", "not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.failures.WithLabelValues("add", "invalid_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("delete", "not_found")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe(model.Change{Kind: model.ChangeAdded, ItemID: 1}, 1)

	path := filepath.Join(t.TempDir(), "todo.prom")
	require.NoError(t, r.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.Contains(out, `todo_changes_total{kind="added"} 1`), out)
	assert.True(t, strings.Contains(out, `todo_changes_total{kind="deleted"} 0`), out)
	assert.True(t, strings.Contains(out, "todo_items 1"), out)
}
