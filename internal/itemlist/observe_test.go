package itemlist

import (
	"testing"

	"todo-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ReceivesChangesInOrder(t *testing.T) {
	s := New()
	var got []model.ChangeKind
	s.Subscribe(func(c model.Change) { got = append(got, c.Kind) })

	_, _ = s.Add("a")
	_ = s.BeginEdit(1)
	_ = s.UpdateEditBuffer("b")
	_ = s.CommitEdit()
	_ = s.BeginEdit(1)
	s.CancelEdit()
	_ = s.Delete(1)

	assert.Equal(t, []model.ChangeKind{
		model.ChangeAdded,
		model.ChangeEditStarted,
		model.ChangeEditBufferUpdated,
		model.ChangeEditCommitted,
		model.ChangeEditStarted,
		model.ChangeEditCancelled,
		model.ChangeDeleted,
	}, got)
}

func TestSubscribe_FailedOperationsEmitNothing(t *testing.T) {
	s := New()
	n := 0
	s.Subscribe(func(model.Change) { n++ })

	_, _ = s.Add("  ")
	_ = s.Delete(1)
	_ = s.BeginEdit(1)
	_ = s.UpdateEditBuffer("x")
	_ = s.CommitEdit()
	s.CancelEdit()

	assert.Equal(t, 0, n)
}

func TestSubscribe_CommitCarriesPreviousText(t *testing.T) {
	s := New()
	var last model.Change
	s.Subscribe(func(c model.Change) { last = c })

	_, _ = s.Add("old")
	require.NoError(t, s.BeginEdit(1))
	require.NoError(t, s.UpdateEditBuffer("new"))
	require.NoError(t, s.CommitEdit())

	assert.Equal(t, model.ChangeEditCommitted, last.Kind)
	assert.Equal(t, "old", last.Prev)
	require.NotNil(t, last.Item)
	assert.Equal(t, "new", last.Item.Text)
}

func TestSubscribe_ObserverSeesStateAfterMutation(t *testing.T) {
	s := New()
	var lens []int
	s.Subscribe(func(model.Change) { lens = append(lens, s.Len()) })

	_, _ = s.Add("a")
	_, _ = s.Add("b")
	_ = s.Delete(1)
	assert.Equal(t, []int{1, 2, 1}, lens)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := New()
	var a, b int
	unsubA := s.Subscribe(func(model.Change) { a++ })
	s.Subscribe(func(model.Change) { b++ })

	_, _ = s.Add("x")
	unsubA()
	unsubA()
	_, _ = s.Add("y")

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestSubscribe_NilObserverIgnored(t *testing.T) {
	s := New()
	unsub := s.Subscribe(nil)
	unsub()
	_, err := s.Add("a")
	assert.NoError(t, err)
}
