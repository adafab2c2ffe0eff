package journal

import (
	"context"
	"testing"
	"time"

	"todo-cli/internal/itemlist"
	"todo-cli/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T, opts ...Option) *Journal {
	t.Helper()
	j, err := Open(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_RecordsStoreChanges(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 12, 21, 9, 0, 0, 0, time.UTC)
	j := openTest(t, WithClock(func() time.Time { return now }), WithSessionID("sess-test"))

	s := itemlist.New()
	var errs []error
	s.Subscribe(j.Observer(ctx, func(err error) { errs = append(errs, err) }))

	_, err := s.Add("Buy milk")
	require.NoError(t, err)
	require.NoError(t, s.BeginEdit(1))
	require.NoError(t, s.UpdateEditBuffer("Buy oat milk"))
	require.NoError(t, s.CommitEdit())
	require.NoError(t, s.Delete(1))
	require.Empty(t, errs)

	evs, err := j.Events(ctx)
	require.NoError(t, err)
	require.Len(t, evs, 5)

	kinds := make([]model.ChangeKind, 0, len(evs))
	for i, ev := range evs {
		kinds = append(kinds, ev.Kind)
		assert.Equal(t, int64(i+1), ev.Seq)
		assert.Equal(t, "sess-test", ev.SessionID)
		assert.Equal(t, 1, ev.ItemID)
		assert.True(t, ev.TS.Equal(now))
	}
	assert.Equal(t, []model.ChangeKind{
		model.ChangeAdded,
		model.ChangeEditStarted,
		model.ChangeEditBufferUpdated,
		model.ChangeEditCommitted,
		model.ChangeDeleted,
	}, kinds)

	commit, ok := evs[3].Payload.(model.Change)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", commit.Prev)
	require.NotNil(t, commit.Item)
	assert.Equal(t, "Buy oat milk", commit.Item.Text)
}

func TestJournal_TailAndItemEvents(t *testing.T) {
	ctx := context.Background()
	j := openTest(t)

	for i := 1; i <= 4; i++ {
		require.NoError(t, j.Record(ctx, model.Change{Kind: model.ChangeAdded, ItemID: i}))
	}
	require.NoError(t, j.Record(ctx, model.Change{Kind: model.ChangeDeleted, ItemID: 2}))

	tail, err := j.Tail(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, 4, tail[0].ItemID)
	assert.Equal(t, model.ChangeDeleted, tail[1].Kind)

	none, err := j.Tail(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	item2, err := j.ItemEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, item2, 2)
	assert.Equal(t, model.ChangeAdded, item2[0].Kind)
	assert.Equal(t, model.ChangeDeleted, item2[1].Kind)
}

func TestJournal_CountByKind(t *testing.T) {
	ctx := context.Background()
	j := openTest(t)

	require.NoError(t, j.Record(ctx, model.Change{Kind: model.ChangeAdded, ItemID: 1}))
	require.NoError(t, j.Record(ctx, model.Change{Kind: model.ChangeAdded, ItemID: 2}))
	require.NoError(t, j.Record(ctx, model.Change{Kind: model.ChangeEditCancelled, ItemID: 2}))

	counts, err := j.CountByKind(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[model.ChangeKind]int{
		model.ChangeAdded:         2,
		model.ChangeEditCancelled: 1,
	}, counts)
}

func TestJournal_DefaultSessionIDIsUUID(t *testing.T) {
	j := openTest(t)
	_, err := uuid.Parse(j.SessionID())
	assert.NoError(t, err)
}

func TestJournal_SeparateJournalsDoNotShareState(t *testing.T) {
	ctx := context.Background()
	a := openTest(t)
	b := openTest(t)

	require.NoError(t, a.Record(ctx, model.Change{Kind: model.ChangeAdded, ItemID: 1}))
	evs, err := b.Events(ctx)
	require.NoError(t, err)
	assert.Empty(t, evs)
}

func TestJournal_RecordAfterCloseReportsError(t *testing.T) {
	ctx := context.Background()
	j, err := Open(ctx)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	var got error
	j.Observer(ctx, func(err error) { got = err })(model.Change{Kind: model.ChangeAdded, ItemID: 1})
	assert.Error(t, got)
}
