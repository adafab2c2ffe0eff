// Package journal records store changes for the lifetime of one process.
//
// Events live in an in-memory SQLite database; nothing is written to disk and
// the journal disappears when the process exits.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo-cli/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Journal struct {
	db        *sql.DB
	sessionID string
	now       func() time.Time
}

type Option func(*Journal)

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// WithSessionID pins the session id instead of generating a UUID.
func WithSessionID(id string) Option {
	return func(j *Journal) {
		if strings.TrimSpace(id) != "" {
			j.sessionID = strings.TrimSpace(id)
		}
	}
}

func Open(ctx context.Context, opts ...Option) (*Journal, error) {
	// modernc.org/sqlite driver name is "sqlite". Every connection to :memory:
	// is a separate database, so the pool is pinned to one connection.
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	j := &Journal{
		db:        db,
		sessionID: uuid.NewString(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(j)
	}
	return j, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			ts_unixms INTEGER NOT NULL,
			kind TEXT NOT NULL,
			item_id INTEGER NOT NULL,
			payload TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_item ON events(item_id, seq);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) SessionID() string { return j.sessionID }

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one change.
func (j *Journal) Record(ctx context.Context, c model.Change) error {
	if j == nil || j.db == nil {
		return errors.New("journal is closed")
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO events(session_id, ts_unixms, kind, item_id, payload) VALUES(?, ?, ?, ?, ?)`,
		j.sessionID, j.now().UnixMilli(), string(c.Kind), c.ItemID, string(raw))
	return err
}

// Observer adapts Record to a store observer. Record errors go to onErr
// (if set); they never reach the store.
func (j *Journal) Observer(ctx context.Context, onErr func(error)) func(model.Change) {
	return func(c model.Change) {
		if err := j.Record(ctx, c); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

// Events returns all events oldest first.
func (j *Journal) Events(ctx context.Context) ([]model.Event, error) {
	return j.query(ctx, `SELECT seq, session_id, ts_unixms, kind, item_id, payload FROM events ORDER BY seq ASC`)
}

// Tail returns the last n events, oldest first.
func (j *Journal) Tail(ctx context.Context, n int) ([]model.Event, error) {
	if n <= 0 {
		return nil, nil
	}
	return j.query(ctx, `SELECT seq, session_id, ts_unixms, kind, item_id, payload FROM (
		SELECT * FROM events ORDER BY seq DESC LIMIT ?
	) ORDER BY seq ASC`, n)
}

// ItemEvents returns the events touching one item, oldest first.
func (j *Journal) ItemEvents(ctx context.Context, itemID int) ([]model.Event, error) {
	return j.query(ctx, `SELECT seq, session_id, ts_unixms, kind, item_id, payload FROM events WHERE item_id = ? ORDER BY seq ASC`, itemID)
}

// CountByKind returns how many events of each kind were recorded.
func (j *Journal) CountByKind(ctx context.Context) (map[model.ChangeKind]int, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[model.ChangeKind]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[model.ChangeKind(kind)] = n
	}
	return out, rows.Err()
}

func (j *Journal) query(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var (
			ev      model.Event
			tsMs    int64
			kind    string
			payload string
		)
		if err := rows.Scan(&ev.Seq, &ev.SessionID, &tsMs, &kind, &ev.ItemID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMs).UTC()
		ev.Kind = model.ChangeKind(kind)
		var c model.Change
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("decode event %d: %w", ev.Seq, err)
		}
		ev.Payload = c
		out = append(out, ev)
	}
	return out, rows.Err()
}
