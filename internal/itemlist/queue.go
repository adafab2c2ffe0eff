package itemlist

import (
	"context"
	"errors"
	"sync"
)

var ErrQueueClosed = errors.New("queue closed")

// Queue serializes access to a Store from goroutines other than its owner.
// All work runs on the goroutine that calls Run.
type Queue struct {
	store *Store
	reqs  chan queueReq

	done      chan struct{}
	closeOnce sync.Once
}

type queueReq struct {
	fn  func(*Store) error
	res chan error
}

func NewQueue(s *Store) *Queue {
	if s == nil {
		s = New()
	}
	return &Queue{
		store: s,
		reqs:  make(chan queueReq),
		done:  make(chan struct{}),
	}
}

// Run applies submitted work until ctx ends or Close is called.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return nil
		case r := <-q.reqs:
			r.res <- r.fn(q.store)
		}
	}
}

// Do submits fn and waits for its result. If ctx ends after fn was
// accepted, fn still runs to completion but Do returns ctx.Err().
func (q *Queue) Do(ctx context.Context, fn func(*Store) error) error {
	if fn == nil {
		return nil
	}
	r := queueReq{fn: fn, res: make(chan error, 1)}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return ErrQueueClosed
	case q.reqs <- r:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-r.res:
		return err
	}
}

func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}
