package itemlist

import "todo-cli/internal/model"

type observer struct {
	id int
	fn func(model.Change)
}

// Subscribe registers fn to be called after every successful mutation.
// Observers run synchronously in subscription order. The returned func
// removes the observer; calling it more than once is harmless.
func (s *Store) Subscribe(fn func(model.Change)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.obsSeq++
	id := s.obsSeq
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c model.Change) {
	if len(s.observers) == 0 {
		return
	}
	// Observers may unsubscribe while being notified.
	obs := make([]observer, len(s.observers))
	copy(obs, s.observers)
	for _, o := range obs {
		o.fn(c)
	}
}
