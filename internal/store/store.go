// Package store holds client-side copies of server collections. Each store
// mirrors the last fetch of one entity kind and splices its list as create,
// update and delete calls succeed.
package store

import (
	"context"
	"sync"
)

// Entity is anything with a stable id.
type Entity interface {
	GetID() string
}

// Backend is the remote data service behind a store. C is the create payload
// and U the partial update payload.
type Backend[T Entity, C, U any] interface {
	List(ctx context.Context, scope string) ([]T, error)
	Create(ctx context.Context, fields C) (T, error)
	Update(ctx context.Context, id string, fields U) (T, error)
	Delete(ctx context.Context, id string) error
}

// Op names a store operation. Each op has its own loading and error slot so a
// failed delete does not hide a fetch still in flight.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Status is the state of one operation slot.
type Status struct {
	Loading bool
	Err     string
}

type listener struct {
	fn func()
}

// Store mirrors one collection. It is safe for concurrent use; listeners run
// after every state change, outside the lock.
type Store[T Entity, C, U any] struct {
	backend Backend[T, C, U]

	mu        sync.Mutex
	items     []T
	current   *T
	scope     string
	status    map[Op]Status
	listeners map[*listener]struct{}
}

// New creates an empty store over backend.
func New[T Entity, C, U any](backend Backend[T, C, U]) *Store[T, C, U] {
	return &Store[T, C, U]{
		backend:   backend,
		status:    map[Op]Status{},
		listeners: map[*listener]struct{}{},
	}
}

// Subscribe registers fn to run after each change. The returned func removes it.
func (s *Store[T, C, U]) Subscribe(fn func()) (cancel func()) {
	l := &listener{fn: fn}
	s.mu.Lock()
	s.listeners[l] = struct{}{}
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, l)
		s.mu.Unlock()
	}
}

// FetchAll replaces the list with the backend's rows for scope. The scope is
// the owning campaign id for campaign children and ignored for campaigns.
func (s *Store[T, C, U]) FetchAll(ctx context.Context, scope string) error {
	s.begin(OpFetch)
	items, err := s.backend.List(ctx, scope)
	if err != nil {
		s.fail(OpFetch, err)
		return err
	}
	s.finish(OpFetch, func() {
		s.items = items
		s.scope = scope
	})
	return nil
}

// Create adds a row and puts the returned entity at the front of the list.
func (s *Store[T, C, U]) Create(ctx context.Context, fields C) (T, error) {
	s.begin(OpCreate)
	created, err := s.backend.Create(ctx, fields)
	if err != nil {
		s.fail(OpCreate, err)
		var zero T
		return zero, err
	}
	s.finish(OpCreate, func() {
		id := created.GetID()
		items := make([]T, 0, len(s.items)+1)
		items = append(items, created)
		for _, it := range s.items {
			if it.GetID() != id {
				items = append(items, it)
			}
		}
		s.items = items
	})
	return created, nil
}

// Update replaces the element with the returned row, in place, and refreshes
// Current when it has the same id.
func (s *Store[T, C, U]) Update(ctx context.Context, id string, fields U) (T, error) {
	s.begin(OpUpdate)
	updated, err := s.backend.Update(ctx, id, fields)
	if err != nil {
		s.fail(OpUpdate, err)
		var zero T
		return zero, err
	}
	s.finish(OpUpdate, func() {
		for i := range s.items {
			if s.items[i].GetID() == id {
				s.items[i] = updated
			}
		}
		if s.current != nil && (*s.current).GetID() == id {
			cur := updated
			s.current = &cur
		}
	})
	return updated, nil
}

// Delete removes the row and clears Current if it was the deleted one.
func (s *Store[T, C, U]) Delete(ctx context.Context, id string) error {
	s.begin(OpDelete)
	if err := s.backend.Delete(ctx, id); err != nil {
		s.fail(OpDelete, err)
		return err
	}
	s.finish(OpDelete, func() {
		items := s.items[:0:0]
		for _, it := range s.items {
			if it.GetID() != id {
				items = append(items, it)
			}
		}
		s.items = items
		if s.current != nil && (*s.current).GetID() == id {
			s.current = nil
		}
	})
	return nil
}

// SetCurrent selects an entity; nil clears the selection.
func (s *Store[T, C, U]) SetCurrent(item *T) {
	s.mu.Lock()
	if item == nil {
		s.current = nil
	} else {
		cur := *item
		s.current = &cur
	}
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the list.
func (s *Store[T, C, U]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the listed element with id.
func (s *Store[T, C, U]) Find(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Current returns the selected entity, if any.
func (s *Store[T, C, U]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		var zero T
		return zero, false
	}
	return *s.current, true
}

// Scope is the scope of the last successful fetch.
func (s *Store[T, C, U]) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Status reports the loading and error slot of op.
func (s *Store[T, C, U]) Status(op Op) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[op]
}

func (s *Store[T, C, U]) begin(op Op) {
	s.mu.Lock()
	s.status[op] = Status{Loading: true}
	s.mu.Unlock()
	s.notify()
}

func (s *Store[T, C, U]) fail(op Op, err error) {
	s.mu.Lock()
	s.status[op] = Status{Err: err.Error()}
	s.mu.Unlock()
	s.notify()
}

func (s *Store[T, C, U]) finish(op Op, apply func()) {
	s.mu.Lock()
	apply()
	s.status[op] = Status{}
	s.mu.Unlock()
	s.notify()
}

func (s *Store[T, C, U]) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for l := range s.listeners {
		fns = append(fns, l.fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
