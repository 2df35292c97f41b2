package mystore

import (
	"context"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	items map[string]T
	order []string
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		items: make(map[string]T),
		order: []string{},
	}, func() {}, nil
}

// RunInTransaction serialises f against every other store operation; an error discards nothing that was
// already written, so f must validate before it writes.
func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	s.Lock()
	defer s.Unlock()

	return f(context.WithValue(c, ctxTransactionKey{}, true))
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	if c.Value(ctxTransactionKey{}) == nil {
		s.Lock()
		defer s.Unlock()
	}

	if _, exists := s.items[uid]; !exists {
		s.order = append(s.order, uid)
	}
	s.items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	if c.Value(ctxTransactionKey{}) == nil {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.items[uid]

	return result, exists, nil
}

// List returns the values in insertion order.
func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	if c.Value(ctxTransactionKey{}) == nil {
		s.Lock()
		defer s.Unlock()
	}

	result := make([]T, 0, len(s.order))
	for _, uid := range s.order {
		result = append(result, s.items[uid])
	}

	return result, nil
}
