// ABOUTME: Generic persisted state bound to a single storage key
// ABOUTME: Loads once, writes through on every change, and notifies subscribers
package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// State holds the in-memory value for one key. The in-memory value is always
// authoritative: write failures are logged and otherwise ignored.
type State[T any] struct {
	mu     sync.RWMutex
	kv     KV
	key    string
	def    T
	value  T
	subs   map[int]func(T)
	nextID int
	logger *zap.Logger
}

// NewState loads key from kv, falling back to def.
func NewState[T any](kv KV, key string, def T, logger *zap.Logger) *State[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &State[T]{
		kv:     kv,
		key:    key,
		def:    def,
		subs:   make(map[int]func(T)),
		logger: logger,
	}

	v, err := load(kv, key, def)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn("falling back to default value", zap.String("key", key), zap.Error(err))
	}
	s.value = v
	return s
}

// Key returns the storage key this state is bound to.
func (s *State[T]) Key() string {
	return s.key
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and persists it.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.persist(v)
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value under the state lock and stores the
// result.
func (s *State[T]) Update(fn func(T) T) T {
	v, _ := s.Apply(func(cur T) (T, bool) { return fn(cur), true })
	return v
}

// Apply is Update for changes that may not happen. When fn reports false the
// value is not written and subscribers are not called.
func (s *State[T]) Apply(fn func(T) (T, bool)) (T, bool) {
	s.mu.Lock()
	v, changed := fn(s.value)
	if !changed {
		cur := s.value
		s.mu.Unlock()
		return cur, false
	}
	s.value = v
	s.persist(v)
	subs := s.subscribers()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(v)
	}
	return v, true
}

// Reset removes the persisted value and restores the default in memory.
func (s *State[T]) Reset() {
	s.mu.Lock()
	s.value = s.def
	if err := s.kv.Delete([]byte(s.key)); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Warn("failed to clear persisted state", zap.String("key", s.key), zap.Error(err))
	}
	v := s.value
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn to run after every Set, Update or Reset. The returned
// function removes the subscription.
func (s *State[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *State[T]) persist(v T) {
	if err := Save(s.kv, s.key, v); err != nil {
		s.logger.Warn("state kept in memory only", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *State[T]) subscribers() []func(T) {
	out := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
