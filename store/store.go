// ABOUTME: Key/value backend contract and typed load/save helpers
// ABOUTME: Decoding failures fall back to defaults; backends report ErrNotFound for missing keys
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned by backends when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is the byte-level backend every persisted collection sits on.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Lister is implemented by backends that can enumerate their keys.
type Lister interface {
	Keys() ([][]byte, error)
}

// Load decodes the JSON value stored under key. A missing key, an empty
// payload, a read error or a decode error all yield def.
func Load[T any](kv KV, key string, def T) T {
	v, err := load(kv, key, def)
	if err != nil {
		return def
	}
	return v
}

func load[T any](kv KV, key string, def T) (T, error) {
	raw, err := kv.Get([]byte(key))
	if err != nil {
		return def, err
	}
	if len(raw) == 0 {
		return def, ErrNotFound
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return v, nil
}

// Exists reports whether key holds a value. An empty payload counts as absent.
func Exists(kv KV, key string) bool {
	raw, err := kv.Get([]byte(key))
	return err == nil && len(raw) > 0
}

// Save encodes value as JSON and writes it under key.
func Save[T any](kv KV, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// MemoryKV is an in-process backend for tests and ephemeral sessions.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites makes Set and Delete fail, simulating a full or disabled store.
	FailWrites bool
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// errWriteDisabled is returned by MemoryKV when FailWrites is set.
var errWriteDisabled = errors.New("storage writes disabled")

func (m *MemoryKV) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryKV) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errWriteDisabled
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

func (m *MemoryKV) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errWriteDisabled
	}
	delete(m.data, string(key))
	return nil
}

// Keys returns every stored key in sorted order.
func (m *MemoryKV) Keys() ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.data))
	for k := range m.data {
		names = append(names, k)
	}
	sort.Strings(names)
	keys := make([][]byte, len(names))
	for i, k := range names {
		keys[i] = []byte(k)
	}
	return keys, nil
}

// Raw writes bytes without encoding. Tests use it to plant corrupt payloads.
func (m *MemoryKV) Raw(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
