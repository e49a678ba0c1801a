// ABOUTME: Isolated charm clients backed by a temporary BadgerDB
// ABOUTME: Used by tests of every package that persists through charm

package charm

import (
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v3"
)

// testClient stands in for charm/kv with a bare BadgerDB so tests never reach
// a charm server.
type testClient struct {
	db     *badger.DB
	config *Config
	mu     sync.RWMutex
}

func (c *testClient) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

func (c *testClient) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (c *testClient) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (c *testClient) Keys() ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (c *testClient) Config() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *testClient) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.DropAll()
}

// NewTestClient creates a charm client on a temporary BadgerDB. Defer the
// returned cleanup.
func NewTestClient(t *testing.T) (*Client, func()) {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir()).
		WithLogger(nil) // Suppress badger logs in tests

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}

	cfg := &Config{
		Host:     "localhost",
		AutoSync: false,
	}
	tc := &testClient{db: db, config: cfg}

	cleanup := func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	}

	return &Client{config: cfg, testClient: tc}, cleanup
}
