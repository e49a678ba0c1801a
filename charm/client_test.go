// ABOUTME: Tests for the charm storage backend
// ABOUTME: Exercises the badger-backed test client through the store contract
package charm

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/lifehub/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMissingKeyMapsToNotFound(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	_, err := c.Get([]byte("nope"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClientBacksPersistedState(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	s := store.NewState(c, store.KeyActiveTab, store.DefaultActiveTab, nil)
	s.Set("calendar")

	reopened := store.NewState(c, store.KeyActiveTab, store.DefaultActiveTab, nil)
	assert.Equal(t, "calendar", reopened.Get())

	keys, err := c.KeysWithPrefix([]byte(store.Prefix))
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	require.NoError(t, store.WipeCache(c))
	assert.Equal(t, store.DefaultActiveTab, store.Load(c, store.KeyActiveTab, store.DefaultActiveTab))
}

func TestClientReset(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	require.NoError(t, c.Set([]byte("a"), []byte("1")))
	require.NoError(t, c.Reset())

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCharmHost, cfg.Host)
	assert.True(t, cfg.AutoSync)

	require.NoError(t, cfg.SetAutoSync(false))
	reloaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.False(t, reloaded.AutoSync)

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))
	fallback, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCharmHost, fallback.Host)
}

func TestWriteStatusAndWipe(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()
	require.NoError(t, c.Set([]byte("k"), []byte("v")))

	var out bytes.Buffer
	require.NoError(t, WriteStatus(&out, c))
	assert.Contains(t, out.String(), "Keys:      1")

	out.Reset()
	require.NoError(t, Wipe(&out, c, false))
	assert.Contains(t, out.String(), "--confirm")
	_, err := c.Get([]byte("k"))
	assert.NoError(t, err)

	out.Reset()
	require.NoError(t, Wipe(&out, c, true))
	_, err = c.Get([]byte("k"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}
