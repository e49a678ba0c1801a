// ABOUTME: Tests for the connector registry
// ABOUTME: Covers connect/disconnect, simulated sync, cancellation and goroutine hygiene
package connectors

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRegistry(latency time.Duration) (*Registry, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	state := store.NewState(kv, store.KeyConnectors, Defaults(), nil)
	return NewRegistry(state, latency, nil), kv
}

func TestDefaults(t *testing.T) {
	list := Defaults()
	require.Len(t, list, 8)

	connected := 0
	for _, c := range list {
		if c.IsConnected {
			connected++
			assert.NotEmpty(t, c.LastSync, c.ID)
		}
	}
	assert.Equal(t, 5, connected)
}

func TestByCategory(t *testing.T) {
	r, _ := newRegistry(-1)
	groups := r.ByCategory()
	assert.Len(t, groups[models.ConnectorAgency], 1)
	assert.Len(t, groups[models.ConnectorCarrier], 5)
	assert.Len(t, groups[models.ConnectorSocial], 2)
	assert.Equal(t, "nac", groups[models.ConnectorCarrier][0].ID)
}

func TestConnectAndDisconnect(t *testing.T) {
	r, kv := newRegistry(-1)

	c, err := r.Connect("fg", " AG-123 ")
	require.NoError(t, err)
	assert.True(t, c.IsConnected)
	assert.Equal(t, JustNow, c.LastSync)
	assert.Equal(t, "AG-123", c.AgentID)

	persisted := store.Load(kv, store.KeyConnectors, []models.Connector{})
	require.Len(t, persisted, 8)
	assert.True(t, persisted[2].IsConnected)

	c, err = r.Disconnect("fg")
	require.NoError(t, err)
	assert.False(t, c.IsConnected)
	assert.Empty(t, c.LastSync)
	assert.Empty(t, c.AgentID)

	_, err = r.Connect("myspace", "x")
	assert.ErrorIs(t, err, ErrUnknownConnector)
	_, err = r.Get("myspace")
	assert.ErrorIs(t, err, ErrUnknownConnector)
}

func TestSync(t *testing.T) {
	r, _ := newRegistry(5 * time.Millisecond)

	c, err := r.Sync(context.Background(), "nac")
	require.NoError(t, err)
	assert.Equal(t, JustNow, c.LastSync)

	_, err = r.Sync(context.Background(), "fg")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = r.Sync(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownConnector)
}

func TestSyncHonorsCancellation(t *testing.T) {
	r, _ := newRegistry(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Sync(ctx, "nac")
	assert.ErrorIs(t, err, context.Canceled)

	c, err := r.Get("nac")
	require.NoError(t, err)
	assert.Equal(t, "10 mins ago", c.LastSync)
}

func TestSyncAll(t *testing.T) {
	r, _ := newRegistry(5 * time.Millisecond)

	ids, err := r.SyncAll(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"gfi", "nac", "ethos", "li", "fb"}, ids)

	for _, c := range r.List() {
		if c.IsConnected {
			assert.Equal(t, JustNow, c.LastSync, c.ID)
		} else {
			assert.Empty(t, c.LastSync, c.ID)
		}
	}
}

func TestSyncAllTimeout(t *testing.T) {
	r, _ := newRegistry(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := r.SyncAll(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
