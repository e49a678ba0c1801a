// ABOUTME: Demo integration connectors for agency, carrier and social accounts
// ABOUTME: Connection state persists; sync is simulated with a configurable delay
package connectors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownConnector = errors.New("unknown connector")
	ErrNotConnected     = errors.New("connector is not connected")
)

// JustNow is the lastSync label written after a connect or sync.
const JustNow = "Just now"

// DefaultLatency is how long a simulated sync takes.
const DefaultLatency = 2 * time.Second

// Defaults returns the initial connector set.
func Defaults() []models.Connector {
	return []models.Connector{
		{ID: "gfi", Name: "Global Financial Impact", Description: "GFI Enterprise Portal & Hierarchy Data", Icon: "fa-solid fa-building-shield", Category: models.ConnectorAgency, IsConnected: true, LastSync: "Real-time", Color: "bg-slate-900", BrandColor: "#2C3E50"},
		{ID: "nac", Name: "North American", Description: "IUL Underwriting & Builder Plus Sync", Icon: "fa-solid fa-shield-halved", Category: models.ConnectorCarrier, IsConnected: true, LastSync: "10 mins ago", Color: "bg-blue-900", BrandColor: "#004c8c"},
		{ID: "fg", Name: "F&G Annuities", Description: "Fixed Indexed Annuities & Income Advantage", Icon: "fa-solid fa-vault", Category: models.ConnectorCarrier, Color: "bg-[#c5a059]", BrandColor: "#c5a059"},
		{ID: "ethos", Name: "Ethos Velocity", Description: "Instant Decision Term Underwriting", Icon: "fa-solid fa-bolt-lightning", Category: models.ConnectorCarrier, IsConnected: true, LastSync: "Active", Color: "bg-emerald-600", BrandColor: "#10b981"},
		{ID: "aig", Name: "American General", Description: "Broad Market Protection Products", Icon: "fa-solid fa-landmark", Category: models.ConnectorCarrier, Color: "bg-indigo-700", BrandColor: "#303f9f"},
		{ID: "aec", Name: "American Equity", Description: "Asset Preservation & FIA Portfolio", Icon: "fa-solid fa-coins", Category: models.ConnectorCarrier, Color: "bg-amber-600", BrandColor: "#d97706"},
		{ID: "li", Name: "LinkedIn", Description: "B2B Strategy & Central PA Outreach", Icon: "fa-brands fa-linkedin", Category: models.ConnectorSocial, IsConnected: true, LastSync: "1 hour ago", Color: "bg-blue-800"},
		{ID: "fb", Name: "Facebook Business", Description: "Community Legacy Storytelling", Icon: "fa-brands fa-facebook", Category: models.ConnectorSocial, IsConnected: true, LastSync: "5 mins ago", Color: "bg-blue-600"},
	}
}

// DisplayCategories are the groups shown on the integrations screen.
func DisplayCategories() []models.ConnectorCategory {
	return []models.ConnectorCategory{models.ConnectorAgency, models.ConnectorCarrier, models.ConnectorSocial}
}

type Registry struct {
	state   *store.State[[]models.Connector]
	latency time.Duration
	logger  *zap.Logger
}

// NewRegistry wraps state. A zero latency means DefaultLatency; use a negative
// value for no delay.
func NewRegistry(state *store.State[[]models.Connector], latency time.Duration, logger *zap.Logger) *Registry {
	if latency == 0 {
		latency = DefaultLatency
	}
	if latency < 0 {
		latency = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{state: state, latency: latency, logger: logger}
}

func (r *Registry) List() []models.Connector {
	return r.state.Get()
}

func (r *Registry) Get(id string) (models.Connector, error) {
	for _, c := range r.state.Get() {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Connector{}, fmt.Errorf("%w: %s", ErrUnknownConnector, id)
}

// ByCategory groups connectors for display, keeping list order within a group.
func (r *Registry) ByCategory() map[models.ConnectorCategory][]models.Connector {
	out := make(map[models.ConnectorCategory][]models.Connector)
	for _, c := range r.state.Get() {
		out[c.Category] = append(out[c.Category], c)
	}
	return out
}

func (r *Registry) modify(id string, fn func(*models.Connector) error) (models.Connector, error) {
	var (
		result models.Connector
		err    = fmt.Errorf("%w: %s", ErrUnknownConnector, id)
	)
	r.state.Apply(func(list []models.Connector) ([]models.Connector, bool) {
		out := make([]models.Connector, len(list))
		copy(out, list)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			next := out[i]
			if err = fn(&next); err != nil {
				return list, false
			}
			out[i] = next
			result = next
			return out, true
		}
		return list, false
	})
	return result, err
}

// Connect marks a connector connected with the agent's credentials.
func (r *Registry) Connect(id, agentID string) (models.Connector, error) {
	c, err := r.modify(id, func(c *models.Connector) error {
		c.IsConnected = true
		c.LastSync = JustNow
		c.AgentID = strings.TrimSpace(agentID)
		return nil
	})
	if err == nil {
		r.logger.Info("connector connected", zap.String("connector", id))
	}
	return c, err
}

// Disconnect clears the connection, sync label and agent id.
func (r *Registry) Disconnect(id string) (models.Connector, error) {
	c, err := r.modify(id, func(c *models.Connector) error {
		c.IsConnected = false
		c.LastSync = ""
		c.AgentID = ""
		return nil
	})
	if err == nil {
		r.logger.Info("connector disconnected", zap.String("connector", id))
	}
	return c, err
}

// Sync waits out the simulated latency and stamps lastSync. The connector must
// still be connected when the wait ends.
func (r *Registry) Sync(ctx context.Context, id string) (models.Connector, error) {
	c, err := r.Get(id)
	if err != nil {
		return models.Connector{}, err
	}
	if !c.IsConnected {
		return models.Connector{}, fmt.Errorf("%w: %s", ErrNotConnected, id)
	}

	r.logger.Debug("connector sync started", zap.String("connector", id), zap.Duration("latency", r.latency))
	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return models.Connector{}, ctx.Err()
	case <-timer.C:
	}

	c, err = r.modify(id, func(c *models.Connector) error {
		if !c.IsConnected {
			return fmt.Errorf("%w: %s", ErrNotConnected, id)
		}
		c.LastSync = JustNow
		return nil
	})
	if err != nil {
		return models.Connector{}, err
	}
	r.logger.Info("connector synced", zap.String("connector", id))
	return c, nil
}

// SyncAll syncs every connected connector concurrently and returns the ids that
// were synced. The first failure cancels the rest.
func (r *Registry) SyncAll(ctx context.Context) ([]string, error) {
	var ids []string
	for _, c := range r.state.Get() {
		if c.IsConnected {
			ids = append(ids, c.ID)
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, id := range ids {
		eg.Go(func() error {
			_, err := r.Sync(egCtx, id)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to sync connectors: %w", err)
	}
	return ids, nil
}
