// ABOUTME: Application composition shared by the CLI, TUI, web and MCP surfaces
// ABOUTME: Binds every storage key to a State and exposes load-apply-save operations
package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/lifehub/assets"
	"github.com/harperreed/lifehub/auth"
	"github.com/harperreed/lifehub/calendar"
	"github.com/harperreed/lifehub/catalog"
	"github.com/harperreed/lifehub/connectors"
	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/funnels"
	"github.com/harperreed/lifehub/gateway"
	"github.com/harperreed/lifehub/library"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"go.uber.org/zap"
)

// ErrClientNotFound is returned by AI operations on an unknown client id.
var ErrClientNotFound = errors.New("client not found")

// Options configures a Hub. Zero values take defaults.
type Options struct {
	Logger      *zap.Logger
	Gateway     gateway.Gateway
	Gate        auth.Gate
	SyncLatency time.Duration
	Now         func() time.Time
}

// Hub owns the state of one agent workspace.
type Hub struct {
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time
	gate   auth.Gate
	ai     gateway.Gateway

	clients   *store.State[[]models.Client]
	posts     *store.State[[]models.SocialPost]
	activeTab *store.State[string]
	session   *store.State[auth.Session]
	apiKey    *store.State[string]
	links     *store.State[[]models.LinkItem]
	docs      *store.State[[]models.DocItem]

	Templates  *catalog.Templates
	Funnels    *funnels.Board
	Connectors *connectors.Registry
	Links      *library.Links
	Docs       *library.Docs
	Assets     *assets.Vault

	indexMu sync.Mutex
	index   *library.Index
}

// New loads every collection from kv. The default links are seeded only on a
// first run, when the links key has never been written.
func New(kv store.KV, opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	firstRun := !store.Exists(kv, store.KeyLinks)

	h := &Hub{
		kv:     kv,
		logger: logger,
		now:    now,
		gate:   opts.Gate,
		ai:     opts.Gateway,

		clients:   store.NewState(kv, store.KeyClients, []models.Client{}, logger),
		posts:     store.NewState(kv, store.KeyScheduledPosts, []models.SocialPost{}, logger),
		activeTab: store.NewState(kv, store.KeyActiveTab, store.DefaultActiveTab, logger),
		session:   store.NewState(kv, store.KeyHubSession, auth.Session{}, logger),
		apiKey:    store.NewState(kv, store.KeyGeminiAPIKey, "", logger),
		links:     store.NewState(kv, store.KeyLinks, []models.LinkItem{}, logger),
		docs:      store.NewState(kv, store.KeyDocs, []models.DocItem{}, logger),
	}
	h.Links = library.NewLinks(h.links)
	h.Docs = library.NewDocs(h.docs)
	h.Templates = catalog.NewTemplates(store.NewState(kv, store.KeyUserTemplates, []models.ContentTemplate{}, logger))
	h.Funnels = funnels.NewBoard(store.NewState(kv, store.KeyLegacyFunnels, []models.Funnel{}, logger), logger)
	h.Connectors = connectors.NewRegistry(store.NewState(kv, store.KeyConnectors, connectors.Defaults(), logger), opts.SyncLatency, logger)
	h.Assets = assets.NewVault(store.NewState(kv, store.KeyAssets, assets.MockAssets(), logger), logger)

	if firstRun && h.Links.SeedLinks(now()) {
		logger.Debug("seeded default links")
	}
	return h
}

// Close releases the search index. The KV backend belongs to the caller.
func (h *Hub) Close() error {
	h.indexMu.Lock()
	defer h.indexMu.Unlock()
	if h.index == nil {
		return nil
	}
	err := h.index.Close()
	h.index = nil
	return err
}

// Now is the hub clock.
func (h *Hub) Now() time.Time {
	return h.now()
}

// KV exposes the backend for sync and maintenance commands.
func (h *Hub) KV() store.KV {
	return h.kv
}

// AI returns the configured gateway, or an error gateway when none is set.
func (h *Hub) AI() gateway.Gateway {
	if h.ai == nil {
		return &gateway.Stub{Err: gateway.ErrMissingCredential}
	}
	return h.ai
}

// Clients

func (h *Hub) Clients() []models.Client {
	return h.clients.Get()
}

func (h *Hub) FindClient(id string) (models.Client, bool) {
	return crm.Find(h.clients.Get(), id)
}

func (h *Hub) ClientsByStage(stage models.PipelineStage) []models.Client {
	return crm.FilterByStage(h.clients.Get(), stage)
}

func (h *Hub) SearchClients(term string) []models.Client {
	return crm.FilterBySearch(h.clients.Get(), term)
}

// StageTiles returns the dashboard tile counts.
func (h *Hub) StageTiles() map[models.PipelineStage]int {
	return crm.CountByStage(h.clients.Get())
}

// SubscribeClients runs fn after every change to the client collection.
func (h *Hub) SubscribeClients(fn func([]models.Client)) func() {
	return h.clients.Subscribe(fn)
}

func (h *Hub) AddClient(draft crm.Draft) (models.Client, error) {
	var (
		added models.Client
		err   error
	)
	h.clients.Apply(func(list []models.Client) ([]models.Client, bool) {
		var out []models.Client
		out, added, err = crm.AddClient(list, draft, h.now())
		return out, err == nil
	})
	if err != nil {
		return models.Client{}, err
	}
	h.logger.Info("client added", zap.String("id", added.ID), zap.String("stage", string(added.Status)))
	return added, nil
}

// AdvanceStage moves a client to stage. Unknown ids are a no-op.
func (h *Hub) AdvanceStage(id string, stage models.PipelineStage) error {
	var err error
	h.clients.Apply(func(list []models.Client) ([]models.Client, bool) {
		var out []models.Client
		out, err = crm.AdvanceStage(list, id, stage)
		_, found := crm.Find(list, id)
		return out, err == nil && found
	})
	return err
}

func (h *Hub) UpdateClient(c models.Client) error {
	var err error
	h.clients.Apply(func(list []models.Client) ([]models.Client, bool) {
		var out []models.Client
		out, err = crm.UpdateClient(list, c)
		_, found := crm.Find(list, c.ID)
		return out, err == nil && found
	})
	return err
}

func (h *Hub) DeleteClient(id string) {
	h.clients.Apply(func(list []models.Client) ([]models.Client, bool) {
		out := crm.DeleteClient(list, id)
		return out, len(out) != len(list)
	})
}

// GenerateSnapshot asks the gateway for a client snapshot from the stored
// notes and household, and attaches it.
func (h *Hub) GenerateSnapshot(ctx context.Context, id string) (models.ClientSnapshot, error) {
	c, ok := h.FindClient(id)
	if !ok {
		return models.ClientSnapshot{}, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	snap, err := h.AI().GenerateClientSnapshot(ctx, c.Notes, c.Household)
	if err != nil {
		return models.ClientSnapshot{}, err
	}
	h.clients.Update(func(list []models.Client) []models.Client {
		return crm.AttachSnapshot(list, id, snap)
	})
	return snap, nil
}

// ReviewScript drafts the annual review call for an in-force client.
func (h *Hub) ReviewScript(ctx context.Context, id string) (models.ReviewScript, error) {
	c, ok := h.FindClient(id)
	if !ok {
		return models.ReviewScript{}, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	return h.AI().GenerateReviewScript(ctx, c)
}

// Posts

func (h *Hub) Posts() []models.SocialPost {
	return h.posts.Get()
}

func (h *Hub) SortedPosts() []models.SocialPost {
	return calendar.SortedByDate(h.posts.Get())
}

func (h *Hub) UpcomingPosts(window time.Duration) []models.SocialPost {
	return calendar.Upcoming(h.posts.Get(), h.now(), window)
}

func (h *Hub) AddPost(draft calendar.PostDraft) (models.SocialPost, error) {
	return h.mutatePosts(draft, calendar.AddPost)
}

// SchedulePost adds a post with status scheduled.
func (h *Hub) SchedulePost(draft calendar.PostDraft) (models.SocialPost, error) {
	return h.mutatePosts(draft, calendar.SchedulePost)
}

func (h *Hub) mutatePosts(draft calendar.PostDraft, op func([]models.SocialPost, calendar.PostDraft) ([]models.SocialPost, models.SocialPost, error)) (models.SocialPost, error) {
	var (
		post models.SocialPost
		err  error
	)
	h.posts.Apply(func(list []models.SocialPost) ([]models.SocialPost, bool) {
		var out []models.SocialPost
		out, post, err = op(list, draft)
		return out, err == nil
	})
	return post, err
}

func (h *Hub) RemovePost(id string) {
	h.posts.Apply(func(list []models.SocialPost) ([]models.SocialPost, bool) {
		out := calendar.RemovePost(list, id)
		return out, len(out) != len(list)
	})
}

// MonthGrid builds the calendar for the month containing ref.
func (h *Hub) MonthGrid(ref time.Time) calendar.Grid {
	return calendar.MonthGrid(ref, h.posts.Get())
}

// ScheduleCampaign commits a generated campaign to the calendar.
func (h *Hub) ScheduleCampaign(campaign []models.CampaignPost) (added []models.SocialPost, skipped []models.CampaignPost) {
	h.posts.Update(func(list []models.SocialPost) []models.SocialPost {
		var out []models.SocialPost
		out, added, skipped = calendar.ScheduleCampaign(list, campaign, h.now())
		return out
	})
	return added, skipped
}

// Navigation

func (h *Hub) ActiveTab() string {
	return h.activeTab.Get()
}

func (h *Hub) SetActiveTab(tab string) {
	tab = strings.TrimSpace(tab)
	if tab == "" {
		tab = store.DefaultActiveTab
	}
	h.activeTab.Set(tab)
}

// Session

func (h *Hub) Gate() auth.Gate {
	return h.gate
}

func (h *Hub) Session() auth.Session {
	return h.session.Get()
}

// Unlocked reports whether data operations are allowed right now.
func (h *Hub) Unlocked() bool {
	return h.gate.Valid(h.session.Get(), h.now())
}

// RequireUnlocked returns auth.ErrLocked when the gate is closed.
func (h *Hub) RequireUnlocked() error {
	return h.gate.Require(h.session.Get(), h.now())
}

func (h *Hub) Unlock(passcode string) error {
	s, err := h.gate.Unlock(passcode, h.now())
	if err != nil {
		h.logger.Warn("unlock rejected")
		return err
	}
	h.session.Set(s)
	return nil
}

func (h *Hub) Lock() {
	h.session.Reset()
}

// Credentials

func (h *Hub) APIKey() string {
	return strings.TrimSpace(h.apiKey.Get())
}

// SetAPIKey stores key. A blank key clears it.
func (h *Hub) SetAPIKey(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		h.apiKey.Reset()
		return
	}
	h.apiKey.Set(key)
}

// Library search

// SearchLibrary runs a full-text query over links, documents and strategy
// templates. The index is rebuilt from current state on every call.
func (h *Hub) SearchLibrary(query string, limit int) ([]library.Hit, error) {
	h.indexMu.Lock()
	defer h.indexMu.Unlock()

	if h.index == nil {
		idx, err := library.NewIndex()
		if err != nil {
			return nil, err
		}
		h.index = idx
	}
	entries := library.Entries(h.Links.List(), h.Docs.List(), catalog.LibraryTemplates())
	if err := h.index.Rebuild(entries); err != nil {
		return nil, err
	}
	return h.index.Search(query, limit)
}

// AI-backed helpers that also update state

// GenerateFunnel creates a funnel from a generated strategy.
func (h *Hub) GenerateFunnel(ctx context.Context, goal, persona string) (models.Funnel, error) {
	return h.Funnels.Generate(ctx, h.AI(), goal, persona)
}

// AnalyzeAsset drafts posts from an uploaded carrier asset.
func (h *Hub) AnalyzeAsset(ctx context.Context, id, platform string) ([]models.ContentIdea, error) {
	return h.Assets.Analyze(ctx, h.AI(), id, platform)
}

// GenerateTemplate drafts a user template and saves it.
func (h *Hub) GenerateTemplate(ctx context.Context, prompt string) (models.ContentTemplate, error) {
	draft, err := h.AI().GenerateTemplateStructure(ctx, prompt)
	if err != nil {
		return models.ContentTemplate{}, err
	}
	return h.Templates.AddUserTemplate(draft.Name, draft.Structure, h.now())
}

// Maintenance

// WipeCache deletes every cache key and returns the hub to its first-run
// state, starter links included.
func (h *Hub) WipeCache() error {
	err := store.WipeCache(h.kv)
	h.clients.Reset()
	h.posts.Reset()
	h.activeTab.Reset()
	h.session.Reset()
	h.apiKey.Reset()
	h.links.Reset()
	h.docs.Reset()
	h.Links.SeedLinks(h.now())
	if err != nil {
		h.logger.Warn("cache wipe incomplete", zap.Error(err))
		return fmt.Errorf("failed to wipe cache: %w", err)
	}
	h.logger.Info("cache wiped")
	return nil
}
