// ABOUTME: Link vault over latimore.links.v1
// ABOUTME: Upsert, favorite, filter and seed operations for portal bookmarks
package library

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
)

// DefaultLinks are installed by SeedLinks into an empty vault.
func DefaultLinks(now time.Time) []models.LinkItem {
	links := []models.LinkItem{
		{ID: "gfi-portal", Name: "GFI Portal", URL: "https://globalfinancialimpact.com/", Category: models.LinkGFI, Tags: []string{"gfi", "portal"}, Notes: "Main GFI portal (log in).", IsFavorite: true},
		{ID: "carrier-ethos", Name: "Ethos Velocity", URL: "https://www.ethoslife.com/", Category: models.LinkCarrier, Tags: []string{"term", "velocity"}, Notes: "Instant decision term."},
		{ID: "social-fb", Name: "Facebook Business", URL: "https://business.facebook.com/", Category: models.LinkSocial, Tags: []string{"facebook"}},
		{ID: "social-linkedin", Name: "LinkedIn", URL: "https://www.linkedin.com/", Category: models.LinkSocial, Tags: []string{"linkedin"}},
	}
	for i := range links {
		links[i].Touch(now)
	}
	return links
}

type Links struct {
	state *store.State[[]models.LinkItem]
}

func NewLinks(state *store.State[[]models.LinkItem]) *Links {
	return &Links{state: state}
}

func (l *Links) List() []models.LinkItem {
	return l.state.Get()
}

func (l *Links) Find(id string) (models.LinkItem, bool) {
	for _, item := range l.state.Get() {
		if item.ID == id {
			return item, true
		}
	}
	return models.LinkItem{}, false
}

// SeedLinks installs the default links when the vault is empty and reports
// whether it did.
func (l *Links) SeedLinks(now time.Time) bool {
	seeded := false
	l.state.Apply(func(list []models.LinkItem) ([]models.LinkItem, bool) {
		if len(list) > 0 {
			return list, false
		}
		seeded = true
		return DefaultLinks(now), true
	})
	return seeded
}

// Upsert saves item. An empty or unknown id is a new link and goes to the
// front; a known id is replaced in place.
func (l *Links) Upsert(item models.LinkItem, now time.Time) (models.LinkItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.URL = strings.TrimSpace(item.URL)
	if item.Name == "" {
		return models.LinkItem{}, models.Required("name")
	}
	if item.URL == "" {
		return models.LinkItem{}, models.Required("url")
	}
	if item.Category == "" {
		item.Category = models.LinkPortals
	}
	if _, ok := models.ParseLinkCategory(string(item.Category)); !ok {
		return models.LinkItem{}, &models.ValidationError{Field: "category", Message: "unknown link category " + string(item.Category)}
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Tags = models.NormalizeTags(item.Tags)

	l.state.Update(func(list []models.LinkItem) []models.LinkItem {
		for i, existing := range list {
			if existing.ID == item.ID {
				if item.CreatedAt.IsZero() {
					item.CreatedAt = existing.CreatedAt
				}
				item.Touch(now)
				out := append([]models.LinkItem(nil), list...)
				out[i] = item
				return out
			}
		}
		item.Touch(now)
		return append([]models.LinkItem{item}, list...)
	})
	return item, nil
}

// Remove deletes a link. Unknown ids are a no-op.
func (l *Links) Remove(id string) bool {
	removed := false
	l.state.Apply(func(list []models.LinkItem) ([]models.LinkItem, bool) {
		out := make([]models.LinkItem, 0, len(list))
		for _, item := range list {
			if item.ID == id {
				removed = true
				continue
			}
			out = append(out, item)
		}
		return out, removed
	})
	return removed
}

// ToggleFavorite flips the favorite flag and bumps updatedAt.
func (l *Links) ToggleFavorite(id string, now time.Time) (models.LinkItem, bool) {
	var toggled models.LinkItem
	found := false
	l.state.Apply(func(list []models.LinkItem) ([]models.LinkItem, bool) {
		out := append([]models.LinkItem(nil), list...)
		for i := range out {
			if out[i].ID == id {
				out[i].IsFavorite = !out[i].IsFavorite
				out[i].Touch(now)
				toggled, found = out[i], true
			}
		}
		return out, found
	})
	return toggled, found
}

// Filter narrows links by category ("" or "All" for any) and a query over
// name, url, tags and notes. Favorites come first, then most recently updated.
func (l *Links) Filter(category, query string) []models.LinkItem {
	return FilterLinks(l.state.Get(), category, query)
}

func FilterLinks(links []models.LinkItem, category, query string) []models.LinkItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.LinkItem, 0, len(links))
	for _, item := range links {
		if !categoryMatches(string(item.Category), category) {
			continue
		}
		if q != "" && !containsAny(q, item.Name, item.URL, strings.Join(item.Tags, " "), item.Notes) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func categoryMatches(value, want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, "All") || strings.EqualFold(value, want)
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
