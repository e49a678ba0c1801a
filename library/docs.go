// ABOUTME: Document library over latimore.docs.v1
// ABOUTME: Brochure, guide and script references with category and text filters
package library

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
)

type Docs struct {
	state *store.State[[]models.DocItem]
}

func NewDocs(state *store.State[[]models.DocItem]) *Docs {
	return &Docs{state: state}
}

func (d *Docs) List() []models.DocItem {
	return d.state.Get()
}

func (d *Docs) Find(id string) (models.DocItem, bool) {
	for _, item := range d.state.Get() {
		if item.ID == id {
			return item, true
		}
	}
	return models.DocItem{}, false
}

// Upsert saves a document. New documents default to Brochure and go first.
func (d *Docs) Upsert(item models.DocItem, now time.Time) (models.DocItem, error) {
	item.Title = strings.TrimSpace(item.Title)
	item.URL = strings.TrimSpace(item.URL)
	item.Carrier = strings.TrimSpace(item.Carrier)
	if item.Title == "" {
		return models.DocItem{}, models.Required("title")
	}
	if item.Category == "" {
		item.Category = models.DocBrochure
	}
	if _, ok := models.ParseDocCategory(string(item.Category)); !ok {
		return models.DocItem{}, &models.ValidationError{Field: "category", Message: "unknown document category " + string(item.Category)}
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Tags = models.NormalizeTags(item.Tags)

	d.state.Update(func(list []models.DocItem) []models.DocItem {
		for i, existing := range list {
			if existing.ID == item.ID {
				if item.CreatedAt.IsZero() {
					item.CreatedAt = existing.CreatedAt
				}
				item.Touch(now)
				out := append([]models.DocItem(nil), list...)
				out[i] = item
				return out
			}
		}
		item.Touch(now)
		return append([]models.DocItem{item}, list...)
	})
	return item, nil
}

// Remove deletes a document. Unknown ids are a no-op.
func (d *Docs) Remove(id string) bool {
	removed := false
	d.state.Apply(func(list []models.DocItem) ([]models.DocItem, bool) {
		out := make([]models.DocItem, 0, len(list))
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

func (d *Docs) Filter(category, query string) []models.DocItem {
	return FilterDocs(d.state.Get(), category, query)
}

// FilterDocs matches title, carrier, url, tags and notes, newest first.
func FilterDocs(docs []models.DocItem, category, query string) []models.DocItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.DocItem, 0, len(docs))
	for _, item := range docs {
		if !categoryMatches(string(item.Category), category) {
			continue
		}
		if q != "" && !containsAny(q, item.Title, item.Carrier, item.URL, strings.Join(item.Tags, " "), item.Notes) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
