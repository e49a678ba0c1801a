// ABOUTME: Tests for links, documents and the search index
// ABOUTME: Covers upsert ordering, favorites, filtering and bleve ranking
package library

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func newLinks() (*Links, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	return NewLinks(store.NewState(kv, store.KeyLinks, []models.LinkItem{}, nil)), kv
}

func newDocs() *Docs {
	return NewDocs(store.NewState(store.NewMemoryKV(), store.KeyDocs, []models.DocItem{}, nil))
}

func TestSeedLinksOnlyWhenEmpty(t *testing.T) {
	links, kv := newLinks()

	assert.True(t, links.SeedLinks(t0))
	require.Len(t, links.List(), 4)
	assert.False(t, links.SeedLinks(t0))
	assert.Len(t, links.List(), 4)

	persisted := store.Load(kv, store.KeyLinks, []models.LinkItem{})
	assert.Equal(t, "gfi-portal", persisted[0].ID)
	assert.Equal(t, t0, persisted[0].CreatedAt)
}

func TestUpsertLink(t *testing.T) {
	links, _ := newLinks()

	first, err := links.Upsert(models.LinkItem{Name: " Carrier Portal ", URL: "https://carrier.example.com", Tags: []string{"Portal", " portal ", "NAC"}}, t0)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Carrier Portal", first.Name)
	assert.Equal(t, models.LinkPortals, first.Category)
	assert.Equal(t, []string{"portal", "nac"}, first.Tags)
	assert.Equal(t, t0, first.CreatedAt)

	second, err := links.Upsert(models.LinkItem{Name: "Tool", URL: "https://tool.example.com", Category: models.LinkTools}, t0)
	require.NoError(t, err)
	assert.Equal(t, second.ID, links.List()[0].ID, "new links go first")

	later := t0.Add(time.Hour)
	first.Notes = "updated"
	first.CreatedAt = time.Time{}
	edited, err := links.Upsert(first, later)
	require.NoError(t, err)
	assert.Equal(t, t0, edited.CreatedAt, "createdAt survives edits")
	assert.Equal(t, later, edited.UpdatedAt)
	assert.Equal(t, first.ID, links.List()[1].ID, "edits stay in place")
}

func TestUpsertLinkValidation(t *testing.T) {
	links, _ := newLinks()

	tests := []struct {
		name  string
		item  models.LinkItem
		field string
	}{
		{"no name", models.LinkItem{URL: "https://x.example.com"}, "name"},
		{"no url", models.LinkItem{Name: "X"}, "url"},
		{"bad category", models.LinkItem{Name: "X", URL: "https://x.example.com", Category: "Secret"}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := links.Upsert(tt.item, t0)
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Empty(t, links.List())
}

func TestToggleFavoriteAndRemove(t *testing.T) {
	links, _ := newLinks()
	links.SeedLinks(t0)

	later := t0.Add(time.Minute)
	item, ok := links.ToggleFavorite("social-fb", later)
	require.True(t, ok)
	assert.True(t, item.IsFavorite)
	assert.Equal(t, later, item.UpdatedAt)

	_, ok = links.ToggleFavorite("missing", later)
	assert.False(t, ok)

	assert.True(t, links.Remove("social-fb"))
	assert.False(t, links.Remove("social-fb"))
	assert.Len(t, links.List(), 3)
}

func TestFilterLinksOrdering(t *testing.T) {
	items := []models.LinkItem{
		{ID: "old", Name: "Old", Category: models.LinkTools, UpdatedAt: t0},
		{ID: "new", Name: "New", Category: models.LinkTools, UpdatedAt: t0.Add(time.Hour)},
		{ID: "fav", Name: "Fav", Category: models.LinkSocial, IsFavorite: true, UpdatedAt: t0.Add(-time.Hour)},
		{ID: "tagged", Name: "Other", Category: models.LinkOther, Tags: []string{"velocity"}, Notes: "term quotes", UpdatedAt: t0},
	}

	ids := func(list []models.LinkItem) []string {
		out := []string{}
		for _, l := range list {
			out = append(out, l.ID)
		}
		return out
	}

	assert.Equal(t, []string{"fav", "new", "old", "tagged"}, ids(FilterLinks(items, "All", "")))
	assert.Equal(t, []string{"new", "old"}, ids(FilterLinks(items, "tools", "")))
	assert.Equal(t, []string{"tagged"}, ids(FilterLinks(items, "", "VELOCITY")))
	assert.Equal(t, []string{"tagged"}, ids(FilterLinks(items, "", "quotes")))
	assert.Empty(t, FilterLinks(items, "Carrier", ""))
}

func TestDocs(t *testing.T) {
	docs := newDocs()

	brochure, err := docs.Upsert(models.DocItem{Title: "IUL Brochure", Carrier: "North American", Tags: []string{"IUL"}}, t0)
	require.NoError(t, err)
	assert.Equal(t, models.DocBrochure, brochure.Category)

	script, err := docs.Upsert(models.DocItem{Title: "Review Script", Category: models.DocScript, Notes: "annual review"}, t0.Add(time.Hour))
	require.NoError(t, err)

	got := docs.Filter("", "")
	require.Len(t, got, 2)
	assert.Equal(t, script.ID, got[0].ID, "newest first")

	assert.Len(t, docs.Filter("Script", ""), 1)
	assert.Len(t, docs.Filter("", "north american"), 1)
	assert.Len(t, docs.Filter("", "iul"), 1)

	_, err = docs.Upsert(models.DocItem{}, t0)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)

	assert.True(t, docs.Remove(brochure.ID))
	_, ok := docs.Find(brochure.ID)
	assert.False(t, ok)
}

func TestIndexSearch(t *testing.T) {
	idx, err := NewIndex()
	require.NoError(t, err)
	defer idx.Close()

	docs := []models.DocItem{{ID: "d1", Title: "Safe Income Advantage Rider", Carrier: "F&G", Tags: []string{"annuity"}}}
	templates := []models.LibraryTemplate{{ID: "l3", Title: "Safe Income Advantage (Rule of 72)", Description: "Fixed Indexed Annuities for retirees"}}
	require.NoError(t, idx.Rebuild(Entries(DefaultLinks(t0), docs, templates)))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(6), count)

	hits, err := idx.Search("linkedin", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, KindLink, hits[0].Kind)
	assert.Equal(t, "social-linkedin", hits[0].RefID)
	assert.Equal(t, "https://www.linkedin.com/", hits[0].URL)

	hits, err = idx.Search("retirees", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, KindTemplate, hits[0].Kind)

	require.NoError(t, idx.Rebuild(Entries(nil, docs, nil)))
	count, err = idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count, "rebuild drops stale entries")

	hits, err = idx.Search("   ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
