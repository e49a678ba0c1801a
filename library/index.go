// ABOUTME: In-memory full-text index over links, documents and library templates
// ABOUTME: Built on bleve so the hub can rank search hits across every collection
package library

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/harperreed/lifehub/models"
)

// Kinds of indexed entries.
const (
	KindLink     = "link"
	KindDoc      = "doc"
	KindTemplate = "template"
)

// Entry is the indexed shape shared by every collection.
type Entry struct {
	Kind     string
	RefID    string
	Title    string
	Category string
	Body     string
	Tags     string
	URL      string
}

// Hit is one ranked search result.
type Hit struct {
	Kind  string
	RefID string
	Title string
	URL   string
	Score float64
}

type Index struct {
	index bleve.Index
}

func buildMapping() mapping.IndexMapping {
	title := bleve.NewTextFieldMapping()
	title.Analyzer = "en"

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("Kind", keyword)
	doc.AddFieldMappingsAt("RefID", keyword)
	doc.AddFieldMappingsAt("Title", title)
	doc.AddFieldMappingsAt("Category", bleve.NewTextFieldMapping())
	doc.AddFieldMappingsAt("Body", bleve.NewTextFieldMapping())
	doc.AddFieldMappingsAt("Tags", bleve.NewTextFieldMapping())
	doc.AddFieldMappingsAt("URL", keyword)

	m := bleve.NewIndexMapping()
	m.AddDocumentMapping("_default", doc)
	return m
}

// NewIndex creates an empty in-memory index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{index: idx}, nil
}

func (i *Index) Close() error {
	return i.index.Close()
}

func LinkEntry(l models.LinkItem) Entry {
	return Entry{Kind: KindLink, RefID: l.ID, Title: l.Name, Category: string(l.Category), Body: l.Notes, Tags: strings.Join(l.Tags, " "), URL: l.URL}
}

func DocEntry(d models.DocItem) Entry {
	return Entry{Kind: KindDoc, RefID: d.ID, Title: d.Title, Category: string(d.Category), Body: d.Carrier + " " + d.Notes, Tags: strings.Join(d.Tags, " "), URL: d.URL}
}

func TemplateEntry(t models.LibraryTemplate) Entry {
	return Entry{
		Kind:     KindTemplate,
		RefID:    t.ID,
		Title:    t.Title,
		Category: string(t.Category) + " " + t.SubCategory,
		Body:     t.Description + " " + t.Structure,
		Tags:     strings.Join(t.Hashtags, " "),
	}
}

// Entries flattens every searchable collection.
func Entries(links []models.LinkItem, docs []models.DocItem, templates []models.LibraryTemplate) []Entry {
	out := make([]Entry, 0, len(links)+len(docs)+len(templates))
	for _, l := range links {
		out = append(out, LinkEntry(l))
	}
	for _, d := range docs {
		out = append(out, DocEntry(d))
	}
	for _, t := range templates {
		out = append(out, TemplateEntry(t))
	}
	return out
}

func docID(e Entry) string {
	return e.Kind + ":" + e.RefID
}

// Rebuild replaces the index contents with entries, committed as one batch.
func (i *Index) Rebuild(entries []Entry) error {
	fresh, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}
	batch := fresh.NewBatch()
	for _, e := range entries {
		if err := batch.Index(docID(e), e); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("failed to index %s: %w", docID(e), err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("failed to commit index batch: %w", err)
	}

	old := i.index
	i.index = fresh
	return old.Close()
}

// Add indexes or replaces a single entry.
func (i *Index) Add(e Entry) error {
	return i.index.Index(docID(e), e)
}

// Remove drops an entry.
func (i *Index) Remove(kind, refID string) error {
	return i.index.Delete(kind + ":" + refID)
}

func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Search runs a query-string search (quotes, +required, fuzzy~ all work).
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), limit, 0, false)
	req.Fields = []string{"Kind", "RefID", "Title", "URL"}

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{Score: h.Score}
		hit.Kind, _ = h.Fields["Kind"].(string)
		hit.RefID, _ = h.Fields["RefID"].(string)
		hit.Title, _ = h.Fields["Title"].(string)
		hit.URL, _ = h.Fields["URL"].(string)
		hits = append(hits, hit)
	}
	return hits, nil
}
