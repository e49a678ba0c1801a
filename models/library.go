// ABOUTME: Data models for the link vault and document library
// ABOUTME: Defines LinkItem, DocItem, their categories and tag normalization
package models

import (
	"strings"
	"time"
)

type LinkCategory string

const (
	LinkCarrier LinkCategory = "Carrier"
	LinkGFI     LinkCategory = "GFI"
	LinkPortals LinkCategory = "Portals"
	LinkSocial  LinkCategory = "Social"
	LinkTools   LinkCategory = "Tools"
	LinkFunnels LinkCategory = "Funnels"
	LinkOther   LinkCategory = "Other"
)

func LinkCategories() []LinkCategory {
	return []LinkCategory{LinkCarrier, LinkGFI, LinkPortals, LinkSocial, LinkTools, LinkFunnels, LinkOther}
}

func ParseLinkCategory(input string) (LinkCategory, bool) {
	for _, c := range LinkCategories() {
		if strings.EqualFold(string(c), strings.TrimSpace(input)) {
			return c, true
		}
	}
	return "", false
}

// LinkItem is a bookmarked portal or tool.
type LinkItem struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	URL        string       `json:"url"`
	Category   LinkCategory `json:"category"`
	Tags       []string     `json:"tags"`
	Notes      string       `json:"notes,omitempty"`
	IsFavorite bool         `json:"isFavorite,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Touch stamps UpdatedAt, filling CreatedAt on first save.
func (l *LinkItem) Touch(now time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = laterOf(l.CreatedAt, now)
}

type DocCategory string

const (
	DocBrochure     DocCategory = "Brochure"
	DocProductGuide DocCategory = "Product Guide"
	DocPresentation DocCategory = "Presentation"
	DocScript       DocCategory = "Script"
	DocCompliance   DocCategory = "Compliance"
	DocOther        DocCategory = "Other"
)

func DocCategories() []DocCategory {
	return []DocCategory{DocBrochure, DocProductGuide, DocPresentation, DocScript, DocCompliance, DocOther}
}

func ParseDocCategory(input string) (DocCategory, bool) {
	for _, c := range DocCategories() {
		if strings.EqualFold(string(c), strings.TrimSpace(input)) {
			return c, true
		}
	}
	return "", false
}

// DocItem is a brochure, guide, or script reference.
type DocItem struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Category  DocCategory `json:"category"`
	Carrier   string      `json:"carrier,omitempty"`
	URL       string      `json:"url,omitempty"`
	Tags      []string    `json:"tags"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (d *DocItem) Touch(now time.Time) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = laterOf(d.CreatedAt, now)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// NormalizeTags trims, lower-cases and de-duplicates tags, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma-separated tag list.
func SplitTags(csv string) []string {
	return NormalizeTags(strings.Split(csv, ","))
}
