// ABOUTME: Data models for strategy templates and static blueprints
// ABOUTME: Defines ContentTemplate, LibraryTemplate and funnel/page/form blueprints
package models

// ContentTemplate is a reusable post structure. Built-ins and user templates
// share this shape.
type ContentTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Structure string `json:"structure"`
	Icon      string `json:"icon"`
}

// TemplateDraft is a generated template proposal.
type TemplateDraft struct {
	Name      string `json:"name"`
	Structure string `json:"structure"`
}

type LibraryCategory string

const (
	LibraryLifeInsurance      LibraryCategory = "Life Insurance"
	LibraryAnnuities          LibraryCategory = "Annuities"
	LibraryLegacyEstate       LibraryCategory = "Legacy & Estate"
	LibraryBusinessProtection LibraryCategory = "Business Protection"
)

func LibraryCategories() []LibraryCategory {
	return []LibraryCategory{LibraryLifeInsurance, LibraryAnnuities, LibraryLegacyEstate, LibraryBusinessProtection}
}

type LibraryTemplate struct {
	ID          string          `json:"id"`
	Category    LibraryCategory `json:"category"`
	SubCategory string          `json:"subCategory"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Structure   string          `json:"structure"`
	Hashtags    []string        `json:"hashtags"`
}

type FunnelBlueprint struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Persona     string   `json:"persona"`
	Stages      []string `json:"stages"`
	Description string   `json:"description"`
}

type LandingPageBlueprint struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Sections    []string `json:"sections"`
	Description string   `json:"description"`
}

type FormBlueprint struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Fields      []string `json:"fields"`
	Description string   `json:"description"`
}
