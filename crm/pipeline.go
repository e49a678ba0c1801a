// ABOUTME: CRM pipeline view-model over the client collection
// ABOUTME: Pure filter, count and mutation helpers; inputs are never modified in place
package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/lifehub/models"
)

// TileStages are the stages that get a summary tile, in display order.
var TileStages = []models.PipelineStage{
	models.StageNewLead,
	models.StageUnderwriting,
	models.StageInForce,
	models.StageBookedCall,
}

// Draft carries the creation form. Zero values take defaults.
type Draft struct {
	Name            string
	Email           string
	Phone           string
	Status          models.PipelineStage
	County          models.County
	LeadSource      models.LeadSource
	ProductInterest models.ProductType
	Household       string
	Goals           []string
	Notes           string
	Carrier         string
	MonthlyPremium  *float64
}

// FilterByStage returns the clients whose status equals stage, in collection order.
func FilterByStage(clients []models.Client, stage models.PipelineStage) []models.Client {
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if c.Status == stage {
			out = append(out, c)
		}
	}
	return out
}

// FilterBySearch matches term case-insensitively against name or email. A
// blank term matches every client.
func FilterBySearch(clients []models.Client, term string) []models.Client {
	q := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

// CountByStage counts clients for the tile stages only. Every tile stage is
// present in the result, including zeros.
func CountByStage(clients []models.Client) map[models.PipelineStage]int {
	counts := make(map[models.PipelineStage]int, len(TileStages))
	for _, stage := range TileStages {
		counts[stage] = 0
	}
	for _, c := range clients {
		if _, ok := counts[c.Status]; ok {
			counts[c.Status]++
		}
	}
	return counts
}

// AdvanceStage sets the status of the client with id. Any stage may follow any
// other. An unknown id returns an unchanged copy.
func AdvanceStage(clients []models.Client, id string, stage models.PipelineStage) ([]models.Client, error) {
	if !stage.Valid() {
		return clients, &models.ValidationError{Field: "status", Message: "unknown pipeline stage " + string(stage)}
	}
	out := make([]models.Client, len(clients))
	for i, c := range clients {
		if c.ID == id {
			c.Status = stage
		}
		out[i] = c
	}
	return out, nil
}

// AddClient validates draft and prepends the new client. On a validation
// failure the input slice is returned untouched with the error.
func AddClient(clients []models.Client, draft Draft, now time.Time) ([]models.Client, models.Client, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return clients, models.Client{}, models.Required("name")
	}
	if strings.TrimSpace(draft.Email) == "" {
		return clients, models.Client{}, models.Required("email")
	}
	if err := validatePremium(draft.MonthlyPremium); err != nil {
		return clients, models.Client{}, err
	}

	client := models.Client{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(draft.Name),
		Email:           strings.TrimSpace(draft.Email),
		Phone:           strings.TrimSpace(draft.Phone),
		Status:          models.StageNewLead,
		County:          models.CountySchuylkill,
		LeadSource:      models.SourceSocial,
		ProductInterest: models.ProductNone,
		Household:       draft.Household,
		LastInteraction: now.Format(models.InteractionLayout),
		Goals:           append([]string{}, draft.Goals...),
		Notes:           draft.Notes,
		Carrier:         draft.Carrier,
		MonthlyPremium:  draft.MonthlyPremium,
	}
	if draft.Status.Valid() {
		client.Status = draft.Status
	}
	if draft.County.Valid() {
		client.County = draft.County
	}
	if draft.LeadSource.Valid() {
		client.LeadSource = draft.LeadSource
	}
	if draft.ProductInterest.Valid() {
		client.ProductInterest = draft.ProductInterest
	}

	out := make([]models.Client, 0, len(clients)+1)
	out = append(out, client)
	out = append(out, clients...)
	return out, client, nil
}

// UpdateClient replaces the client with the same id. Unknown ids are a no-op.
func UpdateClient(clients []models.Client, updated models.Client) ([]models.Client, error) {
	if !updated.Status.Valid() {
		return clients, &models.ValidationError{Field: "status", Message: "unknown pipeline stage " + string(updated.Status)}
	}
	if err := validatePremium(updated.MonthlyPremium); err != nil {
		return clients, err
	}
	out := make([]models.Client, len(clients))
	for i, c := range clients {
		if c.ID == updated.ID {
			c = updated
		}
		out[i] = c
	}
	return out, nil
}

// DeleteClient removes the client with id. Unknown ids are a no-op.
func DeleteClient(clients []models.Client, id string) []models.Client {
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// AttachSnapshot embeds snap on the client with id.
func AttachSnapshot(clients []models.Client, id string, snap models.ClientSnapshot) []models.Client {
	out := make([]models.Client, len(clients))
	for i, c := range clients {
		if c.ID == id {
			s := snap
			c.Snapshot = &s
		}
		out[i] = c
	}
	return out
}

// Find returns the client with id.
func Find(clients []models.Client, id string) (models.Client, bool) {
	for _, c := range clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

// NeedsReview reports whether the annual review script applies to c.
func NeedsReview(c models.Client) bool {
	return c.Status == models.StageInForce
}

func validatePremium(p *float64) error {
	if p != nil && *p < 0 {
		return &models.ValidationError{Field: "monthlyPremium", Message: "must not be negative"}
	}
	return nil
}
