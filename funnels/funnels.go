// ABOUTME: Legacy funnel board backed by latimore_legacy_funnels
// ABOUTME: Creates three-stage strategies from the AI gateway and toggles their status
package funnels

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"go.uber.org/zap"
)

// DefaultPersona is preselected on the funnel form.
const DefaultPersona = "Young Families"

// Personas lists the selectable target audiences.
func Personas() []string {
	return []string{DefaultPersona, "Business Owners", "Retirees", "High Net Worth", "New Homeowners"}
}

const (
	maxNameLen   = 30
	truncatedLen = 27
)

// Strategist produces funnel stages for a goal and persona.
type Strategist interface {
	GenerateFunnelStrategy(ctx context.Context, goal, persona string) ([]models.FunnelStage, error)
}

type Board struct {
	state  *store.State[[]models.Funnel]
	logger *zap.Logger
}

func NewBoard(state *store.State[[]models.Funnel], logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{state: state, logger: logger}
}

func (b *Board) List() []models.Funnel {
	return b.state.Get()
}

func (b *Board) Find(id string) (models.Funnel, bool) {
	for _, f := range b.state.Get() {
		if f.ID == id {
			return f, true
		}
	}
	return models.Funnel{}, false
}

// Name derives the display name from a goal, shortening anything over 30
// characters to 27 plus an ellipsis.
func Name(goal string) string {
	runes := []rune(goal)
	if len(runes) > maxNameLen {
		return string(runes[:truncatedLen]) + "..."
	}
	return goal
}

// Create stores a new draft funnel at the front of the board.
func (b *Board) Create(goal, persona string, stages []models.FunnelStage) (models.Funnel, error) {
	goal = strings.TrimSpace(goal)
	persona = strings.TrimSpace(persona)
	if goal == "" {
		return models.Funnel{}, models.Required("goal")
	}
	if persona == "" {
		return models.Funnel{}, models.Required("persona")
	}
	if len(stages) != models.FunnelStageCount {
		return models.Funnel{}, &models.ValidationError{
			Field:   "stages",
			Message: fmt.Sprintf("expected %d stages, got %d", models.FunnelStageCount, len(stages)),
		}
	}

	funnel := models.Funnel{
		ID:      uuid.NewString(),
		Name:    Name(goal),
		Goal:    goal,
		Persona: persona,
		Stages:  append([]models.FunnelStage(nil), stages...),
		Status:  models.FunnelDraft,
	}
	b.state.Update(func(list []models.Funnel) []models.Funnel {
		return append([]models.Funnel{funnel}, list...)
	})
	return funnel, nil
}

// Generate asks the strategist for stages and stores the result. A failed call
// leaves the board untouched.
func (b *Board) Generate(ctx context.Context, strategist Strategist, goal, persona string) (models.Funnel, error) {
	if strings.TrimSpace(goal) == "" {
		return models.Funnel{}, models.Required("goal")
	}
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	stages, err := strategist.GenerateFunnelStrategy(ctx, goal, persona)
	if err != nil {
		b.logger.Warn("funnel generation failed", zap.String("persona", persona), zap.Error(err))
		return models.Funnel{}, fmt.Errorf("failed to generate funnel strategy: %w", err)
	}
	return b.Create(goal, persona, stages)
}

// ToggleStatus flips a funnel between Draft and Active. Unknown ids are a no-op.
func (b *Board) ToggleStatus(id string) (models.Funnel, bool) {
	var toggled models.Funnel
	found := false
	b.state.Apply(func(list []models.Funnel) ([]models.Funnel, bool) {
		out := make([]models.Funnel, len(list))
		for i, f := range list {
			if f.ID == id {
				if f.Status == models.FunnelActive {
					f.Status = models.FunnelDraft
				} else {
					f.Status = models.FunnelActive
				}
				toggled, found = f, true
			}
			out[i] = f
		}
		return out, found
	})
	return toggled, found
}

// Delete removes a funnel. Unknown ids are a no-op.
func (b *Board) Delete(id string) bool {
	removed := false
	b.state.Apply(func(list []models.Funnel) ([]models.Funnel, bool) {
		out := make([]models.Funnel, 0, len(list))
		for _, f := range list {
			if f.ID == id {
				removed = true
				continue
			}
			out = append(out, f)
		}
		return out, removed
	})
	return removed
}
