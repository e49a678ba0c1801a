// ABOUTME: Tests for hub data models
// ABOUTME: Validates stage ordering, parsing helpers, tag normalization and JSON layout
package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagesOrder(t *testing.T) {
	stages := Stages()
	require.Len(t, stages, 10)
	assert.Equal(t, StageNewLead, stages[0])
	assert.Equal(t, StageLost, stages[9])
	assert.Equal(t, 6, StageUnderwriting.Index())
	assert.Equal(t, -1, PipelineStage("Closed Won").Index())

	// Mutating the returned slice must not affect the pipeline.
	stages[0] = "bogus"
	assert.Equal(t, StageNewLead, Stages()[0])
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		input string
		want  PipelineStage
		ok    bool
	}{
		{"New Lead", StageNewLead, true},
		{"  underwriting ", StageUnderwriting, true},
		{"in force + review", StageInForce, true},
		{"1", StageNewLead, true},
		{"10", StageLost, true},
		{"11", "", false},
		{"closed", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStage(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CountyLuzerne.Valid())
	assert.False(t, County("Philadelphia").Valid())
	assert.True(t, SourceSchoolDistrict.Valid())
	assert.False(t, LeadSource("Cold Call").Valid())
	assert.True(t, ProductWholeLife.Valid())
	assert.False(t, ProductType("Auto").Valid())
	assert.True(t, PostPublished.Valid())
	assert.False(t, PostStatus("archived").Valid())
}

func TestParsePlatform(t *testing.T) {
	p, ok := ParsePlatform("LinkedIn")
	assert.True(t, ok)
	assert.Equal(t, PlatformLinkedIn, p)

	_, ok = ParsePlatform("tiktok")
	assert.False(t, ok)
}

func TestParseSchedule(t *testing.T) {
	ts, ok := ParseSchedule("2024-06-10T09:00")
	require.True(t, ok)
	assert.Equal(t, 9, ts.Hour())
	assert.Equal(t, time.June, ts.Month())

	_, ok = ParseSchedule("")
	assert.False(t, ok)
	_, ok = ParseSchedule("next tuesday")
	assert.False(t, ok)
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Term", "term", "", "IUL ", "iul", "velocity"})
	assert.Equal(t, []string{"term", "iul", "velocity"}, got)
	assert.Equal(t, []string{"gfi", "portal"}, SplitTags("GFI, portal,,gfi"))
}

func TestTouchKeepsUpdatedAfterCreated(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	link := LinkItem{CreatedAt: created}
	link.Touch(created.Add(-time.Hour)) // clock skew
	assert.Equal(t, created, link.UpdatedAt)

	doc := DocItem{}
	doc.Touch(created)
	assert.Equal(t, created, doc.CreatedAt)
	assert.Equal(t, created, doc.UpdatedAt)
}

func TestClientJSONLayout(t *testing.T) {
	premium := 50.0
	c := Client{
		ID:              "abc",
		Name:            "Dana Example",
		Email:           "dana@example.com",
		Status:          StageBookedCall,
		County:          CountySchuylkill,
		LeadSource:      SourceReferral,
		ProductInterest: ProductIUL,
		Goals:           []string{"college"},
		MonthlyPremium:  &premium,
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Booked Call", raw["status"])
	assert.Equal(t, "Referral", raw["leadSource"])
	assert.Equal(t, "IUL", raw["productInterest"])
	assert.Equal(t, 50.0, raw["monthlyPremium"])
	assert.NotContains(t, raw, "snapshot")
}

func TestLastInteractionTime(t *testing.T) {
	c := Client{LastInteraction: "Feb 01 2026"}
	ts, ok := c.LastInteractionTime()
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())

	_, ok = Client{LastInteraction: "last week"}.LastInteractionTime()
	assert.False(t, ok)
}

func TestValidationError(t *testing.T) {
	var err error = Required("email")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, "email: is required", err.Error())
}
