// ABOUTME: Canned gateway for offline runs and tests of dependent packages
// ABOUTME: Returns fixed replies, or Err for every call when set
package gateway

import (
	"context"

	"github.com/harperreed/lifehub/models"
)

// Stub implements Gateway with canned data.
type Stub struct {
	Ideas    []models.ContentIdea
	Campaign []models.CampaignPost
	Stages   []models.FunnelStage
	Snapshot models.ClientSnapshot
	Review   models.ReviewScript
	Text     string
	Template models.TemplateDraft
	Err      error

	Calls []string
}

var _ Gateway = (*Stub)(nil)

func (s *Stub) record(op string) error {
	s.Calls = append(s.Calls, op)
	return s.Err
}

func (s *Stub) GenerateSocialContent(context.Context, string, string) ([]models.ContentIdea, error) {
	if err := s.record("social"); err != nil {
		return nil, err
	}
	return s.Ideas, nil
}

func (s *Stub) GenerateContentFromAsset(context.Context, string, string, string) ([]models.ContentIdea, error) {
	if err := s.record("asset"); err != nil {
		return nil, err
	}
	return s.Ideas, nil
}

func (s *Stub) GenerateBulkCampaign(context.Context, string, string) ([]models.CampaignPost, error) {
	if err := s.record("campaign"); err != nil {
		return nil, err
	}
	return s.Campaign, nil
}

func (s *Stub) GenerateFunnelStrategy(context.Context, string, string) ([]models.FunnelStage, error) {
	if err := s.record("funnel"); err != nil {
		return nil, err
	}
	return s.Stages, nil
}

func (s *Stub) GenerateClientSnapshot(context.Context, string, string) (models.ClientSnapshot, error) {
	if err := s.record("snapshot"); err != nil {
		return models.ClientSnapshot{}, err
	}
	return s.Snapshot, nil
}

func (s *Stub) GenerateReviewScript(context.Context, models.Client) (models.ReviewScript, error) {
	if err := s.record("review"); err != nil {
		return models.ReviewScript{}, err
	}
	return s.Review, nil
}

func (s *Stub) GenerateCanvaSpec(context.Context, CanvaRequest) (string, error) {
	if err := s.record("canva"); err != nil {
		return "", err
	}
	return s.Text, nil
}

func (s *Stub) GenerateTemplateStructure(context.Context, string) (models.TemplateDraft, error) {
	if err := s.record("template"); err != nil {
		return models.TemplateDraft{}, err
	}
	return s.Template, nil
}

func (s *Stub) Chat(context.Context, string, []ChatTurn) (string, error) {
	if err := s.record("chat"); err != nil {
		return "", err
	}
	return s.Text, nil
}
