// ABOUTME: AI gateway contract consumed by the hub's view-models and surfaces
// ABOUTME: Declares the operations, request types and failure sentinels
package gateway

import (
	"context"
	"errors"

	"github.com/harperreed/lifehub/models"
)

// MissingCredentialMessage is shown whenever no API key is configured.
const MissingCredentialMessage = "Missing Gemini API key. Add one in Settings → Integrations."

// ChatFallbackMessage is the co-pilot reply shown when a chat call fails for
// any reason other than a missing key.
const ChatFallbackMessage = "I'm having a connection issue right now. Let's stay focused on the mission. How else can I help you protect our PA families?"

var (
	ErrMissingCredential = errors.New(MissingCredentialMessage)
	ErrMalformedResponse = errors.New("malformed response from the AI service")
)

// CanvaRequest describes the creative asset to spec.
type CanvaRequest struct {
	Goal      string `json:"goal"`
	Audience  string `json:"audience"`
	Platform  string `json:"platform"`
	AssetType string `json:"assetType"`
}

// ChatTurn is one prior message in a co-pilot conversation. Role is "user"
// or "model".
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Gateway is the generative-content capability. Implementations never retry
// and never cache.
type Gateway interface {
	GenerateSocialContent(ctx context.Context, topic, platform string) ([]models.ContentIdea, error)
	GenerateContentFromAsset(ctx context.Context, fileBase64, mimeType, platform string) ([]models.ContentIdea, error)
	GenerateBulkCampaign(ctx context.Context, goal, persona string) ([]models.CampaignPost, error)
	GenerateFunnelStrategy(ctx context.Context, goal, persona string) ([]models.FunnelStage, error)
	GenerateClientSnapshot(ctx context.Context, notes, household string) (models.ClientSnapshot, error)
	GenerateReviewScript(ctx context.Context, client models.Client) (models.ReviewScript, error)
	GenerateCanvaSpec(ctx context.Context, req CanvaRequest) (string, error)
	GenerateTemplateStructure(ctx context.Context, prompt string) (models.TemplateDraft, error)
	Chat(ctx context.Context, message string, history []ChatTurn) (string, error)
}

// UserMessage turns err into the text shown to the agent.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return MissingCredentialMessage
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI service took too long to respond. Try again in a moment."
	case errors.Is(err, ErrMalformedResponse):
		return "The AI service returned something unexpected. Try again."
	default:
		return err.Error()
	}
}
