// ABOUTME: Gemini implementation of the AI gateway on google.golang.org/genai
// ABOUTME: Builds schema-constrained requests and decodes the JSON replies
package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harperreed/lifehub/models"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel     = "gemini-3-flash-preview"
	DefaultChatModel = "gemini-3-pro-preview"
)

// Options tunes a Gemini gateway. Zero values take the defaults. A zero
// Timeout leaves the deadline to the caller's context.
type Options struct {
	Model     string
	ChatModel string
	Timeout   time.Duration
	Brand     *Brand
	Logger    *zap.Logger
}

// generator is the slice of the genai client the gateway uses.
type generator interface {
	Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error)
	Chat(ctx context.Context, model string, cfg *genai.GenerateContentConfig, history []*genai.Content, message string) (string, error)
}

type clientFactory func(ctx context.Context, apiKey string) (generator, error)

type genaiGenerator struct {
	client *genai.Client
}

func newGenaiGenerator(ctx context.Context, apiKey string) (generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &genaiGenerator{client: client}, nil
}

func (g *genaiGenerator) Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *genaiGenerator) Chat(ctx context.Context, model string, cfg *genai.GenerateContentConfig, history []*genai.Content, message string) (string, error) {
	chat, err := g.client.Chats.Create(ctx, model, cfg, history)
	if err != nil {
		return "", err
	}
	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Gemini talks to the Gemini API. A client is created per call so a key
// changed in settings is picked up without a restart.
type Gemini struct {
	creds     CredentialSource
	model     string
	chatModel string
	timeout   time.Duration
	brand     Brand
	logger    *zap.Logger
	newClient clientFactory
}

var _ Gateway = (*Gemini)(nil)

func NewGemini(creds CredentialSource, opts Options) *Gemini {
	g := &Gemini{
		creds:     creds,
		model:     opts.Model,
		chatModel: opts.ChatModel,
		timeout:   opts.Timeout,
		brand:     DefaultBrand(),
		logger:    opts.Logger,
		newClient: newGenaiGenerator,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.chatModel == "" {
		g.chatModel = DefaultChatModel
	}
	if opts.Brand != nil {
		g.brand = *opts.Brand
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	return g
}

func (g *Gemini) client(ctx context.Context) (generator, error) {
	if g.creds == nil {
		return nil, ErrMissingCredential
	}
	key, err := g.creds.APIKey()
	if err != nil {
		return nil, err
	}
	return g.newClient(ctx, key)
}

func (g *Gemini) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// generate runs one request and returns the raw reply text.
func (g *Gemini) generate(ctx context.Context, op string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}
	start := time.Now()
	text, err := client.Generate(ctx, g.model, contents, cfg)
	if err != nil {
		g.logger.Warn("gemini request failed", zap.String("op", op), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("%s failed: %w", op, err)
	}
	g.logger.Debug("gemini request finished", zap.String("op", op), zap.Duration("elapsed", time.Since(start)), zap.Int("chars", len(text)))
	return text, nil
}

// decode parses a JSON reply, tolerating a markdown code fence around it.
func decode[T any](op, text string) (T, error) {
	var v T
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)
	if body == "" {
		return v, fmt.Errorf("%s: %w: empty reply", op, ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return v, fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return v, nil
}

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func arrayOf(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

func jsonConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

func searchTools() []*genai.Tool {
	return []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
}

var ideaSchema = arrayOf(object(map[string]*genai.Schema{
	"title":    str(""),
	"draft":    str(""),
	"platform": str(""),
}, "title", "draft", "platform"))

func userText(text string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
}

func (g *Gemini) GenerateSocialContent(ctx context.Context, topic, platform string) ([]models.ContentIdea, error) {
	cfg := jsonConfig(ideaSchema)
	cfg.Tools = searchTools()
	text, err := g.generate(ctx, "generate social content", userText(g.brand.socialPrompt(topic, platform)), cfg)
	if err != nil {
		return nil, err
	}
	return decode[[]models.ContentIdea]("generate social content", text)
}

func (g *Gemini) GenerateContentFromAsset(ctx context.Context, fileBase64, mimeType, platform string) ([]models.ContentIdea, error) {
	data, err := base64.StdEncoding.DecodeString(fileBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode asset data: %w", err)
	}
	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(g.brand.assetPrompt(platform)),
	}, genai.RoleUser)}

	text, err := g.generate(ctx, "analyze asset", contents, jsonConfig(ideaSchema))
	if err != nil {
		return nil, err
	}
	return decode[[]models.ContentIdea]("analyze asset", text)
}

// campaignWire accepts sequenceDay as any JSON number.
type campaignWire struct {
	Title       string  `json:"title"`
	Draft       string  `json:"draft"`
	Platform    string  `json:"platform"`
	SequenceDay float64 `json:"sequenceDay"`
}

func (g *Gemini) GenerateBulkCampaign(ctx context.Context, goal, persona string) ([]models.CampaignPost, error) {
	schema := arrayOf(object(map[string]*genai.Schema{
		"title":       str(""),
		"draft":       str(""),
		"platform":    str(""),
		"sequenceDay": {Type: genai.TypeNumber, Description: "Day in the sequence (1, 7, 14, 21)"},
	}, "title", "draft", "platform", "sequenceDay"))

	text, err := g.generate(ctx, "generate campaign", userText(g.brand.campaignPrompt(goal, persona)), jsonConfig(schema))
	if err != nil {
		return nil, err
	}
	wire, err := decode[[]campaignWire]("generate campaign", text)
	if err != nil {
		return nil, err
	}
	posts := make([]models.CampaignPost, len(wire))
	for i, w := range wire {
		posts[i] = models.CampaignPost{
			Title:       w.Title,
			Draft:       w.Draft,
			Platform:    w.Platform,
			SequenceDay: int(math.Round(w.SequenceDay)),
		}
	}
	return posts, nil
}

func (g *Gemini) GenerateFunnelStrategy(ctx context.Context, goal, persona string) ([]models.FunnelStage, error) {
	schema := arrayOf(object(map[string]*genai.Schema{
		"name":      str("Awareness, Engagement, or Trust"),
		"strategy":  str("The strategic logic for this stage"),
		"assetCopy": str("The actual headline and body copy for this stage's asset"),
	}, "name", "strategy", "assetCopy"))

	text, err := g.generate(ctx, "generate funnel", userText(g.brand.funnelPrompt(goal, persona)), jsonConfig(schema))
	if err != nil {
		return nil, err
	}
	stages, err := decode[[]models.FunnelStage]("generate funnel", text)
	if err != nil {
		return nil, err
	}
	if len(stages) != models.FunnelStageCount {
		return nil, fmt.Errorf("generate funnel: %w: got %d stages, want %d", ErrMalformedResponse, len(stages), models.FunnelStageCount)
	}
	return stages, nil
}

func (g *Gemini) GenerateClientSnapshot(ctx context.Context, notes, household string) (models.ClientSnapshot, error) {
	schema := object(map[string]*genai.Schema{
		"whoTheyAre":       str(""),
		"familyContext":    strList(),
		"financialPicture": strList(),
		"topGoals":         strList(),
		"riskThemes":       strList(),
		"summary":          str(""),
	}, "whoTheyAre", "familyContext", "financialPicture", "topGoals", "riskThemes", "summary")

	text, err := g.generate(ctx, "generate snapshot", userText(g.brand.snapshotPrompt(notes, household)), jsonConfig(schema))
	if err != nil {
		return models.ClientSnapshot{}, err
	}
	return decode[models.ClientSnapshot]("generate snapshot", text)
}

func (g *Gemini) GenerateReviewScript(ctx context.Context, client models.Client) (models.ReviewScript, error) {
	schema := object(map[string]*genai.Schema{
		"opening":            str(""),
		"discoveryQuestions": strList(),
		"strategicPivot":     str(""),
		"closing":            str(""),
	}, "opening", "discoveryQuestions", "strategicPivot", "closing")

	text, err := g.generate(ctx, "generate review script", userText(g.brand.reviewPrompt(client)), jsonConfig(schema))
	if err != nil {
		return models.ReviewScript{}, err
	}
	return decode[models.ReviewScript]("generate review script", text)
}

func (g *Gemini) GenerateCanvaSpec(ctx context.Context, req CanvaRequest) (string, error) {
	text, err := g.generate(ctx, "generate canva spec", userText(g.brand.canvaPrompt(req)), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (g *Gemini) GenerateTemplateStructure(ctx context.Context, prompt string) (models.TemplateDraft, error) {
	schema := object(map[string]*genai.Schema{
		"name":      str(""),
		"structure": str(""),
	}, "name", "structure")

	text, err := g.generate(ctx, "generate template", userText(g.brand.templatePrompt(prompt)), jsonConfig(schema))
	if err != nil {
		return models.TemplateDraft{}, err
	}
	draft, err := decode[models.TemplateDraft]("generate template", text)
	if err != nil {
		return models.TemplateDraft{}, err
	}
	if strings.TrimSpace(draft.Name) == "" || strings.TrimSpace(draft.Structure) == "" {
		return models.TemplateDraft{}, fmt.Errorf("generate template: %w: missing name or structure", ErrMalformedResponse)
	}
	return draft, nil
}

func (g *Gemini) Chat(ctx context.Context, message string, history []ChatTurn) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	past := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == RoleModel {
			role = genai.RoleModel
		}
		past = append(past, genai.NewContentFromText(turn.Text, role))
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.brand.chatInstruction(), genai.RoleUser),
		Tools:             searchTools(),
	}

	reply, err := client.Chat(ctx, g.chatModel, cfg, past, message)
	if err != nil {
		g.logger.Warn("gemini chat failed", zap.Error(err))
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
