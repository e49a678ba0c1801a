// ABOUTME: Tests for the cobra command tree
// ABOUTME: Runs commands against an in-memory store with a canned AI gateway and fixed clock
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harperreed/lifehub/auth"
	"github.com/harperreed/lifehub/config"
	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/gateway"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
)

type zeroRNG struct{}

func (zeroRNG) Intn(int) int { return 0 }

var testNow = time.Date(2026, time.June, 15, 8, 0, 0, 0, time.Local)

func newTestApp(t *testing.T) (*App, *gateway.Stub) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Connectors.SyncLatency = 0

	stub := &gateway.Stub{}
	app := &App{
		Version: "test",
		cfg:     cfg,
		logger:  zap.NewNop(),
		kv:      store.NewMemoryKV(),
		ai:      stub,
		rng:     zeroRNG{},
		now:     func() time.Time { return testNow },
	}
	return app, stub
}

// run executes args against a fresh command tree that shares app's store.
func run(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := app.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func crmDraft(name, email string) crm.Draft {
	return crm.Draft{Name: name, Email: email}
}

func openHub(t *testing.T, app *App) *hub.Hub {
	t.Helper()
	h, err := app.Hub()
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return h
}

func TestClientsAddAndList(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "clients", "add",
		"--name", "Dana Example", "--email", "dana@example.com",
		"--stage", "7", "--product", "iul", "--premium", "120.5")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Client created: Dana Example")
	assert.Contains(t, out, "Stage: Underwriting")

	out, err = run(t, app, "", "clients", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Underwriting: 1")
	assert.Contains(t, out, "New Lead: 0")
	assert.Contains(t, out, "Dana Example")
	assert.Contains(t, out, "IUL")
	assert.Contains(t, out, "Total: 1 client(s)")

	out, err = run(t, app, "", "clients", "list", "--stage", "New Lead")
	require.NoError(t, err)
	assert.Contains(t, out, "No clients found")
}

func TestClientsAddValidation(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := run(t, app, "", "clients", "add", "--name", "No Email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	_, err = run(t, app, "", "clients", "add", "--name", "A", "--email", "a@example.com", "--county", "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown county")

	h := openHub(t, app)
	assert.Empty(t, h.Clients())
}

func TestClientsMoveUpdateAndDeleteByPrefix(t *testing.T) {
	app, _ := newTestApp(t)
	h := openHub(t, app)
	c, err := h.AddClient(crmDraft("Riley Sample", "riley@example.com"))
	require.NoError(t, err)
	app.Close()

	out, err := run(t, app, "", "clients", "move", c.ID[:8], "in force + review")
	require.NoError(t, err)
	assert.Contains(t, out, "New Lead → In Force + Review")

	out, err = run(t, app, "", "clients", "update", c.ID[:8], "--phone", "555-0100", "--goal", "Protect income", "--goal", "Fund college")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Client updated: Riley Sample")

	out, err = run(t, app, "", "clients", "show", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "555-0100")
	assert.Contains(t, out, "Goals: Protect income; Fund college")
	assert.Contains(t, out, "■■■■■■■■■□")
	assert.Contains(t, out, "(9/10)")

	_, err = run(t, app, "", "clients", "move", c.ID, "Pending")
	require.Error(t, err)

	out, err = run(t, app, "", "clients", "delete", c.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Client deleted: Riley Sample")

	_, err = run(t, app, "", "clients", "show", c.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client not found")
}

func TestClientsSnapshotAndReview(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Snapshot = models.ClientSnapshot{
		WhoTheyAre:    "Young family, two kids",
		TopGoals:      []string{"Income replacement"},
		Summary:       "Needs term coverage",
		RiskThemes:    []string{"Single income"},
		FamilyContext: []string{"Married"},
	}
	stub.Review = models.ReviewScript{
		Opening:            "Thanks for making time today.",
		DiscoveryQuestions: []string{"Any changes at home?"},
		StrategicPivot:     "Let's look at living benefits.",
		Closing:            "I'll send a summary.",
	}
	h := openHub(t, app)
	c, err := h.AddClient(crmDraft("Morgan Test", "morgan@example.com"))
	require.NoError(t, err)
	app.Close()

	out, err := run(t, app, "", "clients", "snapshot", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Young family, two kids")
	assert.Contains(t, out, "- Income replacement")

	out, err = run(t, app, "", "clients", "review", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "note: Morgan Test is in \"New Lead\"")
	assert.Contains(t, out, "## Strategic pivot")
	assert.Contains(t, out, "- Any changes at home?")

	h = openHub(t, app)
	saved, ok := h.FindClient(c.ID)
	require.True(t, ok)
	require.NotNil(t, saved.Snapshot)
	assert.Equal(t, "Needs term coverage", saved.Snapshot.Summary)
}

func TestAIErrorsShowAgentMessage(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Err = gateway.ErrMissingCredential

	_, err := run(t, app, "", "content", "ideas", "--topic", "term life")
	require.Error(t, err)
	assert.Equal(t, gateway.MissingCredentialMessage, err.Error())
	assert.ErrorIs(t, err, gateway.ErrMissingCredential)
}

func TestPostsAddWithQuickDate(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "posts", "add", "--content", "Protect what matters", "--platform", "LinkedIn", "--when", "tomorrow")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Scheduled for 2026-06-16T09:30 on linkedin")
	assert.Contains(t, out, "Predicted engagement: 90")

	out, err = run(t, app, "", "posts", "add", "--content", "Idea for later", "--platform", "facebook", "--draft")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Draft saved for facebook")

	out, err = run(t, app, "", "posts", "list", "--status", "scheduled")
	require.NoError(t, err)
	assert.Contains(t, out, "Protect what matters")
	assert.NotContains(t, out, "Idea for later")
	assert.Contains(t, out, "Total: 1 post(s)")

	out, err = run(t, app, "", "posts", "upcoming", "--days", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-06-16T09:30")

	_, err = run(t, app, "", "posts", "add", "--content", "x", "--platform", "myspace", "--when", "tomorrow")
	require.Error(t, err)

	_, err = run(t, app, "", "posts", "add", "--content", "x", "--platform", "facebook", "--when", "someday")
	require.Error(t, err)
}

func TestPostsAddExplicitDateAcceptsSpace(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "posts", "add", "--content", "Evening post", "--platform", "instagram", "--date", "2026-06-20 19:00")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-06-20T19:00")

	_, err = run(t, app, "", "posts", "add", "--content", "Bad", "--platform", "instagram", "--date", "June 20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestCalendarGrid(t *testing.T) {
	app, _ := newTestApp(t)
	_, err := run(t, app, "", "posts", "add", "--content", "Weekend story", "--platform", "facebook", "--when", "weekend")
	require.NoError(t, err)

	out, err := run(t, app, "", "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "June 2026")
	assert.Contains(t, out, "*15")
	assert.Contains(t, out, "20•1")
	assert.Contains(t, out, "2026-06-20T11:00")

	out, err = run(t, app, "", "calendar", "--month", "2026-07")
	require.NoError(t, err)
	assert.Contains(t, out, "July 2026")
	assert.Contains(t, out, "No posts found")

	_, err = run(t, app, "", "calendar", "--month", "July")
	require.Error(t, err)
}

func TestCampaignGenerateAndSchedule(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Campaign = []models.CampaignPost{
		{Title: "Kickoff", Draft: "Day one", Platform: "linkedin", SequenceDay: 1},
		{Title: "Follow up", Draft: "Day three", Platform: "facebook", SequenceDay: 3},
		{Title: "Odd one", Draft: "Nowhere", Platform: "fax", SequenceDay: 5},
	}

	out, err := run(t, app, "", "campaign", "generate", "--goal", "Q3 term push")
	require.NoError(t, err)
	assert.Contains(t, out, "Kickoff")
	assert.Contains(t, out, "--schedule")

	out, err = run(t, app, "", "campaign", "generate", "--goal", "Q3 term push", "--schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Scheduled 2 post(s)")
	assert.Contains(t, out, `skipped "Odd one"`)

	h := openHub(t, app)
	require.Len(t, h.Posts(), 2)
	assert.Equal(t, "2026-06-16T10:00", h.SortedPosts()[0].ScheduledDate)
}

func TestContentIdeasPick(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Ideas = []models.ContentIdea{
		{Title: "Why term first", Draft: "Start with term.", Platform: "linkedin"},
		{Title: "Living benefits", Draft: "Coverage you can use.", Platform: "linkedin", EngagementScore: 88},
	}

	out, err := run(t, app, "", "content", "ideas", "--topic", "term", "--pick", "2", "--when", "prime")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Why term first [linkedin] · predicted engagement 75")
	assert.Contains(t, out, "2. Living benefits [linkedin] · predicted engagement 88")
	assert.Contains(t, out, `✓ Scheduled "Living benefits" for 2026-06-17T19:45`)

	_, err = run(t, app, "", "content", "ideas", "--topic", "term", "--pick", "3")
	require.Error(t, err)
}

func TestPasscodeGate(t *testing.T) {
	app, _ := newTestApp(t)
	app.cfg.Auth.Passcode = "open-sesame"

	_, err := run(t, app, "", "clients", "list")
	require.ErrorIs(t, err, auth.ErrLocked)

	out, err := run(t, app, "", "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: locked")

	_, err = run(t, app, "wrong\n", "auth", "unlock")
	require.ErrorIs(t, err, auth.ErrWrongPasscode)

	out, err = run(t, app, "open-sesame\n", "auth", "unlock")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Unlocked until Jul 15, 2026")

	_, err = run(t, app, "", "clients", "list")
	require.NoError(t, err)

	out, err = run(t, app, "", "auth", "lock")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Locked")

	_, err = run(t, app, "", "clients", "list")
	require.ErrorIs(t, err, auth.ErrLocked)
}

func TestSettingsKeyIsMasked(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "settings", "set-key", "AIzaExampleKey1234")
	require.NoError(t, err)
	assert.Contains(t, out, "••••••••1234")
	assert.NotContains(t, out, "AIzaExample")

	out, err = run(t, app, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend:    memory")
	assert.Contains(t, out, "••••••••1234 [settings]")

	_, err = run(t, app, "", "settings", "clear-key")
	require.NoError(t, err)
	out, err = run(t, app, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[not set]")
}

func TestSettingsInitWritesConfig(t *testing.T) {
	app, _ := newTestApp(t)
	app.configPath = filepath.Join(t.TempDir(), "lifehub", "config.yaml")

	out, err := run(t, app, "", "settings", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Config written")

	data, err := os.ReadFile(app.configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: memory")
}

func TestCacheWipeNeedsConfirm(t *testing.T) {
	app, _ := newTestApp(t)
	_, err := run(t, app, "", "clients", "add", "--name", "Casey Demo", "--email", "casey@example.com")
	require.NoError(t, err)

	out, err := run(t, app, "", "cache", "wipe")
	require.NoError(t, err)
	assert.Contains(t, out, "WARNING")

	h := openHub(t, app)
	assert.Len(t, h.Clients(), 1)
	app.Close()

	out, err = run(t, app, "", "cache", "wipe", "--confirm")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Cache wiped")

	h = openHub(t, app)
	assert.Empty(t, h.Clients())
}

func TestTemplatesCommands(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Template = models.TemplateDraft{Name: "Claim Story", Structure: "Hook\nStory\nCall to action"}

	out, err := run(t, app, "", "templates", "add", "--name", "Weekly Tip", "--structure", "Tip + CTA")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Template saved: Weekly Tip")

	out, err = run(t, app, "", "templates", "generate", "a claim story")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Template saved: Claim Story")

	out, err = run(t, app, "", "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Weekly Tip")
	assert.Contains(t, out, "built-in")

	h := openHub(t, app)
	user := h.Templates.User()
	require.Len(t, user, 2)
	builtinID := h.Templates.All()[0].ID
	app.Close()

	_, err = run(t, app, "", "templates", "delete", builtinID)
	require.Error(t, err)

	out, err = run(t, app, "", "templates", "delete", user[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Template deleted")
}

func TestLinksCommands(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "links", "add", "--name", "Quoting Portal", "--url", "https://quotes.example.com", "--category", "Tools", "--tags", "quote, term")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Link saved: Quoting Portal")

	out, err = run(t, app, "", "links", "list", "--category", "Tools")
	require.NoError(t, err)
	assert.Contains(t, out, "Quoting Portal")
	assert.NotContains(t, out, "GFI Portal")

	out, err = run(t, app, "", "links", "star", "carrier-ethos")
	require.NoError(t, err)
	assert.Contains(t, out, "★ Ethos Velocity")

	out, err = run(t, app, "", "links", "remove", "social-fb")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Link removed: Facebook Business")

	out, err = run(t, app, "", "library", "search", "quoting")
	require.NoError(t, err)
	assert.Contains(t, out, "Quoting Portal")

	_, err = run(t, app, "", "links", "add", "--name", "No URL")
	require.Error(t, err)
}

func TestDocsCommands(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "docs", "add", "--title", "IUL Overview", "--category", "Product Guide", "--carrier", "Example Life")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Document saved: IUL Overview")

	out, err = run(t, app, "", "docs", "list", "-q", "example life")
	require.NoError(t, err)
	assert.Contains(t, out, "IUL Overview")

	h := openHub(t, app)
	id := h.Docs.List()[0].ID
	app.Close()

	out, err = run(t, app, "", "docs", "remove", id[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Document removed: IUL Overview")
}

func TestLibraryStrategiesAndBlueprints(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "library", "strategies", "--category", "Annuities")
	require.NoError(t, err)
	assert.Contains(t, out, "Annuities")
	assert.NotContains(t, out, "Business Protection")

	out, err = run(t, app, "", "library", "blueprints")
	require.NoError(t, err)
	assert.Contains(t, out, "FUNNELS")
	assert.Contains(t, out, "LANDING PAGES")
	assert.Contains(t, out, "FORMS")
}

func TestFunnelsCommands(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Stages = []models.FunnelStage{
		{Name: "Awareness", Strategy: "Short videos", AssetCopy: "Did you know?"},
		{Name: "Consideration", Strategy: "Webinar", AssetCopy: "Join us"},
		{Name: "Conversion", Strategy: "Booked call", AssetCopy: "Pick a time"},
	}

	out, err := run(t, app, "", "funnels", "generate", "--goal", "Mortgage protection leads")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Funnel created")
	assert.Contains(t, out, "## 2. Consideration")

	h := openHub(t, app)
	f := h.Funnels.List()[0]
	assert.Equal(t, models.FunnelDraft, f.Status)
	app.Close()

	out, err = run(t, app, "", "funnels", "toggle", f.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "is now Active")

	out, err = run(t, app, "", "funnels", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "Total: 1 funnel(s)")

	_, err = run(t, app, "", "funnels", "generate")
	require.Error(t, err)
}

func TestConnectorsCommands(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "", "connectors", "connect", "fg", "--agent", "AGT-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Connected: F&G Annuities")

	out, err = run(t, app, "", "connectors", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "● connected")
	assert.Contains(t, out, "○ available")

	out, err = run(t, app, "", "connectors", "sync", "fg")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Synced: F&G Annuities")

	out, err = run(t, app, "", "connectors", "sync", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "fg")

	_, err = run(t, app, "", "connectors", "disconnect", "fg")
	require.NoError(t, err)
	_, err = run(t, app, "", "connectors", "sync", "fg")
	require.Error(t, err)
	_, err = run(t, app, "", "connectors", "connect", "nope")
	require.Error(t, err)
}

func TestAssetsUploadAndAnalyze(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Ideas = []models.ContentIdea{{Title: "Spec sheet recap", Draft: "Three things to know.", Platform: "facebook"}}

	path := filepath.Join(t.TempDir(), "rate-card.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG fake"), 0600))

	out, err := run(t, app, "", "assets", "upload", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Asset uploaded: rate-card.png")

	h := openHub(t, app)
	id := h.Assets.List()[0].ID
	app.Close()

	out, err = run(t, app, "", "content", "asset", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Spec sheet recap")

	out, err = run(t, app, "", "assets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 4 asset(s)")

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0600))
	_, err = run(t, app, "", "assets", "upload", txt)
	require.Error(t, err)
}

func TestAIChat(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Text = "Lead with the family story."

	out, err := run(t, app, "", "ai", "chat", "how", "do", "I", "open?")
	require.NoError(t, err)
	assert.Contains(t, out, "Lead with the family story.")

	out, err = run(t, app, "first question\nexit\n", "ai", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "Co-pilot ready")
	assert.Equal(t, 1, strings.Count(out, "Lead with the family story."))
}

func TestAIChatFallsBackOnServiceError(t *testing.T) {
	app, stub := newTestApp(t)
	stub.Err = assert.AnError

	out, err := run(t, app, "", "ai", "chat", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, gateway.ChatFallbackMessage)

	stub.Err = gateway.ErrMissingCredential
	_, err = run(t, app, "", "ai", "chat", "hello")
	require.ErrorIs(t, err, gateway.ErrMissingCredential)
}

func TestVizCommands(t *testing.T) {
	app, _ := newTestApp(t)
	_, err := run(t, app, "", "clients", "add", "--name", "Jordan Demo", "--email", "jordan@example.com")
	require.NoError(t, err)

	out, err := run(t, app, "", "viz", "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph")

	dest := filepath.Join(t.TempDir(), "pipeline.dot")
	out, err = run(t, app, "", "viz", "graph", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Graph written")
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")

	out, err = run(t, app, "", "viz", "dashboard")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestUnknownBackendRejected(t *testing.T) {
	app, _ := newTestApp(t)
	_, err := run(t, app, "", "--backend", "postgres", "clients", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestResolvePrefix(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}
	id := func(s string) string { return s }

	got, err := resolve(ids, id, "xyz", "thing")
	require.NoError(t, err)
	assert.Equal(t, "xyz789", got)

	got, err = resolve(ids, id, "abc123", "thing")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = resolve(ids, id, "ab", "thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 things")

	_, err = resolve(ids, id, "zzz", "thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thing not found")
}
