// ABOUTME: Brand-locked prompt construction for every gateway call
// ABOUTME: Prompts are product content and can be swapped through Brand
package gateway

import (
	"fmt"
	"strings"

	"github.com/harperreed/lifehub/models"
)

// Brand is the canonical voice every prompt is locked to.
type Brand struct {
	Name     string
	Region   string
	Tagline  string
	Hashtag  string
	Mission  string
	Carriers []string
}

// DefaultBrand returns the agency's brand lock.
func DefaultBrand() Brand {
	return Brand{
		Name:     "Latimore Life & Legacy LLC",
		Region:   "Schuylkill, Luzerne, and Northumberland Counties in Pennsylvania",
		Tagline:  "Protecting Today. Securing Tomorrow.",
		Hashtag:  "#TheBeatGoesOn",
		Mission:  "Help families and organizations protect what matters and build legacies that outlive them, using clear education and preparation, never fear-based messaging.",
		Carriers: []string{"North American", "F&G", "American Equity", "Ethos", "American General"},
	}
}

func (b Brand) socialPrompt(topic, platform string) string {
	return fmt.Sprintf(`You are the Brand-Locked Content Engine for %s.

NON-NEGOTIABLES:
1. Brand Voice: Authentic, personal, community-focused (Central PA), educational, and urgent but NOT fear-based.
2. No morbid language. Emphasize preparation and love for family.
3. Include tagline: "%s"
4. Include hashtag: "%s"
5. Serving: %s.

Generate 3 post drafts for %s about: "%s".`, b.Name, b.Tagline, b.Hashtag, b.Region, platform, topic)
}

func (b Brand) assetPrompt(platform string) string {
	return fmt.Sprintf(`You are the Brand-Locked Content Engine for %s.

TASK: Analyze the provided carrier product document (PDF or Image) and extract key features, benefits, and educational points.
Then, generate 3 educational social media drafts for %s.

NON-NEGOTIABLES:
1. Brand Voice: Authentic, Central PA community-focused, educational, urgent but NOT fear-based.
2. Reference specific benefits from the document (e.g. Living Benefits, Cash Value Growth, etc.).
3. No morbid language. Emphasize legacy and family protection.
4. Include tagline: "%s"
5. Include hashtag: "%s"`, b.Name, platform, b.Tagline, b.Hashtag)
}

func (b Brand) campaignPrompt(goal, persona string) string {
	return fmt.Sprintf(`Architect a 4-post strategic "Legacy Campaign" for %s.
Goal: %s
Target Persona: %s
Region: %s

Requirements:
1. Post 1: Educational Hook (The "Why").
2. Post 2: Product Solution (Velocity or Depth Engine).
3. Post 3: Social Proof / Community Story.
4. Post 4: The Final CTA (Legacy Invitation).

Ensure all posts follow the brand-locked rules: no fear, education-first, include tagline "%s".`, b.Name, goal, persona, b.Region, b.Tagline)
}

func (b Brand) funnelPrompt(goal, persona string) string {
	return fmt.Sprintf(`Architect a 3-stage high-conversion "Legacy Funnel" for %s.
Goal: %s
Persona: %s
Region: %s

STAGES:
1. Awareness (Social Hook): Broad educational awareness to stop the scroll.
2. Engagement (Lead Magnet): A specific valuable offer (checklist, guide, calculator).
3. Trust (Nurture Email): A deep-dive educational message to build trust before the ask.

RULES:
- Education-first, no fear.
- Plain language (8th grade level).
- Reference regional needs in Central PA.
- Brand: %s. Tagline: %s.`, b.Name, goal, persona, b.Region, b.Name, b.Tagline)
}

func (b Brand) templatePrompt(request string) string {
	return fmt.Sprintf(`You are a strategic content architect for %s.
Based on the user's request: "%s", generate a social media content template.
Provide a concise name and a structured instructional logic focusing on protection and legacy.`, b.Name, request)
}

func (b Brand) canvaPrompt(req CanvaRequest) string {
	return fmt.Sprintf(`You are a creative director and brand-locked strategist for %s.

Brand & compliance:
- Voice: authentic, Central PA community-focused, educational, urgent but NOT fear-based.
- Avoid guarantees. No morbid language. Emphasize preparation, love, and legacy.
- Tagline must appear: "%s"
- Hashtag must appear: "%s"
- Serving: %s

Task:
Create a Canva-ready creative specification for:
- Goal: %s
- Audience: %s
- Platform: %s
- Asset type: %s

Output format (copy/paste, plain text):
1) Size + safe-area notes
2) Creative direction (layout hierarchy)
3) Copy set: Headline, Subheadline, Body, CTA (platform-appropriate)
4) Design notes: imagery ideas, iconography, spacing, accessibility
5) Compliance notes (what to avoid)
6) Include two variations:
   - Version A: Educational
   - Version B: Direct response
`, b.Name, b.Tagline, b.Hashtag, b.Region, req.Goal, req.Audience, req.Platform, req.AssetType)
}

func (b Brand) snapshotPrompt(notes, household string) string {
	return fmt.Sprintf(`You are the Life Hub Intelligence Engine for %s.
Analyze these notes for a family/client in %s.
Notes: "%s"
Household: "%s"

Tasks:
1. Who they are (Persona: Accumulator, Protector, or Income Seeker).
2. Family & local context.
3. Financial picture.
4. Goals.
5. Risk/Opportunity themes (e.g., mortgage protection, IUL for tax-free growth).
6. Summary.`, b.Name, b.Region, notes, household)
}

func (b Brand) reviewPrompt(c models.Client) string {
	premium := "unknown"
	if c.MonthlyPremium != nil {
		premium = fmt.Sprintf("%.2f", *c.MonthlyPremium)
	}
	return fmt.Sprintf(`You are the Strategic Review Engine for %s.
The agent is preparing for an annual review call with a client.

CLIENT DATA:
- Name: %s
- County: %s
- Household: %s
- Current Product: %s
- Premium: %s
- Notes: %s

TASK: Generate a "Legacy Review Script".
1. Gratitude & Connection (Reference Central PA community roots).
2. Policy Health Check (Confirm current protection).
3. Life Changes Discovery (Ask about new kids, grandkids, or mortgage status).
4. Strategic Opportunity (Suggest the next logical step, e.g. if they have Term, talk IUL. If they have IUL, mention FIA or Final Expense for parents).
5. Closing with Tagline: "%s".`, b.Name, c.Name, c.County, c.Household, c.ProductInterest, premium, c.Notes, b.Tagline)
}

func (b Brand) chatInstruction() string {
	return fmt.Sprintf(`You are the Business Co-Pilot for %s.

CANONICAL CONTEXT:
- Brand: %s
- Mission: %s
- Region: %s
- Carriers: %s
- Strategy: Dual-Engine Framework (Velocity via Ethos, Depth via IUL/FIA).

YOUR ROLE:
- Assist the agent in managing %s clients.
- Suggest content that follows "Brand-Locked" rules (no fear-based messaging).
- Help with the 10-stage pipeline (New Lead to In Force).
- Use the "Three Rules of Money" (Rule of 72, Growing Money, Tax Buckets).

If asked about financial news, use the Google Search tool.`, b.Name, b.Name, b.Mission, b.Region, strings.Join(b.Carriers, ", "), b.Region)
}
