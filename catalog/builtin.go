// ABOUTME: Static strategy catalogs shipped with the hub
// ABOUTME: Built-in post templates, library templates and funnel/page/form blueprints
package catalog

import (
	"strings"

	"github.com/harperreed/lifehub/models"
)

var builtinTemplates = []models.ContentTemplate{
	{
		ID:        "0",
		Name:      "Legacy Anchor",
		Structure: "Open with the concept that a legacy is what you leave IN someone. Discuss how life insurance secures this for future generations in Central PA.",
		Icon:      "fa-anchor",
	},
	{
		ID:        "1",
		Name:      "The Educational Hook",
		Structure: "Start with a surprising fact about life insurance, followed by 3 tips for young families, and end with a CTA to protect their legacy.",
		Icon:      "fa-graduation-cap",
	},
	{
		ID:        "2",
		Name:      "Legacy Storyteller",
		Structure: "Share a story about the importance of planning for the next generation. Focus on peace of mind and family protection.",
		Icon:      "fa-book-open",
	},
}

var funnelBlueprints = []models.FunnelBlueprint{
	{
		ID:          "f1",
		Name:        "The Mortgage Protection Mastery",
		Category:    "Life Insurance",
		Persona:     "New Homeowners",
		Stages:      []string{"Regional FB Hook", "Home Security Webinar", "Direct App Link"},
		Description: "A focused strategy to convert recent homebuyers by framing life insurance as the ultimate mortgage safeguard.",
	},
	{
		ID:          "f2",
		Name:        "Wealth Engine (IUL Depth)",
		Category:    "Life Insurance",
		Persona:     "High Income Accumulators",
		Stages:      []string{"LinkedIn Strategy Post", "The 3 Rules of Money PDF", "Discovery Call"},
		Description: `Deep-dive educational funnel focusing on the "And" asset (IUL) for tax-advantaged growth.`,
	},
	{
		ID:          "f3",
		Name:        "Safe Income Advantage (FIA)",
		Category:    "Annuities",
		Persona:     "Retirees (Age 60+)",
		Stages:      []string{"Volatility News Hook", "Personal Pension Video", "In-Person Review"},
		Description: "Designed for the risk-averse looking for market-proof income and the Rule of 72 benefits.",
	},
}

var landingPageBlueprints = []models.LandingPageBlueprint{
	{
		ID:          "lp1",
		Name:        "The Legacy Protector (Classic)",
		Category:    "General Life",
		Sections:    []string{"Hero: Family Security", "The Founder Story", "3-Bucket Education", "Legacy Form"},
		Description: "A clean, high-trust layout focusing on the emotional core of protection.",
	},
	{
		ID:          "lp2",
		Name:        "The IUL Wealth Builder",
		Category:    "Wealth Building",
		Sections:    []string{"Tax-Free Growth Hook", "Market Volatility Comparison", "Living Benefits Grid", "Apply Now"},
		Description: "Modern, data-driven layout for younger professionals interested in IUL.",
	},
	{
		ID:          "lp3",
		Name:        "Annuity Safety Net",
		Category:    "Retirement",
		Sections:    []string{"Market Crash Proof Hero", "Personal Pension Explainer", "Client Testimonials", "Free Review CTA"},
		Description: "Trust-heavy layout for seniors worried about their nest egg.",
	},
}

var formBlueprints = []models.FormBlueprint{
	{
		ID:          "frm1",
		Name:        "Velocity Instant Quote",
		Fields:      []string{"Full Name", "DOB", "Tobacco Status", "Coverage Amount"},
		Description: "Lightweight lead capture for Ethos/Velocity Term leads.",
	},
	{
		ID:          "frm2",
		Name:        "Full Legacy Discovery",
		Fields:      []string{"Family Size", "Mortgage Balance", "Current Assets", "Goal Ranking"},
		Description: "Comprehensive discovery form for IUL and Holistic Legacy planning.",
	},
	{
		ID:          "frm3",
		Name:        "Pension Analysis Request",
		Fields:      []string{"Retirement Year", "Current 401k Balance", "Risk Tolerance", "Desired Income"},
		Description: "Targeted form for FIA and Annuity opportunities.",
	},
}

var libraryTemplates = []models.LibraryTemplate{
	{
		ID:          "l0",
		Category:    models.LibraryLegacyEstate,
		SubCategory: "Legacy Protection",
		Title:       "The Importance of Securing Legacy",
		Description: "A high-impact strategy explaining how life insurance acts as the ultimate bedrock for a family's future.",
		Structure:   "Open with the concept that a legacy isn't just what you leave FOR someone, but what you leave IN them. Transition to the financial tools (IUL/Term) that ensure the mission continues. Emphasize preparation over fear. CTA: Start building your legacy blueprint today.",
		Hashtags:    []string{"LegacyBuilding", "FamilyFirst", "TheBeatGoesOn", "LatimoreLegacy"},
	},
	{
		ID:          "l1",
		Category:    models.LibraryLifeInsurance,
		SubCategory: "Mortgage Protection",
		Title:       "Home Security Beyond the Locks",
		Description: "A compelling post explaining why life insurance is the ultimate mortgage safety net.",
		Structure:   `Start by asking homeowners what their biggest monthly expense is. Transition to the risk of losing income. Explain how mortgage protection works as a specific term policy. Call to action: "Ensure your family keeps the keys, no matter what."`,
		Hashtags:    []string{"MortgageProtection", "Homeowners", "PeaceOfMind"},
	},
	{
		ID:          "l2",
		Category:    models.LibraryLifeInsurance,
		SubCategory: "IUL",
		Title:       `The "And" Asset Strategy (Builder Plus 4)`,
		Description: "Explaining Indexed Universal Life for both protection and supplemental retirement using the North American Builder Plus 4.",
		Structure:   `Focus on the "Tax-Free" bucket. Compare traditional savings to IUL growth potential with a 0% floor. Emphasize the death benefit AND the living benefits. End with a legacy-building prompt. Reference IRS codes 7702A, 72E, and 101A.`,
		Hashtags:    []string{"IUL", "TaxFreeRetirement", "WealthBuilding"},
	},
	{
		ID:          "l3",
		Category:    models.LibraryAnnuities,
		SubCategory: "FIA",
		Title:       "Safe Income Advantage (Rule of 72)",
		Description: "Breaking down Fixed Indexed Annuities (FIA) for retirees worried about market volatility, highlighting the F&G Safe Income Advantage.",
		Structure:   `Acknowledge the stress of market swings. Introduce the "Personal Pension". Detail the Rule of 72 benefit: 7.2% compounded roll-up rate that doubles the income base every 10 years if deferred.`,
		Hashtags:    []string{"Annuities", "RetirementPlanning", "FinancialSafety"},
	},
	{
		ID:          "l4",
		Category:    models.LibraryLifeInsurance,
		SubCategory: "Final Expense",
		Title:       "A Gift of Love, Not a Burden",
		Description: "Soft and empathetic approach to Final Expense coverage for seniors.",
		Structure:   "Open with a warm family memory. Pivot to the reality of funeral costs. Explain how a small policy removes the financial burden from children. Tagline: #TheBeatGoesOn.",
		Hashtags:    []string{"FinalExpense", "Seniors", "LegacyLove"},
	},
	{
		ID:          "l5",
		Category:    models.LibraryBusinessProtection,
		SubCategory: "Key Person",
		Title:       "Protecting the Leadership Beat",
		Description: "Business insurance for key employees and partners, specifically for school districts and SMEs.",
		Structure:   "Ask a superintendent or business owner what happens if a vital leader is lost. Discuss transition costs and continuity. Propose Key Person Insurance as a stabilizer for the organization.",
		Hashtags:    []string{"SchoolDistricts", "KeyPersonInsurance", "ContinuityPlanning"},
	},
	{
		ID:          "l6",
		Category:    models.LibraryLifeInsurance,
		SubCategory: "Ethos Velocity",
		Title:       "Protection in 10 Minutes",
		Description: `Highlighting the "Velocity Engine" via the Ethos platform for quick term life needs.`,
		Structure:   "Focus on speed and simplicity. 10-minute online application, no medical exams for many, instant decisions. Ideal for busy young families in Central PA.",
		Hashtags:    []string{"Ethos", "QuickLifeInsurance", "ModernProtection"},
	},
}

// BuiltinTemplates returns the post templates that cannot be deleted.
func BuiltinTemplates() []models.ContentTemplate {
	return append([]models.ContentTemplate(nil), builtinTemplates...)
}

// IsBuiltin reports whether id belongs to a built-in template.
func IsBuiltin(id string) bool {
	for _, t := range builtinTemplates {
		if t.ID == id {
			return true
		}
	}
	return false
}

func FunnelBlueprints() []models.FunnelBlueprint {
	return append([]models.FunnelBlueprint(nil), funnelBlueprints...)
}

func LandingPageBlueprints() []models.LandingPageBlueprint {
	return append([]models.LandingPageBlueprint(nil), landingPageBlueprints...)
}

func FormBlueprints() []models.FormBlueprint {
	return append([]models.FormBlueprint(nil), formBlueprints...)
}

func LibraryTemplates() []models.LibraryTemplate {
	return append([]models.LibraryTemplate(nil), libraryTemplates...)
}

// FindLibraryTemplate looks up a library template by id.
func FindLibraryTemplate(id string) (models.LibraryTemplate, bool) {
	for _, t := range libraryTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return models.LibraryTemplate{}, false
}

// SearchLibrary filters library templates. query matches title, description
// or subcategory case-insensitively; category "" or "All" matches any.
func SearchLibrary(query, category string) []models.LibraryTemplate {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.LibraryTemplate, 0, len(libraryTemplates))
	for _, t := range libraryTemplates {
		if category != "" && !strings.EqualFold(category, "All") && !strings.EqualFold(string(t.Category), category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.SubCategory), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}
