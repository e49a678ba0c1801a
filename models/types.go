// ABOUTME: Data models for CRM clients and the fixed sales pipeline
// ABOUTME: Defines Client, ClientSnapshot, PipelineStage and classification enums
package models

import (
	"strconv"
	"strings"
	"time"
)

// InteractionLayout is the display format used for Client.LastInteraction.
const InteractionLayout = "Jan 2, 2006"

// legacyInteractionLayout matches records imported from older exports.
const legacyInteractionLayout = "Jan 02 2006"

// PipelineStage is one label from the fixed 10-stage sales progression.
type PipelineStage string

const (
	StageNewLead           PipelineStage = "New Lead"
	StageContacted         PipelineStage = "Contacted"
	StageBookedCall        PipelineStage = "Booked Call"
	StageDiscoveryComplete PipelineStage = "Discovery Complete"
	StageOptionsPresented  PipelineStage = "Options Presented"
	StageAppSubmitted      PipelineStage = "App Submitted"
	StageUnderwriting      PipelineStage = "Underwriting"
	StageIssued            PipelineStage = "Issued / Delivered"
	StageInForce           PipelineStage = "In Force + Review"
	StageLost              PipelineStage = "Lost / Not Proceeding"
)

var pipelineStages = []PipelineStage{
	StageNewLead,
	StageContacted,
	StageBookedCall,
	StageDiscoveryComplete,
	StageOptionsPresented,
	StageAppSubmitted,
	StageUnderwriting,
	StageIssued,
	StageInForce,
	StageLost,
}

// Stages returns the pipeline in display order. The slice is a copy.
func Stages() []PipelineStage {
	out := make([]PipelineStage, len(pipelineStages))
	copy(out, pipelineStages)
	return out
}

// Index returns the stage's position in the pipeline, or -1 if unknown.
func (s PipelineStage) Index() int {
	for i, stage := range pipelineStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the 10 pipeline stages.
func (s PipelineStage) Valid() bool {
	return s.Index() >= 0
}

// ParseStage resolves a stage label case-insensitively. It also accepts the
// 1-based pipeline position ("1".."10") so the CLI can take short input.
func ParseStage(input string) (PipelineStage, bool) {
	in := strings.TrimSpace(input)
	for i, stage := range pipelineStages {
		if strings.EqualFold(string(stage), in) {
			return stage, true
		}
		if in == strconv.Itoa(i+1) {
			return stage, true
		}
	}
	return "", false
}

type County string

const (
	CountySchuylkill     County = "Schuylkill"
	CountyLuzerne        County = "Luzerne"
	CountyNorthumberland County = "Northumberland"
	CountyOther          County = "Other"
)

type LeadSource string

const (
	SourceWebsite        LeadSource = "Website"
	SourceReferral       LeadSource = "Referral"
	SourceCommunity      LeadSource = "Community"
	SourceSchoolDistrict LeadSource = "School District"
	SourceSocial         LeadSource = "Social"
)

type ProductType string

const (
	ProductTerm      ProductType = "Term"
	ProductIUL       ProductType = "IUL"
	ProductFE        ProductType = "FE"
	ProductFIA       ProductType = "FIA"
	ProductBusiness  ProductType = "Business"
	ProductWholeLife ProductType = "Whole Life"
	ProductNone      ProductType = "None"
)

// Client is one lead or policyholder.
type Client struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Status          PipelineStage   `json:"status"`
	County          County          `json:"county"`
	LeadSource      LeadSource      `json:"leadSource"`
	ProductInterest ProductType     `json:"productInterest"`
	Household       string          `json:"household"`
	LastInteraction string          `json:"lastInteraction"`
	Goals           []string        `json:"goals"`
	Notes           string          `json:"notes"`
	Carrier         string          `json:"carrier,omitempty"`
	MonthlyPremium  *float64        `json:"monthlyPremium,omitempty"`
	AppDate         string          `json:"appDate,omitempty"`
	IssueDate       string          `json:"issueDate,omitempty"`
	ReviewMonth     string          `json:"reviewMonth,omitempty"`
	Snapshot        *ClientSnapshot `json:"snapshot,omitempty"`
}

// LastInteractionTime parses LastInteraction. ok is false for blank or
// free-form values.
func (c Client) LastInteractionTime() (t time.Time, ok bool) {
	v := strings.TrimSpace(c.LastInteraction)
	for _, layout := range []string{InteractionLayout, legacyInteractionLayout} {
		if parsed, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ClientSnapshot is the AI-derived summary attached to a client.
type ClientSnapshot struct {
	WhoTheyAre       string   `json:"whoTheyAre"`
	FamilyContext    []string `json:"familyContext"`
	FinancialPicture []string `json:"financialPicture"`
	TopGoals         []string `json:"topGoals"`
	RiskThemes       []string `json:"riskThemes"`
	Summary          string   `json:"summary"`
}

// ReviewScript is the talk track for an annual policy review call.
type ReviewScript struct {
	Opening            string   `json:"opening"`
	DiscoveryQuestions []string `json:"discoveryQuestions"`
	StrategicPivot     string   `json:"strategicPivot"`
	Closing            string   `json:"closing"`
}

// Counties lists the service-area classifications.
func Counties() []County {
	return []County{CountySchuylkill, CountyLuzerne, CountyNorthumberland, CountyOther}
}

func (c County) Valid() bool {
	for _, v := range Counties() {
		if v == c {
			return true
		}
	}
	return false
}

func LeadSources() []LeadSource {
	return []LeadSource{SourceWebsite, SourceReferral, SourceCommunity, SourceSchoolDistrict, SourceSocial}
}

func (s LeadSource) Valid() bool {
	for _, v := range LeadSources() {
		if v == s {
			return true
		}
	}
	return false
}

func ProductTypes() []ProductType {
	return []ProductType{ProductTerm, ProductIUL, ProductFE, ProductFIA, ProductBusiness, ProductWholeLife, ProductNone}
}

func (p ProductType) Valid() bool {
	for _, v := range ProductTypes() {
		if v == p {
			return true
		}
	}
	return false
}
