// ABOUTME: Data models for legacy funnels, connectors and carrier assets
// ABOUTME: Demo entities backed by simulated behavior rather than live integrations
package models

type FunnelStatus string

const (
	FunnelDraft  FunnelStatus = "Draft"
	FunnelActive FunnelStatus = "Active"
)

// FunnelStageCount is the fixed number of stages in a generated funnel.
const FunnelStageCount = 3

type FunnelStage struct {
	Name      string `json:"name"`
	Strategy  string `json:"strategy"`
	AssetCopy string `json:"assetCopy"`
}

// Funnel is a named three-stage strategy produced by the AI gateway.
type Funnel struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Goal    string        `json:"goal"`
	Persona string        `json:"persona"`
	Stages  []FunnelStage `json:"stages"`
	Status  FunnelStatus  `json:"status"`
}

type ConnectorCategory string

const (
	ConnectorAgency    ConnectorCategory = "Agency"
	ConnectorCarrier   ConnectorCategory = "Carrier"
	ConnectorSocial    ConnectorCategory = "Social"
	ConnectorAnalytics ConnectorCategory = "Analytics"
)

// Connector describes an integration. No external call is ever made for it.
type Connector struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Category    ConnectorCategory `json:"category"`
	IsConnected bool              `json:"isConnected"`
	LastSync    string            `json:"lastSync,omitempty"`
	Color       string            `json:"color"`
	BrandColor  string            `json:"brandColor,omitempty"`
	AgentID     string            `json:"agentId,omitempty"`
}

// CarrierAsset is an uploaded brochure or product image. FileData is base64.
type CarrierAsset struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Carrier    string `json:"carrier"`
	Type       string `json:"type"`
	UploadDate string `json:"uploadDate"`
	FileData   string `json:"fileData,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
}
