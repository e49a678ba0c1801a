// ABOUTME: Carrier asset vault over latimore.assets.v1
// ABOUTME: Stores uploaded brochures as base64 and turns them into post ideas
package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/lifehub/models"
	"github.com/harperreed/lifehub/store"
	"go.uber.org/zap"
)

var (
	ErrNoFileData      = errors.New("asset has no file data; upload the file to analyze it")
	ErrUnsupportedType = errors.New("only PDF documents and images can be uploaded")
	ErrTooLarge        = errors.New("file is larger than the 20 MB inline limit")
	ErrNotFound        = errors.New("asset not found")
)

// MaxUploadBytes is the inline payload ceiling for analysis requests.
const MaxUploadBytes = 20 << 20

const (
	TypePDF          = "PDF Document"
	TypeProductImage = "Product Image"
	ManualCarrier    = "Manual Upload"
	uploadDateLayout = "2006-01-02"
)

// MockAssets are the demo brochures shown before anything is uploaded. They
// carry no file data and cannot be analyzed.
func MockAssets() []models.CarrierAsset {
	return []models.CarrierAsset{
		{ID: "1", Name: "Builder Plus 4 IUL Brochure", Carrier: "North American", Type: "IUL", UploadDate: "2024-05-12"},
		{ID: "2", Name: "Safe Income Advantage Rider", Carrier: "F&G", Type: "Annuity", UploadDate: "2024-05-10"},
		{ID: "3", Name: "Ethos Term Life Spec Sheet", Carrier: "Ethos", Type: "Term", UploadDate: "2024-05-15"},
	}
}

// Analyzer turns an uploaded file into post ideas.
type Analyzer interface {
	GenerateContentFromAsset(ctx context.Context, fileBase64, mimeType, platform string) ([]models.ContentIdea, error)
}

type Vault struct {
	state  *store.State[[]models.CarrierAsset]
	logger *zap.Logger
}

func NewVault(state *store.State[[]models.CarrierAsset], logger *zap.Logger) *Vault {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Vault{state: state, logger: logger}
}

func (v *Vault) List() []models.CarrierAsset {
	return v.state.Get()
}

func (v *Vault) Find(id string) (models.CarrierAsset, bool) {
	for _, a := range v.state.Get() {
		if a.ID == id {
			return a, true
		}
	}
	return models.CarrierAsset{}, false
}

// MimeTypeFor guesses a mime type from the file extension.
func MimeTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return ""
	}
}

// Upload stores a file at the front of the vault.
func (v *Vault) Upload(name, mimeType string, data []byte, now time.Time) (models.CarrierAsset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CarrierAsset{}, models.Required("name")
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	isPDF := strings.Contains(mimeType, "pdf")
	if !isPDF && !strings.HasPrefix(mimeType, "image/") {
		return models.CarrierAsset{}, fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
	if len(data) == 0 {
		return models.CarrierAsset{}, ErrNoFileData
	}
	if len(data) > MaxUploadBytes {
		return models.CarrierAsset{}, ErrTooLarge
	}

	asset := models.CarrierAsset{
		ID:         uuid.NewString(),
		Name:       name,
		Carrier:    ManualCarrier,
		Type:       TypeProductImage,
		UploadDate: now.Format(uploadDateLayout),
		FileData:   base64.StdEncoding.EncodeToString(data),
		MimeType:   mimeType,
	}
	if isPDF {
		asset.Type = TypePDF
	}

	v.state.Update(func(list []models.CarrierAsset) []models.CarrierAsset {
		return append([]models.CarrierAsset{asset}, list...)
	})
	v.logger.Info("asset uploaded", zap.String("id", asset.ID), zap.String("mime", mimeType), zap.Int("bytes", len(data)))
	return asset, nil
}

// Remove deletes an asset. Unknown ids are a no-op.
func (v *Vault) Remove(id string) bool {
	removed := false
	v.state.Apply(func(list []models.CarrierAsset) ([]models.CarrierAsset, bool) {
		out := make([]models.CarrierAsset, 0, len(list))
		for _, a := range list {
			if a.ID == id {
				removed = true
				continue
			}
			out = append(out, a)
		}
		return out, removed
	})
	return removed
}

// Analyze sends an uploaded asset to the analyzer for platform.
func (v *Vault) Analyze(ctx context.Context, analyzer Analyzer, id, platform string) ([]models.ContentIdea, error) {
	asset, ok := v.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if asset.FileData == "" || asset.MimeType == "" {
		return nil, ErrNoFileData
	}
	ideas, err := analyzer.GenerateContentFromAsset(ctx, asset.FileData, asset.MimeType, platform)
	if err != nil {
		v.logger.Warn("asset analysis failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to analyze %s: %w", asset.Name, err)
	}
	return ideas, nil
}
