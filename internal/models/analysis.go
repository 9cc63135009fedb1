package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AnalyzeImageRequest struct {
	ImageURL string    `json:"imageUrl"`
	Settings *Settings `json:"settings"`
	DeviceID string    `json:"deviceId,omitempty"`
}

type AnalyzeImageResult struct {
	Description  string   `json:"description"`
	Settings     Settings `json:"settings"`
	ProcessingMs int64    `json:"processingTime"`
}

type SaveSettingsRequest struct {
	DeviceID string          `json:"deviceId" validate:"required"`
	Settings json.RawMessage `json:"settings" validate:"required"`
}

type ValidateKeyRequest struct {
	Key      string `json:"key"`
	Provider string `json:"provider" validate:"required"`
}

// AnalysisRecord is one row of per-device analysis history.
type AnalysisRecord struct {
	ID           uuid.UUID       `json:"id"`
	DeviceID     string          `json:"deviceId"`
	ImageHash    string          `json:"imageHash"`
	Description  string          `json:"description"`
	SettingsJSON json.RawMessage `json:"settings"`
	Model        string          `json:"model"`
	ProcessingMs int64           `json:"processingTime"`
	CreatedAt    time.Time       `json:"createdAt"`
}
