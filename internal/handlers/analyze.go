package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"

	"imagesight-backend/internal/models"
)

type imageAnalyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeImageRequest) (*models.AnalyzeImageResult, error)
}

type historyWriter interface {
	Create(ctx context.Context, rec *models.AnalysisRecord) error
}

type AnalyzeHandler struct {
	analyzer imageAnalyzer
	history  historyWriter
}

// NewAnalyzeHandler wires the orchestrator and an optional history store;
// history may be nil when the database is unavailable.
func NewAnalyzeHandler(analyzer imageAnalyzer, history historyWriter) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, history: history}
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.recordHistory(r.Context(), req, result)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"description":    result.Description,
		"settings":       result.Settings,
		"processingTime": result.ProcessingMs,
	})
}

// recordHistory is best-effort: a failed insert never fails the analysis.
func (h *AnalyzeHandler) recordHistory(ctx context.Context, req models.AnalyzeImageRequest, result *models.AnalyzeImageResult) {
	if h.history == nil || req.DeviceID == "" {
		return
	}

	// API keys never reach the history table.
	stored := result.Settings
	stored.APIKeys = nil
	settingsJSON, _ := json.Marshal(stored)

	hash := sha256.Sum256([]byte(req.ImageURL))

	rec := &models.AnalysisRecord{
		DeviceID:     req.DeviceID,
		ImageHash:    hex.EncodeToString(hash[:]),
		Description:  result.Description,
		SettingsJSON: settingsJSON,
		Model:        result.Settings.Model,
		ProcessingMs: result.ProcessingMs,
	}

	if err := h.history.Create(ctx, rec); err != nil {
		log.Printf("failed to record analysis history for device %s: %v", req.DeviceID, err)
	}
}
