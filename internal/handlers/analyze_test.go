package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"imagesight-backend/internal/models"
	"imagesight-backend/internal/providers"
	"imagesight-backend/internal/services"
)

type stubAnalyzer struct {
	result *models.AnalyzeImageResult
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ models.AnalyzeImageRequest) (*models.AnalyzeImageResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubHistoryWriter struct {
	records []*models.AnalysisRecord
	err     error
}

func (s *stubHistoryWriter) Create(_ context.Context, rec *models.AnalysisRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func TestAnalyze_Success(t *testing.T) {
	analyzer := &stubAnalyzer{
		result: &models.AnalyzeImageResult{
			Description:  "A red bicycle leaning against a brick wall.",
			Settings:     models.DefaultSettings(),
			ProcessingMs: 1234,
		},
	}
	handler := NewAnalyzeHandler(analyzer, nil)

	payload := `{"imageUrl":"https://example.com/bike.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-image", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body["success"])
	}
	if body["description"] != "A red bicycle leaning against a brick wall." {
		t.Errorf("unexpected description: %v", body["description"])
	}
	if body["processingTime"] != float64(1234) {
		t.Errorf("unexpected processingTime: %v", body["processingTime"])
	}
	if _, ok := body["settings"].(map[string]interface{}); !ok {
		t.Errorf("expected settings object, got %T", body["settings"])
	}
}

func TestAnalyze_InvalidBody(t *testing.T) {
	handler := NewAnalyzeHandler(&stubAnalyzer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-image", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation error",
			err:        &services.ValidationError{Message: "Image URL is required"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Image URL is required",
		},
		{
			name:       "missing key",
			err:        &services.UnauthorizedError{Message: "OPENAI API key is required"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "OPENAI API key is required",
		},
		{
			name:       "safety block",
			err:        &providers.SafetyBlockError{Message: "Image was blocked by safety filters"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Image was blocked by safety filters",
		},
		{
			name:       "upstream failure keeps status",
			err:        &providers.UpstreamError{Status: http.StatusForbidden, Message: "OpenAI API failed: 403 - forbidden"},
			wantStatus: http.StatusForbidden,
			wantMsg:    "OpenAI API failed: 403 - forbidden",
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Server error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAnalyzeHandler(&stubAnalyzer{err: tt.err}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-image", strings.NewReader(`{"imageUrl":"x"}`))
			rec := httptest.NewRecorder()
			handler.Analyze(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantMsg {
				t.Errorf("expected %q, got %v", tt.wantMsg, body["error"])
			}
		})
	}
}

func TestAnalyze_ContractErrorCarriesDebug(t *testing.T) {
	handler := NewAnalyzeHandler(&stubAnalyzer{
		err: &providers.ContractError{
			Message: "Received unexpected response format from Gemini API",
			Debug:   map[string]interface{}{"hasCandidates": false},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-image", strings.NewReader(`{"imageUrl":"x"}`))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	debug, ok := body["debug"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected debug object, got %T", body["debug"])
	}
	if debug["hasCandidates"] != false {
		t.Errorf("debug payload lost: %v", debug)
	}
}

func TestAnalyze_RecordsHistoryWithoutAPIKeys(t *testing.T) {
	settings := models.DefaultSettings()
	settings.APIKeys = &models.APIKeys{OpenAI: "sk-secret1234567890abc"}
	analyzer := &stubAnalyzer{
		result: &models.AnalyzeImageResult{
			Description:  "A cat.",
			Settings:     settings,
			ProcessingMs: 50,
		},
	}
	history := &stubHistoryWriter{}
	handler := NewAnalyzeHandler(analyzer, history)

	payload := `{"imageUrl":"https://example.com/cat.jpg","deviceId":"dev-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-image", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(history.records) != 1 {
		t.Fatalf("expected one history record, got %d", len(history.records))
	}
	saved := history.records[0]
	if saved.DeviceID != "dev-1" {
		t.Errorf("unexpected device id: %s", saved.DeviceID)
	}
	if saved.ImageHash == "" || len(saved.ImageHash) != 64 {
		t.Errorf("expected sha256 hex image hash, got %q", saved.ImageHash)
	}
	if strings.Contains(string(saved.SettingsJSON), "sk-secret") {
		t.Errorf("API key leaked into history: %s", saved.SettingsJSON)
	}
}

func TestAnalyze_HistorySkippedWithoutDeviceID(t *testing.T) {
	history := &stubHistoryWriter{}
	handler := NewAnalyzeHandler(&stubAnalyzer{
		result: &models.AnalyzeImageResult{Description: "A dog.", Settings: models.DefaultSettings()},
	}, history)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-image", strings.NewReader(`{"imageUrl":"x"}`))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(history.records) != 0 {
		t.Errorf("history should be skipped without a device id")
	}
}

func TestAnalyze_HistoryFailureDoesNotFailRequest(t *testing.T) {
	history := &stubHistoryWriter{err: errors.New("insert failed")}
	handler := NewAnalyzeHandler(&stubAnalyzer{
		result: &models.AnalyzeImageResult{Description: "A dog.", Settings: models.DefaultSettings()},
	}, history)

	payload := `{"imageUrl":"x","deviceId":"dev-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-image", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite history failure, got %d", rec.Code)
	}
}
