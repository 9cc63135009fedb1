package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantValid bool
	}{
		{
			name:      "valid openai key",
			payload:   `{"provider":"openai","key":"sk-1234567890abcdefghij"}`,
			wantValid: true,
		},
		{
			name:      "wrong prefix",
			payload:   `{"provider":"openai","key":"pk-1234567890abcdefghij"}`,
			wantValid: false,
		},
		{
			name:      "masked key rejected",
			payload:   `{"provider":"gemini","key":"AIzaSyAb****90cd"}`,
			wantValid: false,
		},
		{
			name:      "missing key",
			payload:   `{"provider":"zai","key":""}`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewKeyHandler()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-key", strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()
			handler.Validate(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["valid"] != tt.wantValid {
				t.Errorf("expected valid=%v, got %v (%v)", tt.wantValid, body["valid"], body["message"])
			}
			if msg, _ := body["message"].(string); !tt.wantValid && msg == "" {
				t.Errorf("invalid key should carry a message")
			}
		})
	}
}

func TestValidateKey_MissingProvider(t *testing.T) {
	handler := NewKeyHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-key", strings.NewReader(`{"key":"sk-x"}`))
	rec := httptest.NewRecorder()
	handler.Validate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
