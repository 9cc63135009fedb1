package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"imagesight-backend/internal/models"
)

type settingsStore interface {
	Get(ctx context.Context, deviceID string) (json.RawMessage, error)
	Upsert(ctx context.Context, deviceID string, settings json.RawMessage) error
}

type SettingsHandler struct {
	store    settingsStore
	validate *validator.Validate
}

// NewSettingsHandler takes a nil store when the database failed to
// initialize; every request then reports DB_INIT_ERROR instead of the
// server refusing to start.
func NewSettingsHandler(store settingsStore) *SettingsHandler {
	return &SettingsHandler{
		store:    store,
		validate: validator.New(),
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "Device ID is required")
		return
	}

	if h.store == nil {
		writeErrorCode(w, http.StatusInternalServerError, "Settings store is unavailable", "DB_INIT_ERROR")
		return
	}

	raw, err := h.store.Get(r.Context(), deviceID)
	if err != nil {
		log.Printf("failed to load settings for device %s: %v", deviceID, err)
		writeError(w, http.StatusInternalServerError, "Server error while loading settings")
		return
	}

	if raw == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"settings": nil,
		})
		return
	}

	// The blob is stored opaquely; defaults are filled here on the way out
	// so older rows stay readable as the settings schema grows.
	var settings models.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		log.Printf("corrupt settings blob for device %s: %v", deviceID, err)
		writeError(w, http.StatusInternalServerError, "Server error while loading settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings.WithDefaults(),
	})
}

func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		message := "Invalid request body"
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			switch fieldErrors[0].Field() {
			case "DeviceID":
				message = "Device ID is required"
			case "Settings":
				message = "Settings are required"
			}
		}
		writeError(w, http.StatusBadRequest, message)
		return
	}

	// A JSON null passes the required check but is still no settings.
	if string(req.Settings) == "null" {
		writeError(w, http.StatusBadRequest, "Settings are required")
		return
	}

	if h.store == nil {
		writeErrorCode(w, http.StatusInternalServerError, "Settings store is unavailable", "DB_INIT_ERROR")
		return
	}

	if err := h.store.Upsert(r.Context(), req.DeviceID, req.Settings); err != nil {
		log.Printf("failed to save settings for device %s: %v", req.DeviceID, err)
		writeError(w, http.StatusInternalServerError, "Server error while saving settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Settings saved successfully",
	})
}
