package handlers

import (
	"encoding/json"
	"net/http"

	"imagesight-backend/internal/apikeys"
	"imagesight-backend/internal/models"
)

// KeyHandler backs the settings UI's live key feedback. It only inspects
// key format; it never calls a provider and never stores anything.
type KeyHandler struct{}

func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

func (h *KeyHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Provider == "" {
		writeError(w, http.StatusBadRequest, "Provider is required")
		return
	}

	writeJSON(w, http.StatusOK, apikeys.ValidateWithMessage(req.Key, req.Provider))
}
