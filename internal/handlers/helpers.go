package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"imagesight-backend/internal/providers"
	"imagesight-backend/internal/services"
)

// Response bodies use the flat {error, debug?, code?} contract the existing
// web client expects.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

func writeErrorCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, map[string]interface{}{"error": message, "code": code})
}

func writeErrorDebug(w http.ResponseWriter, status int, message string, debug map[string]interface{}) {
	body := map[string]interface{}{"error": message}
	if debug != nil {
		body["debug"] = debug
	}
	writeJSON(w, status, body)
}

// handleServiceError translates the error taxonomy into HTTP responses.
// Anything unrecognized becomes a generic 500 with no internal detail.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *services.ValidationError
	var unauthorized *services.UnauthorizedError
	var upstream *providers.UpstreamError
	var blocked *providers.SafetyBlockError
	var contract *providers.ContractError

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &unauthorized):
		writeError(w, http.StatusUnauthorized, unauthorized.Message)
	case errors.As(err, &blocked):
		writeError(w, http.StatusBadRequest, blocked.Message)
	case errors.As(err, &contract):
		writeErrorDebug(w, http.StatusInternalServerError, contract.Message, contract.Debug)
	case errors.As(err, &upstream):
		writeError(w, upstream.Status, upstream.Message)
	default:
		log.Printf("unexpected error handling %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Server error occurred")
	}
}
