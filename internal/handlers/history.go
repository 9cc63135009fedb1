package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"imagesight-backend/internal/models"
)

type historyLister interface {
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]*models.AnalysisRecord, error)
}

type HistoryHandler struct {
	history historyLister
}

func NewHistoryHandler(history historyLister) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "Device ID is required")
		return
	}

	if h.history == nil {
		writeErrorCode(w, http.StatusInternalServerError, "History store is unavailable", "DB_INIT_ERROR")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	records, err := h.history.ListByDevice(r.Context(), deviceID, limit)
	if err != nil {
		log.Printf("failed to list history for device %s: %v", deviceID, err)
		writeError(w, http.StatusInternalServerError, "Server error while loading history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": records,
	})
}
