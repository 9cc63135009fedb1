package handlers

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 * 1024 * 1024 // 10MB

type UploadHandler struct {
	storagePath string
}

func NewUploadHandler(storagePath string) *UploadHandler {
	return &UploadHandler{storagePath: storagePath}
}

// Upload accepts one multipart image file, stores it under a generated
// name, and returns the URL the analyze endpoint can reference it by.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File size exceeds 10MB limit")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	// Magic-byte sniff; the client-supplied content type is not trusted.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	buf = buf[:n]

	mimeType := http.DetectContentType(buf)
	if !strings.HasPrefix(mimeType, "image/") {
		writeError(w, http.StatusUnsupportedMediaType, "Only image files are supported")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	if err := os.MkdirAll(h.storagePath, 0o755); err != nil {
		log.Printf("failed to create storage directory %s: %v", h.storagePath, err)
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	name := uuid.New().String() + extensionFor(mimeType, header.Filename)
	dst, err := os.Create(filepath.Join(h.storagePath, name))
	if err != nil {
		log.Printf("failed to create upload file: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("failed to write upload file: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     "/uploads/" + name,
	})
}

func extensionFor(mimeType, filename string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := filepath.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	return ".img"
}
