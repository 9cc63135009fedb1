package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"imagesight-backend/internal/handlers"
	"imagesight-backend/internal/middleware"
)

func New(
	analyzeHandler *handlers.AnalyzeHandler,
	settingsHandler *handlers.SettingsHandler,
	historyHandler *handlers.HistoryHandler,
	uploadHandler *handlers.UploadHandler,
	keyHandler *handlers.KeyHandler,
	storagePath string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze-image", analyzeHandler.Analyze)

		r.Get("/settings", settingsHandler.Get)
		r.Post("/settings", settingsHandler.Save)

		r.Get("/history", historyHandler.List)

		r.Post("/upload", uploadHandler.Upload)
		r.Post("/validate-key", keyHandler.Validate)
	})

	// Uploaded images are served back so analyze-image can reference them.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(storagePath)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}
