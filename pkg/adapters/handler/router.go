package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, content ports.ContentService, submissions ports.SubmissionService, chat ports.ChatService, sessions *services.Sessions) http.Handler {
	// Initialize Handlers
	h := NewHTTPHandler(content, submissions, chat)
	ah := NewAdminHandler()

	// Initialize Middleware
	mw := NewMiddleware(cfg, sessions)

	// Initialize Auth Handler
	authHandler := NewAuthHandler(mw, sessions)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /api/v1/content/hero", h.Hero)
	mux.HandleFunc("GET /api/v1/content/about", h.About)
	mux.HandleFunc("GET /api/v1/services", h.Services)
	mux.HandleFunc("GET /api/v1/projects", h.Projects)
	mux.HandleFunc("GET /api/v1/projects/{id}", h.Project)
	mux.HandleFunc("GET /api/v1/projects/categories", h.Categories)
	mux.HandleFunc("GET /api/v1/experience", h.Experience)
	mux.HandleFunc("GET /api/v1/skills", h.Skills)
	mux.HandleFunc("GET /api/v1/booking", h.Booking)
	mux.HandleFunc("POST /api/v1/messages", h.CreateMessage)
	mux.HandleFunc("POST /api/v1/appointments", h.CreateAppointment)
	mux.HandleFunc("POST /api/v1/chat", h.Chat)

	mux.HandleFunc("POST /admin/session", authHandler.OpenSession)
	mux.HandleFunc("POST /admin/unlock", authHandler.Unlock)

	// Protected Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /admin/api/content", ah.Content)
	protectedMux.HandleFunc("POST /admin/api/reload", ah.Reload)
	protectedMux.HandleFunc("GET /admin/api/messages", ah.Messages)
	protectedMux.HandleFunc("GET /admin/api/appointments", ah.Appointments)

	protectedMux.HandleFunc("GET /admin/api/{kind}", ah.GetEditor)
	protectedMux.HandleFunc("POST /admin/api/{kind}/draft", ah.BeginCreate)
	protectedMux.HandleFunc("POST /admin/api/{kind}/{id}/draft", ah.BeginEdit)
	protectedMux.HandleFunc("PATCH /admin/api/{kind}/draft", ah.UpdateDraft)
	protectedMux.HandleFunc("DELETE /admin/api/{kind}/draft", ah.CancelDraft)
	protectedMux.HandleFunc("POST /admin/api/{kind}/draft/commit", ah.Commit)
	protectedMux.HandleFunc("DELETE /admin/api/{kind}/{id}", ah.Delete)

	protectedMux.HandleFunc("POST /admin/api/projects/draft/gallery", ah.AddGalleryURL)
	protectedMux.HandleFunc("DELETE /admin/api/projects/draft/gallery/{index}", ah.RemoveGalleryURL)

	mux.Handle("/admin/api/", mw.AdminMiddleware(protectedMux))

	return RequestLogger(mux)
}
