package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
)

// AdminHandler serves the editor API. Every route runs behind
// AdminMiddleware, so the console is always present and unlocked.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

func kindFrom(r *http.Request) (domain.Kind, error) {
	return domain.ParseKind(r.PathValue("kind"))
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

// editorOp runs op for the kind in the path and answers with that editor's
// state.
func (h *AdminHandler) editorOp(w http.ResponseWriter, r *http.Request, status int, op func(c *services.Console, kind domain.Kind) error) {
	console := consoleFrom(r.Context())
	kind, err := kindFrom(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if opErr := op(console, kind); opErr != nil {
		// The editor state carries the inline notice and the kept draft.
		state, err := console.EditorState(kind)
		if err != nil {
			writeServiceError(w, r, opErr)
			return
		}
		code := statusFor(opErr)
		msg := opErr.Error()
		if code == http.StatusInternalServerError {
			logrus.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).WithError(opErr).Error("editor write failed")
			msg = "store write failed"
		}
		writeJSON(w, code, map[string]any{"error": msg, "editor": state})
		return
	}
	state, err := console.EditorState(kind)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, status, state)
}

// Content returns every editor and both submission lists at once.
func (h *AdminHandler) Content(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, consoleFrom(r.Context()).Snapshot())
}

func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	console := consoleFrom(r.Context())
	if err := console.Reload(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, console.Snapshot())
}

func (h *AdminHandler) GetEditor(w http.ResponseWriter, r *http.Request) {
	h.editorOp(w, r, http.StatusOK, func(*services.Console, domain.Kind) error { return nil })
}

func (h *AdminHandler) BeginCreate(w http.ResponseWriter, r *http.Request) {
	h.editorOp(w, r, http.StatusCreated, func(c *services.Console, kind domain.Kind) error {
		return c.BeginCreate(kind)
	})
}

func (h *AdminHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.editorOp(w, r, http.StatusOK, func(c *services.Console, kind domain.Kind) error {
		return c.BeginEdit(kind, id)
	})
}

type fieldUpdate struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

func (h *AdminHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req fieldUpdate
	if err := decodeBody(w, r, &req); err != nil || req.Field == "" {
		writeBodyError(w, err)
		return
	}
	h.editorOp(w, r, http.StatusOK, func(c *services.Console, kind domain.Kind) error {
		return c.UpdateDraftField(kind, req.Field, req.Value)
	})
}

func (h *AdminHandler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	h.editorOp(w, r, http.StatusOK, func(c *services.Console, kind domain.Kind) error {
		return c.CancelDraft(kind)
	})
}

// Commit saves the draft. A failed save answers with the error; the draft
// stays open for another try.
func (h *AdminHandler) Commit(w http.ResponseWriter, r *http.Request) {
	h.editorOp(w, r, http.StatusOK, func(c *services.Console, kind domain.Kind) error {
		return c.Commit(r.Context(), kind)
	})
}

// Delete removes one item of a content kind, or one visitor submission.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	console := consoleFrom(r.Context())
	id := r.PathValue("id")

	switch r.PathValue("kind") {
	case domain.CollectionMessages:
		if err := console.DeleteMessage(r.Context(), id, confirmed(r)); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	case domain.CollectionAppointments:
		if err := console.DeleteAppointment(r.Context(), id, confirmed(r)); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.editorOp(w, r, http.StatusOK, func(c *services.Console, kind domain.Kind) error {
		return c.Remove(r.Context(), kind, id, confirmed(r))
	})
}

type galleryRequest struct {
	URL string `json:"url"`
}

func (h *AdminHandler) AddGalleryURL(w http.ResponseWriter, r *http.Request) {
	var req galleryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	h.galleryOp(w, r, func(c *services.Console) error { return c.AddGalleryURL(req.URL) })
}

func (h *AdminHandler) RemoveGalleryURL(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid index")
		return
	}
	h.galleryOp(w, r, func(c *services.Console) error { return c.RemoveGalleryURL(index) })
}

func (h *AdminHandler) galleryOp(w http.ResponseWriter, r *http.Request, op func(c *services.Console) error) {
	console := consoleFrom(r.Context())
	if err := op(console); err != nil {
		writeServiceError(w, r, err)
		return
	}
	state, err := console.EditorState(domain.KindProjects)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *AdminHandler) Messages(w http.ResponseWriter, r *http.Request) {
	items, err := consoleFrom(r.Context()).Messages()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (h *AdminHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	items, err := consoleFrom(r.Context()).Appointments()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}
