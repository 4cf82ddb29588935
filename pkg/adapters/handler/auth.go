package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
)

// AuthHandler opens admin consoles and unlocks them with the shared code.
type AuthHandler struct {
	mw       *Middleware
	sessions *services.Sessions
}

func NewAuthHandler(mw *Middleware, sessions *services.Sessions) *AuthHandler {
	return &AuthHandler{mw: mw, sessions: sessions}
}

// OpenSession reuses the caller's console when the cookie still names one,
// and opens a new locked console otherwise.
func (h *AuthHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	if console, err := h.mw.consoleFromRequest(r); err == nil {
		writeJSON(w, http.StatusOK, console.Snapshot())
		return
	}

	console := h.sessions.Open()
	token, err := h.mw.issueToken(console.ID)
	if err != nil {
		logrus.WithError(err).Error("failed signing session token")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.mw.setSessionCookie(w, token)

	logrus.WithField("console", console.ID).Info("admin console opened")
	writeJSON(w, http.StatusCreated, console.Snapshot())
}

type unlockRequest struct {
	Code string `json:"code"`
}

func (h *AuthHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	console, err := h.mw.consoleFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req unlockRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	if err := console.Unlock(r.Context(), req.Code); err != nil {
		if errors.Is(err, domain.ErrInvalidAccessCode) {
			logrus.WithField("console", console.ID).Warn("wrong admin access code")
			writeError(w, http.StatusUnauthorized, services.InvalidCodeMessage)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, console.Snapshot())
}
