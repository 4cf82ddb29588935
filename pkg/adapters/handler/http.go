package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// HTTPHandler serves the public site data.
type HTTPHandler struct {
	content     ports.ContentService
	submissions ports.SubmissionService
	chat        ports.ChatService
	markdown    goldmark.Markdown
}

func NewHTTPHandler(content ports.ContentService, submissions ports.SubmissionService, chat ports.ChatService) *HTTPHandler {
	return &HTTPHandler{
		content:     content,
		submissions: submissions,
		chat:        chat,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

func (h *HTTPHandler) Hero(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.content.Hero(r.Context()))
}

func (h *HTTPHandler) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.content.About(r.Context()))
}

type serviceResponse struct {
	domain.Service
	Glyph string `json:"glyph"`
}

func (h *HTTPHandler) Services(w http.ResponseWriter, r *http.Request) {
	items := h.content.Services(r.Context())
	resp := make([]serviceResponse, 0, len(items))
	for _, s := range items {
		resp = append(resp, serviceResponse{Service: s, Glyph: s.Icon.Glyph()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

type projectResponse struct {
	domain.Project
	TechStackList       []string `json:"techStackList"`
	Images              []string `json:"images"`
	LongDescriptionHTML string   `json:"longDescriptionHtml,omitempty"`
}

func (h *HTTPHandler) newProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		Project:       p,
		TechStackList: p.TechStack.List(),
		Images:        p.CarouselImages(),
	}
}

func (h *HTTPHandler) Projects(w http.ResponseWriter, r *http.Request) {
	items := h.content.Projects(r.Context(), r.URL.Query().Get("category"))
	resp := make([]projectResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, h.newProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (h *HTTPHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": h.content.Categories(r.Context())})
}

// Project returns one project with its long description rendered from
// Markdown. Raw HTML in the source is not passed through.
func (h *HTTPHandler) Project(w http.ResponseWriter, r *http.Request) {
	p, err := h.content.Project(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := h.newProjectResponse(*p)
	if strings.TrimSpace(p.LongDescription) != "" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(p.LongDescription), &buf); err != nil {
			logrus.WithField("project", p.ID).WithError(err).Warn("failed to render long description")
		} else {
			resp.LongDescriptionHTML = buf.String()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) Experience(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": h.content.Experience(r.Context())})
}

func (h *HTTPHandler) Skills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": h.content.Skills(r.Context())})
}

// Booking returns the wizard's fixed catalog.
func (h *HTTPHandler) Booking(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"services":  domain.BookingServices(),
		"timeSlots": domain.TimeSlots(),
	})
}

type messageRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
}

func (h *HTTPHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	msg, err := h.submissions.SubmitMessage(r.Context(), domain.Message{
		FullName: req.FullName,
		Email:    req.Email,
		Subject:  req.Subject,
		Phone:    req.Phone,
		Message:  req.Message,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

type appointmentRequest struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// CreateAppointment walks a fresh booking wizard through every step with the
// posted choices, so the same gating applies as in the browser.
func (h *HTTPHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	wiz := services.NewWizard()
	steps := []func() error{
		func() error { return wiz.SelectService(req.Service) },
		func() error { return wiz.SetDate(req.Date) },
		func() error { return wiz.SetTime(req.Time) },
		wiz.Next,
		func() error { return wiz.SetContact(req.Name, req.Email) },
		func() error { return wiz.Submit(r.Context(), h.submissions) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			h.wizardError(w, wiz, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, wiz.Appointment)
}

func (h *HTTPHandler) wizardError(w http.ResponseWriter, wiz *services.Wizard, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("appointment booking failed")
		msg = wiz.Error
	}
	writeJSON(w, status, map[string]any{"error": msg, "step": wiz.Step})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *HTTPHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	sink := newEventSink(w)
	if err := h.chat.Ask(r.Context(), req.Message, sink); err != nil {
		if !sink.started {
			writeServiceError(w, r, err)
			return
		}
		logrus.WithError(err).Warn("chat stream interrupted")
		return
	}
	sink.done()
}
