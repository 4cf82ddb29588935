package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

type fakeChat struct {
	fragments []string
	fallback  string
	err       error
}

func (f *fakeChat) Ask(_ context.Context, utterance string, sink ports.ChatSink) error {
	if strings.TrimSpace(utterance) == "" {
		return domain.ErrEmptyMessage
	}
	if f.err != nil {
		return f.err
	}
	for _, frag := range f.fragments {
		if err := sink.Fragment(frag); err != nil {
			return err
		}
	}
	if f.fallback != "" {
		return sink.Fallback(f.fallback)
	}
	return nil
}

type testServer struct {
	router   http.Handler
	repo     *sqlite.SQLiteRepository
	sessions *services.Sessions
}

func newTestServer(t *testing.T, chat ports.ChatService) *testServer {
	t.Helper()
	repo, err := sqlite.NewSQLiteRepository("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	submissions := services.NewSubmissionService(repo, nil)
	sessions := services.NewSessions(services.ConsoleConfig{
		Store:       repo,
		Submissions: submissions,
		AccessCode:  testAccessCode,
	})
	cfg := &config.Config{JWTSecret: "test"}
	if chat == nil {
		chat = &fakeChat{}
	}
	return &testServer{
		router:   NewRouter(cfg, services.NewContentService(repo), submissions, chat, sessions),
		repo:     repo,
		sessions: sessions,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: title", domain.ErrInvalidContent), http.StatusBadRequest},
		{domain.ErrStepBlocked, http.StatusBadRequest},
		{domain.ErrEmptyMessage, http.StatusBadRequest},
		{domain.ErrMessageTooLong, http.StatusRequestEntityTooLarge},
		{domain.ErrInvalidAccessCode, http.StatusUnauthorized},
		{domain.ErrLocked, http.StatusUnauthorized},
		{fmt.Errorf("project 9: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrNotConfirmed, http.StatusConflict},
		{domain.ErrNoDraft, http.StatusConflict},
		{domain.ErrSingleton, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestPublicContent_FallsBackToDefaults(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, "GET", "/api/v1/content/hero", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.DefaultHero(), decodeJSON[domain.Hero](t, rr))

	rr = s.do(t, "GET", "/api/v1/skills", "")
	require.Equal(t, http.StatusOK, rr.Code)
	skills := decodeJSON[struct{ Data []domain.Skill }](t, rr).Data
	assert.Equal(t, domain.DefaultSkills(), skills)

	rr = s.do(t, "GET", "/api/v1/services", "")
	require.Equal(t, http.StatusOK, rr.Code)
	svcs := decodeJSON[struct{ Data []serviceResponse }](t, rr).Data
	require.NotEmpty(t, svcs)
	for _, svc := range svcs {
		assert.Equal(t, svc.Icon.Glyph(), svc.Glyph)
	}
}

func TestProjects_CategoryFilter(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, "GET", "/api/v1/projects/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)
	cats := decodeJSON[struct{ Data []string }](t, rr).Data
	assert.Equal(t, domain.AllCategory, cats[0])

	rr = s.do(t, "GET", "/api/v1/projects?category=Web3", "")
	require.Equal(t, http.StatusOK, rr.Code)
	projects := decodeJSON[struct{ Data []projectResponse }](t, rr).Data
	require.Len(t, projects, 1)
	assert.Equal(t, "Crypto Wallet", projects[0].Title)
	assert.Equal(t, []string{"Web3.js", "React", "Ethers.js", "Solidity"}, projects[0].TechStackList)

	rr = s.do(t, "GET", "/api/v1/projects?category=All", "")
	projects = decodeJSON[struct{ Data []projectResponse }](t, rr).Data
	assert.Len(t, projects, len(domain.DefaultProjects()))
}

func TestProject_RendersMarkdown(t *testing.T) {
	s := newTestServer(t, nil)
	err := s.repo.SetDocument(context.Background(), domain.CollectionProjects, "p1", ports.Fields{
		"title":           "Docs Site",
		"category":        "Web",
		"image":           "cover.png",
		"gallery":         []string{"a.png", "b.png"},
		"longDescription": "Built with **Go**.\n\n<script>alert(1)</script>",
	})
	require.NoError(t, err)

	rr := s.do(t, "GET", "/api/v1/projects/p1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	p := decodeJSON[projectResponse](t, rr)
	assert.Equal(t, []string{"cover.png", "a.png", "b.png"}, p.Images)
	assert.Contains(t, p.LongDescriptionHTML, "<strong>Go</strong>")
	assert.NotContains(t, p.LongDescriptionHTML, "<script>")

	rr = s.do(t, "GET", "/api/v1/projects/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateMessage(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, "POST", "/api/v1/messages", `{"fullName":"Ada","email":"ada@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	msg := decodeJSON[domain.Message](t, rr)
	assert.NotEmpty(t, msg.ID)

	rr = s.do(t, "POST", "/api/v1/messages", `{"fullName":"Ada","email":"not-an-email","message":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, "POST", "/api/v1/messages", `{"unexpected":true}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateAppointment(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantStep services.Step
	}{
		{
			name:     "complete booking",
			body:     `{"service":"uiux","date":"2026-11-02","time":"11:00 AM","name":"Ada","email":"ada@example.com"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "unknown service",
			body:     `{"service":"massage","date":"2026-11-02","time":"11:00 AM","name":"Ada","email":"ada@example.com"}`,
			wantCode: http.StatusBadRequest,
			wantStep: services.StepChooseService,
		},
		{
			name:     "slot outside the list",
			body:     `{"service":"dev","date":"2026-11-02","time":"10:30 AM","name":"Ada","email":"ada@example.com"}`,
			wantCode: http.StatusBadRequest,
			wantStep: services.StepChooseDateTime,
		},
		{
			name:     "missing contact",
			body:     `{"service":"dev","date":"2026-11-02","time":"09:00 AM"}`,
			wantCode: http.StatusBadRequest,
			wantStep: services.StepEnterContact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			rr := s.do(t, "POST", "/api/v1/appointments", tt.body)
			require.Equal(t, tt.wantCode, rr.Code, rr.Body.String())

			if tt.wantCode == http.StatusCreated {
				appt := decodeJSON[domain.Appointment](t, rr)
				assert.Equal(t, "UI/UX Design", appt.Service)
				assert.Equal(t, domain.StatusPending, appt.Status)
				return
			}
			body := decodeJSON[struct {
				Error string        `json:"error"`
				Step  services.Step `json:"step"`
			}](t, rr)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.wantStep, body.Step)
		})
	}
}

func TestChat_StreamsEvents(t *testing.T) {
	s := newTestServer(t, &fakeChat{fragments: []string{"Hel", "lo"}})

	rr := s.do(t, "POST", "/api/v1/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t,
		"event: fragment\ndata: {\"text\":\"Hel\"}\n\n"+
			"event: fragment\ndata: {\"text\":\"lo\"}\n\n"+
			"event: done\ndata: {\"text\":\"\"}\n\n",
		rr.Body.String())
}

func TestChat_Fallback(t *testing.T) {
	s := newTestServer(t, &fakeChat{fallback: domain.ChatApology})

	rr := s.do(t, "POST", "/api/v1/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "event: fallback\n")
	assert.True(t, strings.HasSuffix(rr.Body.String(), "event: done\ndata: {\"text\":\"\"}\n\n"))
}

func TestChat_EmptyMessage(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, "POST", "/api/v1/chat", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestPublicPosts_RejectOversizedBodies(t *testing.T) {
	s := newTestServer(t, nil)
	huge := strings.Repeat("a", maxBodyBytes)

	for _, path := range []string{"/api/v1/messages", "/api/v1/appointments", "/api/v1/chat"} {
		t.Run(path, func(t *testing.T) {
			rr := s.do(t, "POST", path, `{"message":"`+huge+`"}`)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
			assert.JSONEq(t, `{"error":"Request body too large"}`, rr.Body.String())
		})
	}

	msgs, err := s.repo.ListDocuments(context.Background(), domain.CollectionMessages, nil)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func openUnlocked(t *testing.T, s *testServer) *http.Cookie {
	t.Helper()
	rr := s.do(t, "POST", "/admin/session", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	rr = s.do(t, "POST", "/admin/unlock", `{"code":"`+testAccessCode+`"}`, cookies[0])
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return cookies[0]
}

func TestAdminUnlock(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, "POST", "/admin/session", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	cookie := rr.Result().Cookies()[0]
	assert.Equal(t, "locked", decodeJSON[services.ConsoleState](t, rr).State)

	rr = s.do(t, "GET", "/admin/api/content", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(t, "POST", "/admin/unlock", `{"code":"guess"}`, cookie)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid Access Code"}`, rr.Body.String())

	rr = s.do(t, "POST", "/admin/unlock", `{"code":"`+testAccessCode+`"}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "unlocked", decodeJSON[services.ConsoleState](t, rr).State)

	rr = s.do(t, "POST", "/admin/session", "", cookie)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, "GET", "/admin/api/content", "", cookie)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminSession_CookielessOpensAreBounded(t *testing.T) {
	s := newTestServer(t, nil)
	admin := openUnlocked(t, s)

	for i := 0; i < 3*services.MaxLockedConsoles; i++ {
		rr := s.do(t, "POST", "/admin/session", "")
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	assert.Equal(t, services.MaxLockedConsoles+1, s.sessions.Len())

	rr := s.do(t, "GET", "/admin/api/content", "", admin)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminEditor_CreateCommitDelete(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := openUnlocked(t, s)

	rr := s.do(t, "POST", "/admin/api/skills/draft", "", cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = s.do(t, "PATCH", "/admin/api/skills/draft", `{"field":"name","value":"Go"}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = s.do(t, "PATCH", "/admin/api/skills/draft", `{"field":"percentage","value":99}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(t, "PATCH", "/admin/api/skills/draft", `{"field":"colour","value":"red"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, "POST", "/admin/api/skills/draft/commit", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	state := decodeJSON[services.EditorState](t, rr)
	require.NotNil(t, state.Notice)
	assert.Equal(t, services.NoticeSuccess, state.Notice.Level)

	docs, err := s.repo.ListDocuments(context.Background(), domain.CollectionSkills, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	id := docs[0].ID

	rr = s.do(t, "GET", "/api/v1/skills", "")
	skills := decodeJSON[struct{ Data []domain.Skill }](t, rr).Data
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)

	rr = s.do(t, "DELETE", "/admin/api/skills/"+id, "", cookie)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, "DELETE", "/admin/api/skills/"+id+"?confirm=true", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	docs, err = s.repo.ListDocuments(context.Background(), domain.CollectionSkills, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestAdminEditor_Errors(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := openUnlocked(t, s)

	rr := s.do(t, "GET", "/admin/api/widgets", "", cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, "POST", "/admin/api/hero/draft", "", cookie)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, "POST", "/admin/api/services/draft/commit", "", cookie)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAdminGallery(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := openUnlocked(t, s)

	rr := s.do(t, "POST", "/admin/api/projects/draft", "", cookie)
	require.Equal(t, http.StatusCreated, rr.Code)

	for _, url := range []string{"a.png", "b.png", "c.png"} {
		rr = s.do(t, "POST", "/admin/api/projects/draft/gallery", `{"url":"`+url+`"}`, cookie)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr = s.do(t, "DELETE", "/admin/api/projects/draft/gallery/1", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	state := decodeJSON[struct {
		Draft domain.Project `json:"draft"`
	}](t, rr)
	assert.Equal(t, []string{"a.png", "c.png"}, state.Draft.Gallery)

	rr = s.do(t, "DELETE", "/admin/api/projects/draft/gallery/x", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminSubmissions(t *testing.T) {
	s := newTestServer(t, nil)
	rr := s.do(t, "POST", "/api/v1/messages", `{"fullName":"Ada","email":"ada@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	id := decodeJSON[domain.Message](t, rr).ID

	cookie := openUnlocked(t, s)

	rr = s.do(t, "GET", "/admin/api/messages", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	msgs := decodeJSON[struct{ Data []domain.Message }](t, rr).Data
	require.Len(t, msgs, 1)

	rr = s.do(t, "DELETE", "/admin/api/messages/"+id, "", cookie)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, "DELETE", "/admin/api/messages/"+id+"?confirm=1", "", cookie)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(t, "GET", "/admin/api/messages", "", cookie)
	msgs = decodeJSON[struct{ Data []domain.Message }](t, rr).Data
	assert.Empty(t, msgs)
}
