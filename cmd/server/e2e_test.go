package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/app"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
)

func TestIntegration(t *testing.T) {
	// 1. Setup DB
	repo, err := sqlite.NewSQLiteRepository("file:e2e?mode=memory&cache=shared")
	require.NoError(t, err)
	defer repo.Close()

	// 2. Wire the app without AI or Telegram
	cfg := &config.Config{
		JWTSecret:       "e2e-secret",
		AdminAccessCode: "letmein",
		ReloadPolicy:    "affected",
	}
	server := httptest.NewServer(app.NewWithStore(cfg, repo).Handler)
	defer server.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := server.Client()
	client.Jar = jar

	call := func(method, path string, body any) *http.Response {
		t.Helper()
		var r io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			r = bytes.NewReader(b)
		}
		req, err := http.NewRequest(method, server.URL+path, r)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := client.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	// TEST 1: Public content falls back to the built-in portfolio
	resp := call("GET", "/api/v1/experience", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var experience struct{ Data []domain.Experience }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&experience))
	assert.Equal(t, domain.DefaultExperience(), experience.Data)

	// TEST 2: Visitor sends a message
	resp = call("POST", "/api/v1/messages", map[string]string{
		"fullName": "Grace",
		"email":    "grace@example.com",
		"message":  "Let's build something.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// TEST 3: Chat without a completion service answers with the apology
	resp = call("POST", "/api/v1/chat", map[string]string{"message": "What do you know?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stream, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(stream), "event: fallback\n"))

	// TEST 4: Admin surface is gated
	resp = call("POST", "/admin/session", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call("GET", "/admin/api/content", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call("POST", "/admin/unlock", map[string]string{"code": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call("POST", "/admin/unlock", map[string]string{"code": "letmein"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call("GET", "/admin/api/messages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var messages struct{ Data []domain.Message }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&messages))
	require.Len(t, messages.Data, 1)
	assert.Equal(t, "Grace", messages.Data[0].FullName)

	// TEST 5: Edit the hero singleton
	resp = call("POST", "/admin/api/hero/current/draft", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call("PATCH", "/admin/api/hero/draft", map[string]any{"field": "name", "value": "Grace Hopper"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call("POST", "/admin/api/hero/draft/commit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call("GET", "/api/v1/content/hero", nil)
	var hero domain.Hero
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hero))
	assert.Equal(t, "Grace Hopper", hero.Name)
	assert.Equal(t, domain.DefaultHero().Title, hero.Title)

	// TEST 6: Add an experience entry
	resp = call("POST", "/admin/api/experience/draft", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call("PATCH", "/admin/api/experience/draft", map[string]any{"field": "role", "value": "Compiler Author"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call("PATCH", "/admin/api/experience/draft", map[string]any{"field": "order", "value": -1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call("POST", "/admin/api/experience/draft/commit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call("GET", "/api/v1/experience", nil)
	experience.Data = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&experience))
	require.Len(t, experience.Data, 1)
	assert.Equal(t, "Compiler Author", experience.Data[0].Role)

	// TEST 7: Export (Dump)
	docs, err := repo.Dump(context.Background())
	require.NoError(t, err)
	collections := map[string]int{}
	for _, d := range docs {
		collections[d.Collection]++
	}
	assert.Equal(t, map[string]int{
		domain.CollectionMessages:   1,
		domain.CollectionContent:    1,
		domain.CollectionExperience: 1,
	}, collections)
}
