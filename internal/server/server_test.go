package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/effects"
	"github.com/ziadkadry99/folio/internal/site"
)

func newBuilder(t *testing.T) *site.Builder {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, content.Starter("Ada Lovelace", "Analyst").WriteFile(filepath.Join(dir, "content.json")))
	return site.NewBuilder(config.DefaultConfig(), dir, nil)
}

func newBuiltServer(t *testing.T, hub *ReloadHub) (*Server, *site.Builder) {
	t.Helper()
	b := newBuilder(t)
	_, err := b.Build(context.Background())
	require.NoError(t, err)
	return New(Config{Port: 0}, b, hub, nil), b
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newBuiltServer(t, nil)

	w := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	b := newBuilder(t)
	srv := New(Config{Port: 0, AllowAll: true}, b, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/content", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestContentBeforeBuild(t *testing.T) {
	srv := New(Config{}, newBuilder(t), nil, nil)

	w := get(t, srv, "/api/content")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(t, srv, "/api/projects")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContentAPI(t *testing.T) {
	srv, b := newBuiltServer(t, nil)

	w := get(t, srv, "/api/content")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body contentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, b.Last().BuildID, body.BuildID)
	assert.False(t, body.Fallback)
	require.NotNil(t, body.Document)
	assert.Equal(t, "Ada Lovelace", body.Document.FullName())
}

func TestProjectsAPI(t *testing.T) {
	srv, b := newBuiltServer(t, nil)

	w := get(t, srv, "/api/projects")
	require.Equal(t, http.StatusOK, w.Code)

	var views []projectView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&views))
	require.Len(t, views, len(b.Last().Document.Projects))

	assert.Equal(t, "01", views[0].Number)
	assert.False(t, views[0].Reversed)
	assert.Equal(t, "02", views[1].Number)
	assert.True(t, views[1].Reversed)
	assert.Equal(t, b.Options().Accent(1), views[1].Accent)
	assert.NotNil(t, views[0].Tags)
}

func TestProjectByIndex(t *testing.T) {
	srv, b := newBuiltServer(t, nil)

	w := get(t, srv, "/api/projects/1")
	require.Equal(t, http.StatusOK, w.Code)
	var view projectView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, 1, view.Index)
	assert.Equal(t, b.Last().Document.Projects[1].Title, view.Title)

	tests := []struct {
		path string
		want int
	}{
		{"/api/projects/abc", http.StatusBadRequest},
		{"/api/projects/-1", http.StatusBadRequest},
		{"/api/projects/99", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, srv, tt.path)
			assert.Equal(t, tt.want, w.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestStaticServing(t *testing.T) {
	srv, b := newBuiltServer(t, nil)

	w := get(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="hero-name"`)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

	w = get(t, srv, "/"+site.ContentFile)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Lovelace")

	w = get(t, srv, "/"+site.ScriptFile)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, os.MkdirAll(filepath.Join(b.OutputDir(), "img"), 0o755))
	w = get(t, srv, "/img/")
	assert.Equal(t, http.StatusNotFound, w.Code, "directories are not listed")
}

func TestReloadBroadcast(t *testing.T) {
	hub := NewReloadHub(nil)
	srv, _ := newBuiltServer(t, hub)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + effects.ReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.Broadcast("reload"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewReloadHub(nil)
	assert.Equal(t, 0, hub.Broadcast("reload"))
	hub.Close()
	assert.Equal(t, 0, hub.Clients())
}
