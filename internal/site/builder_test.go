package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/page"
)

// newSite lays out a site directory with starter content and one static
// asset, and returns a builder for it.
func newSite(t *testing.T) (*Builder, *config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, content.Starter("Ada Lovelace", "Analyst").WriteFile(filepath.Join(dir, "content.json")))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "static", "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "img", "avatar.png"), []byte("png"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Fallback.Name = "Fallback Person"
	cfg.Fallback.Role = "Fallback Role"
	return NewBuilder(cfg, dir, nil), cfg, dir
}

func readOutput(t *testing.T, b *Builder, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(b.OutputDir(), name))
	require.NoError(t, err)
	return string(data)
}

func parseOutput(t *testing.T, b *Builder) *page.Page {
	t.Helper()
	p, err := page.ParseString(readOutput(t, b, IndexFile))
	require.NoError(t, err)
	return p
}

func TestBuildWritesSite(t *testing.T) {
	b, _, _ := newSite(t)

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.NotEmpty(t, res.BuildID)
	assert.Equal(t, 1, res.Assets)
	assert.Same(t, res, b.Last())

	index := readOutput(t, b, IndexFile)
	assert.Contains(t, index, `href="style.css?v=`+res.BuildID+`"`)
	assert.Contains(t, index, `src="effects.js?v=`+res.BuildID+`"`)
	assert.Contains(t, index, `class="project reveal"`)
	assert.Contains(t, index, "<title>Ada Lovelace</title>")

	p := parseOutput(t, b)
	name, err := p.InnerHTML("hero-name")
	require.NoError(t, err)
	assert.Equal(t, "Ada<br/>Lovelace", name)
	assert.Len(t, p.ByClass("project"), 2)

	assert.NotEmpty(t, readOutput(t, b, StyleFile))
	assert.Contains(t, readOutput(t, b, ScriptFile), "threshold: 0.12")
	assert.Equal(t, "png", readOutput(t, b, filepath.Join("img", "avatar.png")))

	doc, err := content.Decode(strings.NewReader(readOutput(t, b, ContentFile)))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", doc.FullName())
}

func TestBuildFallbackOnMissingContent(t *testing.T) {
	b, _, dir := newSite(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "content.json")))

	res, err := b.Build(context.Background())
	require.NoError(t, err, "a load failure must not fail the build")
	assert.True(t, res.Fallback)
	assert.True(t, errors.Is(res.LoadError, os.ErrNotExist))

	p := parseOutput(t, b)
	name, _ := p.InnerHTML("hero-name")
	assert.Equal(t, "Fallback<br/>Person", name)
	role, _ := p.TextContent("hero-role")
	assert.Equal(t, "Fallback Role", role)

	for _, id := range []string{"hero-tagline", "statement-text", "about-heading", "skills-grid", "timeline", "projects", "contact-links"} {
		got, err := p.InnerHTML(id)
		require.NoError(t, err)
		assert.Empty(t, got, "#%s should be empty", id)
	}

	_, err = os.Stat(filepath.Join(b.OutputDir(), ContentFile))
	assert.True(t, os.IsNotExist(err), "no content.json is published for the fallback")
	assert.NotZero(t, res.Effects.Revealed, "effects still run on the fallback page")
}

func TestBuildFallbackOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b, cfg, _ := newSite(t)
	cfg.Content.Source = srv.URL + "/content.json"

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Fallback)

	var se *content.StatusError
	require.True(t, errors.As(res.LoadError, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestBuildFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Remote Person","role":"r","tagline":"t","about":{"heading":"h","columns":[]},
			"skills":[],"experience":[],"education":[],"projects":[],"contact":{"heading":"c","links":[]}}`))
	}))
	defer srv.Close()

	b, cfg, _ := newSite(t)
	cfg.Content.BaseURL = srv.URL + "/site/"
	b = NewBuilder(cfg, b.baseDir, nil)

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "Remote Person", res.Document.FullName())
}

func TestLastDoesNotWaitForBuild(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.Write([]byte(`{"name":"Slow"}`))
	}))
	defer srv.Close()

	b, cfg, _ := newSite(t)
	first, err := b.Build(context.Background())
	require.NoError(t, err)

	cfg.Content.Source = srv.URL + "/content.json"
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Build(context.Background())
	}()

	select {
	case <-arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("build never fetched the content")
	}

	got := make(chan *Result, 1)
	go func() { got <- b.Last() }()
	select {
	case r := <-got:
		assert.Same(t, first, r)
	case <-time.After(time.Second):
		t.Fatal("Last blocked on the build in progress")
	}

	close(release)
	<-done
	assert.NotSame(t, first, b.Last())
}

func TestBuildMalformedIsPartial(t *testing.T) {
	b, _, dir := newSite(t)
	malformed := `{"name":"Half Done","role":"r","tagline":"t","about":{"columns":[]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.json"), []byte(malformed), 0o644))

	res, err := b.Build(context.Background())
	var fe *content.FieldError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, "about.heading", fe.Path)
	require.NotNil(t, res)
	assert.True(t, res.Fallback)
	assert.True(t, errors.As(res.LoadError, &fe))
	assert.Same(t, res, b.Last())

	p := parseOutput(t, b)
	name, _ := p.InnerHTML("hero-name")
	assert.Equal(t, "Fallback<br/>Person", name)
	role, _ := p.TextContent("hero-role")
	assert.Equal(t, "Fallback Role", role)
	tagline, _ := p.InnerHTML("hero-tagline")
	assert.Equal(t, "t", tagline, "regions written before the failure are kept")
	projects, _ := p.InnerHTML("projects")
	assert.Empty(t, projects)

	grids := p.ByClass("section-grid")
	require.NotEmpty(t, grids)
	for _, n := range grids {
		assert.True(t, page.HasClass(n, "reveal"))
	}
	assert.NotZero(t, res.Effects.Revealed)
	assert.Contains(t, readOutput(t, b, IndexFile), "<title>Fallback Person</title>")

	_, err = os.Stat(filepath.Join(b.OutputDir(), ContentFile))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildNullDocumentFallsBack(t *testing.T) {
	b, _, dir := newSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.json"), []byte("null"), 0o644))

	res, err := b.Build(context.Background())
	var fe *content.FieldError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, "name", fe.Path)
	require.NotNil(t, res)
	assert.True(t, res.Fallback)

	p := parseOutput(t, b)
	name, _ := p.InnerHTML("hero-name")
	assert.Equal(t, "Fallback<br/>Person", name)
	assert.NotZero(t, res.Effects.Revealed)
}

func TestBuildMissingTargetInCustomShell(t *testing.T) {
	b, cfg, dir := newSite(t)
	shell := filepath.Join(dir, "shell.html")
	require.NoError(t, os.WriteFile(shell, []byte(`<html><head><title>x</title></head><body><h1 id="hero-name"></h1><p id="hero-role"></p></body></html>`), 0o644))
	cfg.Site.Shell = "shell.html"

	_, err := b.Build(context.Background())
	assert.True(t, errors.Is(err, page.ErrTargetNotFound))

	_, err = os.Stat(filepath.Join(b.OutputDir(), StyleFile))
	assert.True(t, os.IsNotExist(err), "custom shells bring their own stylesheet")
}

func TestBuildMarkdown(t *testing.T) {
	b, cfg, dir := newSite(t)
	doc := content.Starter("Ada Lovelace", "Analyst")
	doc.Projects[0].Description = "Uses **goldmark**"
	require.NoError(t, doc.WriteFile(filepath.Join(dir, "content.json")))
	cfg.Render.Markdown = true
	b = NewBuilder(cfg, dir, nil)

	_, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, readOutput(t, b, IndexFile), "Uses <strong>goldmark</strong>")
}

func TestBuildTitleOverride(t *testing.T) {
	b, cfg, _ := newSite(t)
	cfg.Site.Title = "Ada's Portfolio"

	_, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, readOutput(t, b, IndexFile), "<title>Ada&#39;s Portfolio</title>")
}

func TestComposeDoesNotWrite(t *testing.T) {
	b, _, _ := newSite(t)
	p, res, err := b.Compose(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.False(t, res.Fallback)

	_, err = os.Stat(b.OutputDir())
	assert.True(t, os.IsNotExist(err))
}

func TestLiveReloadScript(t *testing.T) {
	b, _, _ := newSite(t)
	b.SetLiveReload(true)
	_, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, readOutput(t, b, ScriptFile), "WebSocket")
}

type countingNotifier struct{ n atomic.Int32 }

func (c *countingNotifier) Broadcast(string) int {
	c.n.Add(1)
	return 0
}

func TestWatcherRebuildsOnContentChange(t *testing.T) {
	b, _, dir := newSite(t)
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	notifier := &countingNotifier{}
	built := make(chan *Result, 4)
	w := &Watcher{
		Builder:  b,
		Notify:   notifier,
		Debounce: 20 * time.Millisecond,
		OnBuild:  func(r *Result, err error) { built <- r },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(200 * time.Millisecond)

	doc := content.Starter("Grace Hopper", "Admiral")
	require.NoError(t, doc.WriteFile(filepath.Join(dir, "content.json")))

	select {
	case r := <-built:
		require.NotNil(t, r)
		assert.Equal(t, "Grace Hopper", r.Document.FullName())
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after content change")
	}
	assert.GreaterOrEqual(t, notifier.n.Load(), int32(1))

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcherRelevance(t *testing.T) {
	b, _, dir := newSite(t)
	w := &Watcher{Builder: b}
	files, dirs := w.targets()

	assert.True(t, w.relevant(filepath.Join(dir, "content.json"), files))
	assert.True(t, w.relevant(filepath.Join(dir, "static", "img", "x.png"), files))
	assert.False(t, w.relevant(filepath.Join(dir, "notes.txt"), files))
	assert.False(t, w.relevant(filepath.Join(dir, "public", "index.html"), files))
	assert.Contains(t, dirs, filepath.Join(absPath(dir), "static", "img"))
}
