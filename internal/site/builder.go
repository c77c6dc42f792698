// Package site builds the static portfolio: it loads the content document,
// renders it into the page shell, decorates the page and writes the output
// directory.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/effects"
	"github.com/ziadkadry99/folio/internal/page"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/render"
	"github.com/ziadkadry99/folio/internal/walker"
)

// Files written into the output directory.
const (
	IndexFile   = "index.html"
	StyleFile   = "style.css"
	ScriptFile  = "effects.js"
	ContentFile = "content.json"
)

const buildSteps = 5

// Result describes one build.
type Result struct {
	BuildID  string
	Document *content.Document
	// Fallback is set when the content could not be loaded or rendered and
	// the fallback identity was written into the hero.
	Fallback bool
	// LoadError is why the fallback was used.
	LoadError error
	Effects   effects.Result
	Assets    int
	Duration  time.Duration
}

// Builder turns a configuration into a built site. Builds are serialized;
// Last never waits for a build in progress.
type Builder struct {
	cfg        *config.Config
	baseDir    string
	loader     *content.Loader
	opts       render.Options
	logger     *slog.Logger
	reporter   progress.Reporter
	liveReload bool

	buildMu sync.Mutex
	last    atomic.Pointer[Result]
}

// NewBuilder creates a Builder. Relative paths in cfg are resolved against
// baseDir, normally the directory holding the config file.
func NewBuilder(cfg *config.Config, baseDir string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	opts := render.DefaultOptions()
	if len(cfg.Render.Accents) > 0 {
		opts.Accents = cfg.Render.Accents
	}
	if cfg.Render.Markdown {
		opts.Markdown = render.NewMarkdown(cfg.Render.HighlightStyle)
	}
	return &Builder{
		cfg:      cfg,
		baseDir:  baseDir,
		loader:   content.NewLoader(baseDir, cfg.Content.BaseURL, cfg.Content.Timeout),
		opts:     opts,
		logger:   logger,
		reporter: progress.Nop{},
	}
}

// SetReporter sets where build progress goes. The default discards it.
func (b *Builder) SetReporter(r progress.Reporter) {
	if r == nil {
		r = progress.Nop{}
	}
	b.reporter = r
}

// SetLiveReload makes the generated script connect to the reload socket.
func (b *Builder) SetLiveReload(on bool) { b.liveReload = on }

// OutputDir is the resolved output directory.
func (b *Builder) OutputDir() string { return b.path(b.cfg.Site.OutputDir) }

// StaticDir is the resolved static asset directory.
func (b *Builder) StaticDir() string { return b.path(b.cfg.Site.StaticDir) }

// Options returns the render options in effect.
func (b *Builder) Options() render.Options { return b.opts }

// Last returns the most recent build result, or nil.
func (b *Builder) Last() *Result {
	return b.last.Load()
}

// Build runs a full build. A content load failure is not an error: the
// fallback identity is rendered instead. A document that fails to render
// keeps the regions written before the failure, gets the fallback identity
// and the effects pass like a load failure, and the render error is
// returned after the page is written.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	b.buildMu.Lock()
	defer b.buildMu.Unlock()

	start := time.Now()
	b.reporter.Start(buildSteps)
	defer b.reporter.Finish()

	b.reporter.Update(1, "Loading content")
	p, res, renderErr := b.compose(ctx)
	if p == nil {
		return nil, renderErr
	}

	b.reporter.Update(4, "Writing files")
	if err := b.write(p, res); err != nil {
		return nil, err
	}

	b.reporter.Update(5, "Copying assets")
	n, err := b.copyAssets()
	if err != nil {
		return nil, err
	}
	res.Assets = n
	res.Duration = time.Since(start)
	b.last.Store(res)

	b.logger.Info("site built",
		"output", b.OutputDir(),
		"build_id", res.BuildID,
		"fallback", res.Fallback,
		"assets", res.Assets,
		"duration", res.Duration)

	return res, renderErr
}

// Compose loads, renders and decorates the page without writing anything.
func (b *Builder) Compose(ctx context.Context) (*page.Page, *Result, error) {
	b.buildMu.Lock()
	defer b.buildMu.Unlock()
	return b.compose(ctx)
}

// compose returns a nil page only when the shell itself cannot be loaded.
func (b *Builder) compose(ctx context.Context) (*page.Page, *Result, error) {
	doc, loadErr := b.load(ctx)
	res := &Result{
		BuildID:   uuid.NewString(),
		Document:  doc,
		Fallback:  loadErr != nil,
		LoadError: loadErr,
	}

	b.reporter.Update(2, "Rendering page")
	p, err := page.Load(b.path(b.cfg.Site.Shell))
	if err != nil {
		return nil, res, err
	}
	renderErr := b.render(p, res)
	if renderErr != nil && !res.Fallback {
		b.logger.Warn("content failed to render, writing fallback identity",
			"source", b.cfg.Content.Source,
			"error", renderErr)
		res.Document = content.Fallback(b.cfg.Fallback.Name, b.cfg.Fallback.Role)
		res.Fallback = true
		res.LoadError = renderErr
		if err := p.Apply(render.Fallback(res.Document)); err != nil {
			renderErr = errors.Join(renderErr, err)
		}
	}
	b.setTitle(p, res.Document)

	b.reporter.Update(3, "Applying effects")
	res.Effects = effects.Apply(p, b.effectsConfig())
	return p, res, renderErr
}

func (b *Builder) load(ctx context.Context) (*content.Document, error) {
	doc, err := b.loader.Load(ctx, b.cfg.Content.Source)
	if err != nil {
		b.logger.Warn("content unavailable, rendering fallback",
			"source", b.cfg.Content.Source,
			"error", err)
		return content.Fallback(b.cfg.Fallback.Name, b.cfg.Fallback.Role), err
	}
	return doc, nil
}

func (b *Builder) render(p *page.Page, res *Result) error {
	if res.Fallback {
		return p.Apply(render.Fallback(res.Document))
	}
	frags, err := render.Render(res.Document, b.opts)
	if applyErr := p.Apply(frags); applyErr != nil {
		return applyErr
	}
	if err != nil {
		return fmt.Errorf("rendering content: %w", err)
	}
	return nil
}

func (b *Builder) setTitle(p *page.Page, doc *content.Document) {
	switch {
	case b.cfg.Site.Title != "":
		p.SetTitle(b.cfg.Site.Title)
	case strings.TrimSpace(doc.FullName()) != "":
		p.SetTitle(strings.Join(strings.Fields(doc.FullName()), " "))
	}
}

func (b *Builder) effectsConfig() effects.Config {
	e := b.cfg.Effects
	cfg := effects.DefaultConfig()
	cfg.RevealThreshold = e.RevealThreshold
	cfg.RevealMarginBottom = e.RevealMarginBottom
	cfg.StaggerProject = e.StaggerProject
	cfg.StaggerTimeline = e.StaggerTimeline
	cfg.StaggerSkill = e.StaggerSkill
	cfg.NavBackgroundAt = e.NavBackgroundAt
	cfg.NavHideAt = e.NavHideAt
	cfg.MagneticStrength = e.MagneticStrength
	cfg.ParallaxStrength = e.ParallaxStrength
	cfg.LiveReload = b.liveReload
	return cfg
}

func (b *Builder) write(p *page.Page, res *Result) error {
	out := b.OutputDir()
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	p.EnsureScript(ScriptFile)
	p.VersionAssets(res.BuildID, StyleFile, ScriptFile)

	f, err := os.Create(filepath.Join(out, IndexFile))
	if err != nil {
		return fmt.Errorf("creating %s: %w", IndexFile, err)
	}
	if err := p.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", IndexFile, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if b.cfg.Site.Shell == "" {
		if err := os.WriteFile(filepath.Join(out, StyleFile), page.DefaultStyle(), 0o644); err != nil {
			return err
		}
	}

	script, err := effects.Script(b.effectsConfig())
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(out, ScriptFile), script, 0o644); err != nil {
		return err
	}

	contentPath := filepath.Join(out, ContentFile)
	if res.Fallback {
		if err := os.Remove(contentPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return res.Document.WriteFile(contentPath)
}

func (b *Builder) copyAssets() (int, error) {
	static := b.StaticDir()
	if b.cfg.Site.StaticDir == "" || samePath(static, b.OutputDir()) {
		return 0, nil
	}

	exclude := append([]string(nil), b.cfg.Site.Exclude...)
	if rel, err := filepath.Rel(static, b.OutputDir()); err == nil && !strings.HasPrefix(rel, "..") {
		exclude = append(exclude, filepath.ToSlash(rel)+"/**")
	}

	assets, err := walker.Walk(walker.Config{
		RootDir:  static,
		Include:  b.cfg.Site.Include,
		Exclude:  exclude,
		Reserved: []string{IndexFile, StyleFile, ScriptFile, ContentFile},
	})
	if err != nil {
		return 0, err
	}
	return walker.Copy(assets, b.OutputDir())
}

func (b *Builder) path(p string) string {
	if p == "" || filepath.IsAbs(p) || b.baseDir == "" {
		return p
	}
	return filepath.Join(b.baseDir, p)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
