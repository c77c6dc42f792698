package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change
// before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Notifier is told when a rebuild has finished.
type Notifier interface {
	Broadcast(msg string) int
}

// Watcher rebuilds the site when the content file, the shell or a static
// asset changes.
type Watcher struct {
	Builder  *Builder
	Notify   Notifier
	Logger   *slog.Logger
	Debounce time.Duration
	// OnBuild, if set, is called after every rebuild.
	OnBuild func(*Result, error)
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	files, dirs := w.targets()
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}
	logger.Info("watching for changes", "dirs", len(dirs))

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name, files) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := fw.Add(event.Name); err != nil {
					logger.Warn("cannot watch new directory", "dir", event.Name, "error", err)
				}
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() { w.rebuild(ctx, logger) })
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context, logger *slog.Logger) {
	if ctx.Err() != nil {
		return
	}
	res, err := w.Builder.Build(ctx)
	if err != nil {
		logger.Error("rebuild failed", "error", err)
	}
	if res != nil && w.Notify != nil {
		n := w.Notify.Broadcast("reload")
		logger.Debug("reload sent", "clients", n)
	}
	if w.OnBuild != nil {
		w.OnBuild(res, err)
	}
}

// targets returns the individual files to react to and the directories to
// register. Files are watched through their parent directory so editors
// that replace the file on save are still seen.
func (w *Watcher) targets() (files map[string]bool, dirs []string) {
	files = make(map[string]bool)
	seen := make(map[string]bool)
	addDir := func(d string) {
		if d != "" && !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	cfg := w.Builder.cfg
	if loc, remote, err := w.Builder.loader.Resolve(cfg.Content.Source); err == nil && !remote {
		abs := absPath(loc)
		files[abs] = true
		addDir(filepath.Dir(abs))
	}
	if cfg.Site.Shell != "" {
		abs := absPath(w.Builder.path(cfg.Site.Shell))
		files[abs] = true
		addDir(filepath.Dir(abs))
	}

	if cfg.Site.StaticDir != "" {
		static := absPath(w.Builder.StaticDir())
		out := absPath(w.Builder.OutputDir())
		_ = filepath.WalkDir(static, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path == out {
					return filepath.SkipDir
				}
				addDir(path)
			}
			return nil
		})
	}
	return files, dirs
}

func (w *Watcher) relevant(name string, files map[string]bool) bool {
	abs := absPath(name)
	if files[abs] {
		return true
	}
	if w.Builder.cfg.Site.StaticDir == "" {
		return false
	}
	out := absPath(w.Builder.OutputDir())
	if abs == out || strings.HasPrefix(abs, out+string(filepath.Separator)) {
		return false
	}
	static := absPath(w.Builder.StaticDir())
	return strings.HasPrefix(abs, static+string(filepath.Separator))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
