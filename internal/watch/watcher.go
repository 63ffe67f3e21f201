// Package watch regenerates content outlines when plan files change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/seoscout/internal/outline"
	"github.com/starford/seoscout/internal/planfile"
	"github.com/starford/seoscout/internal/render"
	"github.com/starford/seoscout/internal/storage"
)

// Event kinds passed to EventCallback.
const (
	KindGenerated = "generated"
	KindInvalid   = "invalid"
	KindRemoved   = "removed"
)

var planExts = []string{".json", ".yaml", ".yml", ".md"}

// EventCallback is called after the watcher handles a plan file.
type EventCallback func(kind, path string)

// Outliner turns a plan source into an outline.
type Outliner interface {
	Outline(ctx context.Context, src outline.Source) (*outline.Result, error)
}

// Files is the plans directory.
type Files interface {
	storage.Provider
	Root() string
}

// Watcher keeps <name>.outline.md files in step with the plan files next to them.
type Watcher struct {
	files  Files
	gen    Outliner
	logger *slog.Logger
	cb     EventCallback

	// seen maps plan paths to the checksum last processed. Owned by the
	// goroutine running Sync/Run.
	seen map[string]string
}

// New creates a Watcher. cb may be nil.
func New(files Files, gen Outliner, logger *slog.Logger, cb EventCallback) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{files: files, gen: gen, logger: logger, cb: cb, seen: map[string]string{}}
}

// Sync processes every plan file on disk and removes outlines whose plan is gone.
func (w *Watcher) Sync(ctx context.Context) error {
	metas, err := w.files.List("", planExts...)
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		if !planfile.IsPlanFile(m.Path) {
			continue
		}
		disk[m.Path] = struct{}{}
		if w.seen[m.Path] == m.Checksum {
			continue
		}
		w.process(ctx, m.Path)
	}

	for p := range w.seen {
		if _, ok := disk[p]; !ok {
			w.remove(p)
		}
	}
	return nil
}

// Run watches the plans directory until ctx is cancelled. Call Sync first to
// pick up files that already exist.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	root := w.files.Root()
	if err := addDirsRecursive(fw, root); err != nil {
		return err
	}
	w.logger.Info("watcher: started", slog.String("root", root))

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time
	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			w.logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			if err := w.Sync(ctx); err != nil {
				w.logger.Warn("watcher: reconcile failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(fw, ev.Name); addErr != nil {
						w.logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					scheduleReconcile()
					continue
				}
			}

			if !planfile.IsPlanFile(ev.Name) {
				continue
			}
			rel, relErr := filepath.Rel(root, ev.Name)
			if relErr != nil {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				w.process(ctx, rel)
			case ev.Op&fsnotify.Remove != 0:
				w.remove(rel)
			case ev.Op&fsnotify.Rename != 0:
				// The new name arrives as its own Create event when it stays
				// inside a watched dir; reconcile catches the rest.
				w.remove(rel)
				scheduleReconcile()
			}

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func (w *Watcher) process(ctx context.Context, rel string) {
	data, err := w.files.Read(rel)
	if err != nil {
		w.logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	cs := storage.Checksum(data)
	if w.seen[rel] == cs {
		return
	}
	w.seen[rel] = cs

	src, err := planfile.Parse(rel, data)
	if err != nil {
		w.logger.Warn("watcher: invalid plan", slog.String("path", rel), slog.String("error", err.Error()))
		w.notify(KindInvalid, rel)
		return
	}
	res, err := w.gen.Outline(ctx, src)
	if err != nil {
		w.logger.Warn("watcher: outline failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	if _, err := w.files.Write(planfile.OutlinePath(rel), render.OutlineMarkdown(res)); err != nil {
		w.logger.Warn("watcher: write outline failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("watcher: outline generated", slog.String("path", rel), slog.String("kind", string(res.Outline.Type)))
	w.notify(KindGenerated, rel)
}

func (w *Watcher) remove(rel string) {
	delete(w.seen, rel)
	if err := w.files.Delete(planfile.OutlinePath(rel)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn("watcher: delete outline failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	w.notify(KindRemoved, rel)
}

func (w *Watcher) notify(kind, rel string) {
	if w.cb != nil {
		w.cb(kind, rel)
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
