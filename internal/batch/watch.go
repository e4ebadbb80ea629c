package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet time Watch waits for after a change.
const DefaultDebounce = 500 * time.Millisecond

// Report receives the result of every run of Watch.
type Report func(*Summary, error)

// Watch runs job, then again after every change to an input dashboard until
// ctx is cancelled. Changes less than debounce apart trigger a single run.
// Runs are sequential. A nil report logs failed runs.
func (d *Driver) Watch(ctx context.Context, job Job, debounce time.Duration, report Report) error {
	if report == nil {
		report = func(_ *Summary, err error) {
			if err != nil {
				d.logger.Error("Batch failed", zap.Error(err))
			}
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := d.watchTree(w, d.inDir); err != nil {
		return err
	}

	report(d.Run(ctx, job))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !d.relevant(w, event) {
				continue
			}

			d.logger.Debug("Input changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			d.logger.Warn("Watcher error", zap.Error(err))

		case <-fire:
			fire = nil

			report(d.Run(ctx, job))
		}
	}
}

// watchTree adds root and its subfolders, the output folder excepted.
func (d *Driver) watchTree(w *fsnotify.Watcher, root string) error {
	if d.file {
		return w.Add(root)
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if d.isOutput(path) {
			return filepath.SkipDir
		}

		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}

		return nil
	})
}

// relevant reports whether event touches an input dashboard. New folders
// are watched as they appear.
func (d *Driver) relevant(w *fsnotify.Watcher, event fsnotify.Event) bool {
	if d.isOutput(event.Name) || event.Op == fsnotify.Chmod {
		return false
	}

	if d.file {
		return filepath.Clean(event.Name) == filepath.Clean(d.config.Input)
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := d.watchTree(w, event.Name); err != nil {
				d.logger.Warn("Cannot watch new folder", zap.String("path", event.Name), zap.Error(err))
			}

			return true
		}
	}

	ext := filepath.Ext(event.Name)

	return ext == ".json" || ext == ".jsonc"
}

func (d *Driver) isOutput(path string) bool {
	if d.inPlace {
		return false
	}

	rel, err := filepath.Rel(d.outDir, path)

	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
