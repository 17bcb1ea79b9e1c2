package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/groqlint/internal/types"
)

// ReportFunc receives the issues of a file that changed.
type ReportFunc func(filename string, issues []tt.Issue)

// Watcher re-lints query files under a set of directories when they change.
type Watcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher
	dirs    []string
	report  ReportFunc
	logger  *zap.Logger

	// Settle is how long to wait after a write before linting, so that a
	// burst of writes is seen as one change.
	Settle time.Duration
}

// NewWatcher creates a watcher over dirs.
func NewWatcher(engine *Engine, dirs []string, report ReportFunc, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		engine:  engine,
		watcher: fw,
		dirs:    dirs,
		report:  report,
		logger:  logger,
		Settle:  100 * time.Millisecond,
	}, nil
}

// Run watches until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for _, dir := range w.dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	w.logger.Info("watching for changes", zap.Strings("dirs", w.dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !IsQueryFile(event.Name) {
		return
	}
	// wait for a while after file change to consider multiple changes as one
	time.Sleep(w.Settle)
	issues, err := w.engine.RunFile(event.Name)
	if err != nil {
		w.logger.Error("error linting file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.logger.Debug("linted file", zap.String("file", event.Name), zap.Int("issues", len(issues)))
	w.report(event.Name, issues)
}
