package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/metrics"
	"git.home.luguber.info/inful/rendergate/internal/recipestore"
)

const defaultDebounce = 500 * time.Millisecond

// Replacer swaps a store's contents for a fixture.
type Replacer interface {
	Replace(ctx context.Context, f *recipestore.Fixture) error
}

// FixtureWatcher reloads a fixture file into the store whenever it changes.
// Resolutions in flight keep reading the previous contents until the swap commits.
type FixtureWatcher struct {
	path     string
	store    Replacer
	recorder metrics.Recorder
	watcher  *fsnotify.Watcher
	debounce time.Duration

	reloadChan chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	reloaded   chan error // test hook, nil in production
}

// NewFixtureWatcher creates a watcher for the fixture at path.
func NewFixtureWatcher(path string, store Replacer, rec metrics.Recorder) (*FixtureWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to resolve fixture path").
			WithContext("path", path).Build()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Build()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &FixtureWatcher{
		path:       absPath,
		store:      store,
		recorder:   rec,
		watcher:    w,
		debounce:   defaultDebounce,
		reloadChan: make(chan struct{}, 1),
		done:       make(chan struct{}),
	}, nil
}

// Start watches the fixture's directory until ctx is cancelled or Stop is called. Editors that
// replace files by rename would drop a watch placed on the file itself.
func (fw *FixtureWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to watch fixture directory").
			WithContext("dir", dir).Build()
	}
	slog.Info("Watching fixture for changes", "path", fw.path)

	fw.wg.Add(2)
	go fw.watchLoop(ctx)
	go fw.reloadLoop(ctx)
	return nil
}

// Stop closes the watcher and waits for its goroutines.
func (fw *FixtureWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
		fw.wg.Wait()
	})
	return err
}

func (fw *FixtureWatcher) watchLoop(ctx context.Context) {
	defer fw.wg.Done()
	name := filepath.Base(fw.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.done:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Fixture change detected", "file", event.Name, "op", event.Op.String())
				fw.triggerReload()
			case event.Has(fsnotify.Remove):
				slog.Warn("Fixture file removed; keeping current store contents", "file", event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Fixture watcher error", "error", err)
		}
	}
}

func (fw *FixtureWatcher) triggerReload() {
	select {
	case fw.reloadChan <- struct{}{}:
	default:
	}
}

func (fw *FixtureWatcher) reloadLoop(ctx context.Context) {
	defer fw.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-fw.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-fw.reloadChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(fw.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			err := fw.reload(ctx)
			if fw.reloaded != nil {
				select {
				case fw.reloaded <- err:
				case <-fw.done:
					return
				}
			}
		}
	}
}

func (fw *FixtureWatcher) reload(ctx context.Context) error {
	f, err := recipestore.LoadFixture(fw.path)
	if err == nil {
		err = fw.store.Replace(ctx, f)
	}
	fw.recorder.IncFixtureReload(err == nil)
	if err != nil {
		slog.Error("Fixture reload failed; keeping current store contents", "path", fw.path, "error", err)
		return err
	}
	slog.Info("Fixture reloaded", "path", fw.path,
		"stages", len(f.Stages),
		"steps", len(f.TemplateSteps)+len(f.ClonedSteps))
	return nil
}
