package assets

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go-meme-generator/internal/defs"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// TemplateWatcher следит за файлами шаблонов из каталога. После изменения
// (с задержкой на серию сохранений) сбрасывает кэш хранилища и вызывает onChange.
// onChange вызывается из горутины наблюдателя.
type TemplateWatcher struct {
	watcher  *fsnotify.Watcher
	store    *TemplateStore
	onChange func()
	logger   *zap.Logger

	paths    map[string]struct{} // абсолютные пути файлов шаблонов
	debounce time.Duration

	mu      sync.Mutex
	running bool
	pending time.Time // время последнего события; ноль, если событий не было
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewTemplateWatcher подписывается на каталоги всех файловых шаблонов.
// Встроенные шаблоны пропускаются.
func NewTemplateWatcher(store *TemplateStore, onChange func(), logger *zap.Logger) (*TemplateWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	tw := &TemplateWatcher{
		watcher:  w,
		store:    store,
		onChange: onChange,
		logger:   logger,
		paths:    make(map[string]struct{}),
		debounce: 300 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, def := range store.Templates() {
		if strings.HasPrefix(def.Path, defs.BuiltinPrefix) {
			continue
		}
		abs, err := filepath.Abs(def.Path)
		if err != nil {
			continue
		}
		tw.paths[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		// Каталога может ещё не быть; такой шаблон просто не перезагружается
		if err := w.Add(dir); err != nil {
			logger.Warn("template dir not watched", zap.String("dir", dir), zap.Error(err))
		}
	}
	return tw, nil
}

// Start запускает цикл наблюдения; не блокирует.
func (tw *TemplateWatcher) Start(ctx context.Context) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.running {
		return
	}
	tw.running = true
	go tw.run(ctx)
}

// Stop останавливает наблюдение и ждёт завершения цикла.
func (tw *TemplateWatcher) Stop() {
	tw.mu.Lock()
	running := tw.running
	tw.running = false
	tw.mu.Unlock()

	if running {
		close(tw.stopCh)
		<-tw.doneCh
	}
	if err := tw.watcher.Close(); err != nil {
		tw.logger.Warn("template watcher close failed", zap.Error(err))
	}
}

func (tw *TemplateWatcher) run(ctx context.Context) {
	defer close(tw.doneCh)

	ticker := time.NewTicker(tw.debounce / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tw.stopCh:
			return
		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			tw.handleEvent(event)
		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			tw.logger.Warn("template watcher error", zap.Error(err))
		case <-ticker.C:
			tw.flushIfSettled()
		}
	}
}

func (tw *TemplateWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, ok := tw.paths[abs]; !ok {
		return
	}
	tw.logger.Debug("template file changed", zap.String("path", abs), zap.Stringer("op", event.Op))
	tw.mu.Lock()
	tw.pending = time.Now()
	tw.mu.Unlock()
}

func (tw *TemplateWatcher) flushIfSettled() {
	tw.mu.Lock()
	if tw.pending.IsZero() || time.Since(tw.pending) < tw.debounce {
		tw.mu.Unlock()
		return
	}
	tw.pending = time.Time{}
	tw.mu.Unlock()

	tw.store.Invalidate()
	if tw.onChange != nil {
		tw.onChange()
	}
}
