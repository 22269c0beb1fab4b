package app

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"go-meme-generator/internal/assets"
	"go-meme-generator/internal/export"
	"go-meme-generator/internal/meme"
	"go-meme-generator/pkg/render"

	"go.uber.org/zap"
)

type loadResult struct {
	seq  uint64
	comp *meme.Composition
	bg   image.Image
	err  error
}

// Preview перерисовывает превью после асинхронной загрузки шаблона.
// Каждый запрос получает номер; результаты, номер которых уже не последний,
// отбрасываются. Отрисовка идёт в Poll, то есть в потоке вызывающего (UI).
type Preview struct {
	templates  export.TemplateSource
	compositor *render.Compositor
	faces      *assets.FaceCache
	logger     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup

	seq     atomic.Uint64
	mu      sync.Mutex
	pending []loadResult

	// Поля ниже трогает только поток UI
	frame    *image.RGBA
	frameSeq uint64
	err      error
}

func NewPreview(templates export.TemplateSource, compositor *render.Compositor, faces *assets.FaceCache, logger *zap.Logger) *Preview {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Preview{
		templates:  templates,
		compositor: compositor,
		faces:      faces,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Request запускает загрузку шаблона для снимка композиции и возвращает номер запроса.
func (p *Preview) Request(comp *meme.Composition) uint64 {
	seq := p.seq.Add(1)
	snap := comp.Clone()

	p.loads.Add(1)
	go func() {
		defer p.loads.Done()
		bg, err := p.templates.Load(p.ctx, snap.Template)
		p.mu.Lock()
		p.pending = append(p.pending, loadResult{seq: seq, comp: snap, bg: bg, err: err})
		p.mu.Unlock()
	}()
	return seq
}

// Poll применяет завершённые загрузки. Возвращает true, если кадр обновился.
func (p *Preview) Poll() bool {
	p.mu.Lock()
	results := p.pending
	p.pending = nil
	p.mu.Unlock()

	latest := p.seq.Load()
	changed := false
	for _, r := range results {
		if r.seq != latest {
			p.logger.Debug("stale preview load discarded", zap.Uint64("seq", r.seq), zap.Uint64("latest", latest))
			continue
		}
		if r.err != nil {
			// Предыдущий кадр остаётся на экране
			p.err = r.err
			p.logger.Warn("preview template load failed", zap.Error(r.err))
			continue
		}
		p.frame = p.compositor.Render(r.bg, r.comp, p.faces, render.PreviewSurface())
		p.frameSeq = r.seq
		p.err = nil
		changed = true
	}
	return changed
}

// Frame — последний успешно отрисованный кадр (nil до первой отрисовки).
func (p *Preview) Frame() *image.RGBA { return p.frame }

// FrameSeq — номер запроса, из которого получен текущий кадр.
func (p *Preview) FrameSeq() uint64 { return p.frameSeq }

// Latest — номер последнего запроса.
func (p *Preview) Latest() uint64 { return p.seq.Load() }

// Err — ошибка последнего запроса (*assets.TemplateLoadError) или nil.
func (p *Preview) Err() error { return p.err }

// Close отменяет незавершённые загрузки и ждёт их.
func (p *Preview) Close() {
	p.cancel()
	p.loads.Wait()
}
