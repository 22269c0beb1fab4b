// Package app wires the meme compositor together: it owns the composition,
// routes pointer input to the drag controller, keeps the preview current and
// runs export jobs. It has no dependency on the windowing layer.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"go-meme-generator/internal/assets"
	"go-meme-generator/internal/config"
	"go-meme-generator/internal/defs"
	"go-meme-generator/internal/event"
	"go-meme-generator/internal/export"
	"go-meme-generator/internal/meme"
	"go-meme-generator/pkg/render"

	"go.uber.org/zap"
)

// Clicker — звук клика (sound.Player).
type Clicker interface {
	Play()
}

type muter interface {
	SetMuted(muted bool)
}

type invalidator interface {
	Invalidate()
}

// ExportKind — куда отправляется результат экспорта.
type ExportKind int

const (
	ExportFile ExportKind = iota
	ExportClipboard
)

func (k ExportKind) String() string {
	if k == ExportClipboard {
		return "clipboard"
	}
	return "file"
}

// ExportResult — итог одного экспорта.
type ExportResult struct {
	Kind ExportKind
	Path string // только для ExportFile
	Err  error
}

// Options — зависимости редактора.
type Options struct {
	Templates  []defs.TemplateDefinition
	Source     export.TemplateSource
	Fonts      *assets.FontBook
	Compositor *render.Compositor
	Exporter   *export.Exporter
	FileSink   export.FileSink
	Clipboard  export.ClipboardWriter
	Dispatcher *event.Dispatcher
	Sound      Clicker
	Logger     *zap.Logger
}

// Editor — состояние редактора мемов. Все методы, кроме экспорта,
// вызываются из потока UI.
type Editor struct {
	comp       *meme.Composition
	templates  []defs.TemplateDefinition
	source     export.TemplateSource
	sound      Clicker
	muted      bool
	faces      *assets.FaceCache
	drag       *meme.Dragger
	preview    *Preview
	exporter   *export.Exporter
	fileSink   export.FileSink
	clipboard  export.ClipboardWriter
	dispatcher *event.Dispatcher
	logger     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	jobs   sync.WaitGroup
	stale  atomic.Bool // шаблоны изменились на диске

	mu       sync.Mutex
	finished []ExportResult
}

func NewEditor(opts Options) (*Editor, error) {
	if err := defs.ValidateTemplates(opts.Templates); err != nil {
		return nil, err
	}
	if opts.Source == nil || opts.Fonts == nil || opts.Exporter == nil {
		return nil, errors.New("editor: template source, fonts and exporter are required")
	}
	if opts.Compositor == nil {
		opts.Compositor = render.NewCompositor()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = event.NewDispatcher()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	comp := meme.NewComposition(opts.Templates[0].ID)
	faces := opts.Fonts.NewFaceCache()
	ctx, cancel := context.WithCancel(context.Background())

	e := &Editor{
		comp:       comp,
		templates:  opts.Templates,
		source:     opts.Source,
		sound:      opts.Sound,
		faces:      faces,
		drag:       meme.NewDragger(comp, faces, config.PreviewScale),
		preview:    NewPreview(opts.Source, opts.Compositor, faces, opts.Logger),
		exporter:   opts.Exporter,
		fileSink:   opts.FileSink,
		clipboard:  opts.Clipboard,
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	if opts.Sound != nil {
		click := event.ListenerFunc(func(event.Event) { opts.Sound.Play() })
		e.dispatcher.SubscribeAll(click, event.LayerAdded, event.TemplateChanged, event.ExportFinished)
	}

	e.preview.Request(e.comp)
	return e, nil
}

// Dispatcher — диспетчер событий редактора.
func (e *Editor) Dispatcher() *event.Dispatcher { return e.dispatcher }

// Composition — снимок текущей композиции.
func (e *Editor) Composition() *meme.Composition { return e.comp.Clone() }

// Layers — слои в порядке отрисовки.
func (e *Editor) Layers() []meme.TextLayer { return e.comp.Layers() }

// Selected — ID выбранного слоя.
func (e *Editor) Selected() (int, bool) { return e.comp.Selected() }

// Templates — каталог шаблонов.
func (e *Editor) Templates() []defs.TemplateDefinition { return e.templates }

// Template — текущий шаблон.
func (e *Editor) Template() defs.TemplateDefinition {
	def, _ := defs.Find(e.templates, e.comp.Template)
	return def
}

// changed перезапрашивает превью и публикует событие.
func (e *Editor) changed(t event.EventType, data interface{}) {
	e.preview.Request(e.comp)
	e.dispatcher.Dispatch(event.Event{Type: t, Data: data})
}

// edit применяет изменение слоя и, если оно прошло, сообщает о нём.
func (e *Editor) edit(id int, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	e.changed(event.LayerChanged, id)
	return nil
}

// AddLayer добавляет слой и выбирает его.
func (e *Editor) AddLayer() int {
	id := e.comp.AddLayer()
	_ = e.comp.Select(id)
	e.changed(event.LayerAdded, id)
	return id
}

// Select выбирает слой.
func (e *Editor) Select(id int) error {
	if err := e.comp.Select(id); err != nil {
		return err
	}
	e.changed(event.LayerSelected, id)
	return nil
}

func (e *Editor) SetContent(id int, content string) error {
	return e.edit(id, func() error { return e.comp.SetContent(id, content) })
}

// AppendText дописывает набранный текст в конец слоя.
func (e *Editor) AppendText(id int, s string) error {
	l, ok := e.comp.Layer(id)
	if !ok {
		return fmt.Errorf("%w: %d", meme.ErrLayerNotFound, id)
	}
	return e.SetContent(id, l.Content+s)
}

// Backspace удаляет последний символ слоя.
func (e *Editor) Backspace(id int) error {
	l, ok := e.comp.Layer(id)
	if !ok {
		return fmt.Errorf("%w: %d", meme.ErrLayerNotFound, id)
	}
	if l.Content == "" {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(l.Content)
	return e.SetContent(id, l.Content[:len(l.Content)-size])
}

func (e *Editor) CycleScheme(id int) error {
	l, ok := e.comp.Layer(id)
	if !ok {
		return fmt.Errorf("%w: %d", meme.ErrLayerNotFound, id)
	}
	return e.edit(id, func() error { return e.comp.SetScheme(id, next(config.SchemeOrder, l.Scheme)) })
}

func (e *Editor) CycleStyle(id int) error {
	l, ok := e.comp.Layer(id)
	if !ok {
		return fmt.Errorf("%w: %d", meme.ErrLayerNotFound, id)
	}
	return e.edit(id, func() error { return e.comp.SetStyle(id, next(meme.Styles, l.Style)) })
}

func (e *Editor) CycleAlignment(id int) error {
	l, ok := e.comp.Layer(id)
	if !ok {
		return fmt.Errorf("%w: %d", meme.ErrLayerNotFound, id)
	}
	return e.edit(id, func() error { return e.comp.SetAlignment(id, next(meme.Alignments, l.Alignment)) })
}

func (e *Editor) SetMaxWidth(id int, w float64) error {
	return e.edit(id, func() error { return e.comp.SetMaxWidth(id, w) })
}

// AdjustSize меняет размер шрифта; выход за пределы молча ограничивается.
func (e *Editor) AdjustSize(id int, delta float64) error {
	return e.edit(id, func() error { return e.comp.AdjustSize(id, delta) })
}

// SelectTemplate меняет фон; слои не трогаются.
func (e *Editor) SelectTemplate(id string) error {
	if _, err := defs.Find(e.templates, id); err != nil {
		return err
	}
	if e.comp.Template == id {
		return nil
	}
	e.comp.Template = id
	e.changed(event.TemplateChanged, id)
	return nil
}

// NextTemplate переключает на следующий шаблон каталога.
func (e *Editor) NextTemplate() {
	ids := make([]string, len(e.templates))
	for i, def := range e.templates {
		ids[i] = def.ID
	}
	_ = e.SelectTemplate(next(ids, e.comp.Template))
}

// ReloadTemplates сбрасывает кэш шаблонов, если источник это умеет,
// и перезапрашивает превью.
func (e *Editor) ReloadTemplates() {
	if inv, ok := e.source.(invalidator); ok {
		inv.Invalidate()
	}
	e.preview.Request(e.comp)
}

// MarkTemplatesStale просит перезагрузить шаблоны в следующем Update.
// Безопасен для вызова из любой горутины.
func (e *Editor) MarkTemplatesStale() { e.stale.Store(true) }

// ToggleMute включает и выключает звук клика. Возвращает новое состояние.
func (e *Editor) ToggleMute() bool {
	m, ok := e.sound.(muter)
	if !ok {
		return e.muted
	}
	e.muted = !e.muted
	m.SetMuted(e.muted)
	return e.muted
}

// PointerDown — нажатие на превью в пикселях превью.
func (e *Editor) PointerDown(x, y float64) {
	before, _ := e.comp.Selected()
	e.drag.PointerDown(x, y)
	after, _ := e.comp.Selected()
	if before != after {
		e.changed(event.LayerSelected, after)
	}
}

// PointerMove — движение курсора; двигает слой только во время перетаскивания.
func (e *Editor) PointerMove(x, y float64) {
	if e.drag.PointerMove(x, y) {
		id, _ := e.comp.Selected()
		e.changed(event.LayerChanged, id)
	}
}

// PointerUp — отпускание кнопки или уход курсора с превью.
func (e *Editor) PointerUp() { e.drag.PointerUp() }

// Dragging — идёт ли перетаскивание.
func (e *Editor) Dragging() bool { return e.drag.Dragging() }

// StartExport запускает экспорт снимка композиции в фоне.
// Результат появится в Update.
func (e *Editor) StartExport(kind ExportKind) {
	snap := e.comp.Clone()
	var sink export.Sink = e.fileSink
	if kind == ExportClipboard {
		sink = export.ClipboardSink{Writer: e.clipboard}
	}

	e.jobs.Add(1)
	go func() {
		defer e.jobs.Done()
		res := ExportResult{Kind: kind}
		if kind == ExportFile {
			res.Path = e.fileSink.Path()
		}
		res.Err = e.exporter.Export(e.ctx, snap, sink)

		e.mu.Lock()
		e.finished = append(e.finished, res)
		e.mu.Unlock()
	}()
}

// Update применяет загрузки превью и возвращает завершившиеся экспорты.
func (e *Editor) Update() []ExportResult {
	if e.stale.Swap(false) {
		e.preview.Request(e.comp)
	}
	e.preview.Poll()

	e.mu.Lock()
	results := e.finished
	e.finished = nil
	e.mu.Unlock()

	for _, res := range results {
		if res.Err != nil {
			e.logger.Warn("export failed", zap.Stringer("kind", res.Kind), zap.Error(res.Err))
			e.dispatcher.Dispatch(event.Event{Type: event.ExportFailed, Data: res})
			continue
		}
		e.logger.Info("export finished", zap.Stringer("kind", res.Kind), zap.String("path", res.Path))
		e.dispatcher.Dispatch(event.Event{Type: event.ExportFinished, Data: res})
	}
	return results
}

// Frame — текущий кадр превью.
func (e *Editor) Frame() *image.RGBA { return e.preview.Frame() }

// PreviewErr — ошибка загрузки шаблона для последнего запроса превью.
func (e *Editor) PreviewErr() error { return e.preview.Err() }

// Close отменяет фоновую работу и освобождает начертания.
func (e *Editor) Close() {
	e.cancel()
	e.jobs.Wait()
	e.preview.Close()
	e.faces.Close()
}

// next возвращает элемент, следующий за cur (по кругу).
func next[T comparable](items []T, cur T) T {
	for i, it := range items {
		if it == cur {
			return items[(i+1)%len(items)]
		}
	}
	return items[0]
}
