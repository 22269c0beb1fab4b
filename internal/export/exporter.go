// Package export renders a composition offscreen at a fixed resolution and
// hands the encoded PNG to one or more sinks.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"go-meme-generator/internal/assets"
	"go-meme-generator/internal/meme"
	"go-meme-generator/pkg/render"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TemplateSource — источник фоновых изображений; Load может блокироваться.
type TemplateSource interface {
	Load(ctx context.Context, id string) (image.Image, error)
}

// Sink получает готовый PNG.
type Sink interface {
	Name() string
	Write(ctx context.Context, png []byte) error
}

// Exporter — one-shot export: await template, paint offscreen, encode.
// Each call owns its face cache and encode buffer, so calls may overlap.
type Exporter struct {
	templates  TemplateSource
	fonts      *assets.FontBook
	compositor *render.Compositor
	size       int
	logger     *zap.Logger
}

func NewExporter(templates TemplateSource, fonts *assets.FontBook, compositor *render.Compositor, size int, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		templates:  templates,
		fonts:      fonts,
		compositor: compositor,
		size:       size,
		logger:     logger,
	}
}

// Size — сторона итогового изображения в пикселях.
func (e *Exporter) Size() int { return e.size }

// Render рисует композицию на поверхности экспорта.
func (e *Exporter) Render(ctx context.Context, comp *meme.Composition) (*image.RGBA, error) {
	bg, err := e.templates.Load(ctx, comp.Template)
	if err != nil {
		return nil, err
	}
	faces := e.fonts.NewFaceCache()
	defer faces.Close()
	return e.compositor.Render(bg, comp, faces, render.ExportSurface(e.size)), nil
}

// Encode рисует и кодирует композицию в PNG.
func (e *Exporter) Encode(ctx context.Context, comp *meme.Composition) ([]byte, error) {
	img, err := e.Render(ctx, comp)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Export кодирует композицию один раз и отдаёт одни и те же байты всем приёмникам.
func (e *Exporter) Export(ctx context.Context, comp *meme.Composition, sinks ...Sink) error {
	data, err := e.Encode(ctx, comp)
	if err != nil {
		e.logger.Error("export render failed", zap.String("template", comp.Template), zap.Error(err))
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, sink := range sinks {
		eg.Go(func() error {
			if err := sink.Write(egCtx, data); err != nil {
				return fmt.Errorf("%s: %w", sink.Name(), err)
			}
			e.logger.Info("meme exported", zap.String("sink", sink.Name()), zap.Int("bytes", len(data)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		e.logger.Warn("export sink failed", zap.Error(err))
		return err
	}
	return nil
}
