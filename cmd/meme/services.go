// cmd/meme/services.go
package main

import (
	"go-meme-generator/internal/assets"
	"go-meme-generator/internal/clipboard"
	"go-meme-generator/internal/config"
	"go-meme-generator/internal/defs"
	"go-meme-generator/internal/export"
	"go-meme-generator/pkg/render"

	"go.uber.org/zap"
)

// services — общие зависимости редактора и экспорта.
type services struct {
	catalog    []defs.TemplateDefinition
	store      *assets.TemplateStore
	fonts      *assets.FontBook
	compositor *render.Compositor
	exporter   *export.Exporter
	fileSink   export.FileSink
	clipboard  *clipboard.Writer
}

func newServices(s config.Settings, logger *zap.Logger) (*services, error) {
	catalog := defs.DefaultTemplates()
	if s.TemplatesFile != "" {
		loaded, err := defs.LoadTemplateDefinitions(s.TemplatesFile)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	store, err := assets.NewTemplateStore(catalog, s.TemplateTTL, config.TemplateCleanupTick, logger)
	if err != nil {
		return nil, err
	}
	fonts, err := assets.NewFontBook()
	if err != nil {
		return nil, err
	}
	compositor := render.NewCompositor()

	logger.Debug("services ready",
		zap.Int("templates", len(catalog)),
		zap.Int("export_size", s.ExportSize),
		zap.Float64("export_scale", s.ExportScale()),
		zap.String("output_dir", s.OutputDir))

	return &services{
		catalog:    catalog,
		store:      store,
		fonts:      fonts,
		compositor: compositor,
		exporter:   export.NewExporter(store, fonts, compositor, s.ExportSize, logger),
		fileSink:   export.FileSink{Dir: s.OutputDir, FileName: s.OutputFile},
		clipboard:  clipboard.New(),
	}, nil
}
