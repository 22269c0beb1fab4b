// cmd/meme/export.go
package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"go-meme-generator/internal/defs"
	"go-meme-generator/internal/export"
	"go-meme-generator/internal/meme"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type exportOptions struct {
	template  string
	texts     []string
	maxWidth  float64
	size      float64
	scheme    string
	style     string
	align     string
	out       string
	clipboard bool
	noFile    bool
}

var exportOpts exportOptions

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a meme without opening the editor",
	Long: `Renders a composition headlessly and writes the PNG to a file and/or the clipboard.

The first --text goes to the top layer, the second to the bottom layer,
every further --text adds a new layer.

Example:
  meme export --template T2 --text "one does not simply" --text "write memes in go" --out out/meme.png`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOpts.template, "template", "t", "", "template ID (default: first in the catalog)")
	f.StringArrayVar(&exportOpts.texts, "text", nil, "layer text, repeatable")
	f.Float64Var(&exportOpts.maxWidth, "max-width", 0, "wrap width in template pixels (0 disables wrapping)")
	f.Float64Var(&exportOpts.size, "size", 0, "font size for every layer (0 keeps the default)")
	f.StringVar(&exportOpts.scheme, "scheme", "", "color scheme for every layer")
	f.StringVar(&exportOpts.style, "style", "", "font style: normal, bold or italic")
	f.StringVar(&exportOpts.align, "align", "", "alignment: left, center or right")
	f.StringVarP(&exportOpts.out, "out", "o", "", "output PNG path (default: output_dir/output_file from settings)")
	f.BoolVar(&exportOpts.clipboard, "clipboard", false, "also copy the PNG to the clipboard")
	f.BoolVar(&exportOpts.noFile, "no-file", false, "skip writing the file (use with --clipboard)")
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, err := newServices(settings, logger)
	if err != nil {
		return err
	}

	templateID := exportOpts.template
	if templateID == "" {
		templateID = svc.catalog[0].ID
	}
	if _, err := defs.Find(svc.catalog, templateID); err != nil {
		return err
	}

	comp, err := buildComposition(templateID, exportOpts)
	if err != nil {
		return err
	}

	var sinks []export.Sink
	fileSink := svc.fileSink
	if exportOpts.out != "" {
		fileSink = export.FileSink{Dir: filepath.Dir(exportOpts.out), FileName: filepath.Base(exportOpts.out)}
	}
	if !exportOpts.noFile {
		sinks = append(sinks, fileSink)
	}
	if exportOpts.clipboard {
		sinks = append(sinks, export.ClipboardSink{Writer: svc.clipboard})
	}
	if len(sinks) == 0 {
		return errors.New("nothing to do: --no-file without --clipboard")
	}

	if err := svc.exporter.Export(cmd.Context(), comp, sinks...); err != nil {
		return err
	}

	logger.Info("export done", zap.String("template", templateID), zap.Int("layers", comp.Len()))
	if !exportOpts.noFile {
		fmt.Fprintln(cmd.OutOrStdout(), fileSink.Path())
	}
	return nil
}

// buildComposition собирает композицию из флагов.
func buildComposition(templateID string, opts exportOptions) (*meme.Composition, error) {
	comp := meme.NewComposition(templateID)
	for i, t := range opts.texts {
		id := i + 1
		if i >= comp.Len() {
			id = comp.AddLayer()
		}
		if err := comp.SetContent(id, t); err != nil {
			return nil, err
		}
	}

	for _, l := range comp.Layers() {
		if err := applyLayerFlags(comp, l, opts); err != nil {
			return nil, err
		}
	}
	return comp, nil
}

func applyLayerFlags(comp *meme.Composition, l meme.TextLayer, opts exportOptions) error {
	if err := comp.SetMaxWidth(l.ID, opts.maxWidth); err != nil {
		return err
	}
	if opts.size > 0 {
		if err := comp.AdjustSize(l.ID, opts.size-l.Size); err != nil {
			return err
		}
	}
	if opts.scheme != "" {
		if err := comp.SetScheme(l.ID, opts.scheme); err != nil {
			return err
		}
	}
	if opts.style != "" {
		if err := comp.SetStyle(l.ID, meme.Style(opts.style)); err != nil {
			return err
		}
	}
	if opts.align != "" {
		if err := comp.SetAlignment(l.ID, meme.Alignment(opts.align)); err != nil {
			return err
		}
	}
	return nil
}
