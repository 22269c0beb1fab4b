package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"sync"
	"testing"

	"go-meme-generator/internal/assets"
	"go-meme-generator/internal/defs"
	"go-meme-generator/internal/meme"
	"go-meme-generator/pkg/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTemplates struct {
	err error
}

func (f fakeTemplates) Load(ctx context.Context, id string) (image.Image, error) {
	if f.err != nil {
		return nil, &assets.TemplateLoadError{Template: id, Err: f.err}
	}
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{20, 60, 20, 255}), image.Point{}, draw.Src)
	return img, nil
}

type memorySink struct {
	mu   sync.Mutex
	data []byte
	err  error
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Write(_ context.Context, png []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data = append([]byte(nil), png...)
	return nil
}

type fakeClipboard struct {
	data []byte
	err  error
}

func (c *fakeClipboard) WriteImage(png []byte) error {
	if c.err != nil {
		return c.err
	}
	c.data = append([]byte(nil), png...)
	return nil
}

func newExporter(t *testing.T, templates TemplateSource, size int) *Exporter {
	t.Helper()
	book, err := assets.NewFontBook()
	require.NoError(t, err)
	return NewExporter(templates, book, render.NewCompositor(), size, zaptest.NewLogger(t))
}

func testComposition(t *testing.T) *meme.Composition {
	t.Helper()
	c := meme.NewComposition("T1")
	require.NoError(t, c.SetContent(1, "top text"))
	require.NoError(t, c.SetContent(2, "bottom text"))
	require.NoError(t, c.Select(1))
	return c
}

func TestExport_FileAndClipboardIdentical(t *testing.T) {
	e := newExporter(t, fakeTemplates{}, 1080)
	dir := t.TempDir()
	file := FileSink{Dir: dir, FileName: "meme.png"}
	clip := &fakeClipboard{}

	require.NoError(t, e.Export(context.Background(), testComposition(t), file, ClipboardSink{Writer: clip}))

	onDisk, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(onDisk, clip.data), "file and clipboard payloads differ")

	img, err := png.Decode(bytes.NewReader(onDisk))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1080, 1080), img.Bounds())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "временный файл не должен оставаться")
}

func TestExport_TemplateLoadError(t *testing.T) {
	e := newExporter(t, fakeTemplates{err: os.ErrNotExist}, 400)
	sink := &memorySink{}

	err := e.Export(context.Background(), testComposition(t), sink)
	var loadErr *assets.TemplateLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "T1", loadErr.Template)
	assert.Nil(t, sink.data)
}

func TestExport_ClipboardFailureKeepsComposition(t *testing.T) {
	e := newExporter(t, fakeTemplates{}, 400)
	comp := testComposition(t)
	before := comp.Clone()

	err := e.Export(context.Background(), comp, ClipboardSink{Writer: &fakeClipboard{err: ErrClipboardRejected}})
	require.Error(t, err)
	assert.True(t, IsClipboardError(err))
	assert.Equal(t, before.Layers(), comp.Layers())

	err = e.Export(context.Background(), comp, ClipboardSink{})
	assert.ErrorIs(t, err, ErrClipboardUnavailable)
	assert.False(t, IsClipboardError(errors.New("disk full")))
}

func TestExport_ConcurrentCallsAreIndependent(t *testing.T) {
	e := newExporter(t, fakeTemplates{}, 600)
	comp := testComposition(t)

	sinks := []*memorySink{{}, {}, {}}
	var wg sync.WaitGroup
	errs := make([]error, len(sinks))
	for i, sink := range sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = e.Export(context.Background(), comp.Clone(), sink)
		}()
	}
	wg.Wait()

	for i := range sinks {
		require.NoError(t, errs[i])
		assert.True(t, bytes.Equal(sinks[0].data, sinks[i].data))
	}
}

func TestExport_RenderMatchesEncode(t *testing.T) {
	e := newExporter(t, fakeTemplates{}, 540)
	comp := testComposition(t)

	img, err := e.Render(context.Background(), comp)
	require.NoError(t, err)
	data, err := e.Encode(context.Background(), comp)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	nrgba := image.NewRGBA(decoded.Bounds())
	draw.Draw(nrgba, nrgba.Bounds(), decoded, image.Point{}, draw.Src)
	assert.Equal(t, img.Bounds(), nrgba.Bounds())
	assert.Equal(t, 540, e.Size())
}

func TestExport_SelectionNotExportedAtTemplateSize(t *testing.T) {
	e := newExporter(t, fakeTemplates{}, 400)
	comp := testComposition(t)

	withSelection, err := e.Encode(context.Background(), comp)
	require.NoError(t, err)
	comp.ClearSelection()
	without, err := e.Encode(context.Background(), comp)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(withSelection, without))
}

func TestExport_WithTemplateStore(t *testing.T) {
	store, err := assets.NewTemplateStore([]defs.TemplateDefinition{{ID: "T1", Path: "builtin:#202020"}}, 0, 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	e := newExporter(t, store, 400)
	sink := &memorySink{}

	require.NoError(t, e.Export(context.Background(), testComposition(t), sink))
	assert.NotEmpty(t, sink.data)
}
