package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"go-meme-generator/internal/assets"
	"go-meme-generator/internal/config"
	"go-meme-generator/internal/meme"
	"go-meme-generator/pkg/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func newFaces(t *testing.T) *assets.FaceCache {
	t.Helper()
	book, err := assets.NewFontBook()
	require.NoError(t, err)
	faces := book.NewFaceCache()
	t.Cleanup(faces.Close)
	return faces
}

func sampleComposition(t *testing.T) *meme.Composition {
	t.Helper()
	c := meme.NewComposition("T1")
	require.NoError(t, c.SetContent(1, "one does not simply"))
	require.NoError(t, c.SetMaxWidth(1, 250))
	require.NoError(t, c.SetContent(2, "render\ntwice"))
	require.NoError(t, c.SetScheme(2, config.SchemeWhiteBlack))
	require.NoError(t, c.SetStyle(2, meme.StyleBold))
	return c
}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestRender_Deterministic(t *testing.T) {
	comp := sampleComposition(t)
	bg := solid(64, 48, color.RGBA{40, 40, 90, 255})
	c := render.NewCompositor()

	first := c.Render(bg, comp, newFaces(t), render.PreviewSurface())
	second := c.Render(bg, comp, newFaces(t), render.PreviewSurface())
	assert.True(t, bytes.Equal(first.Pix, second.Pix))

	exp1 := c.Render(bg, comp, newFaces(t), render.ExportSurface(1080))
	exp2 := c.Render(bg, comp, newFaces(t), render.ExportSurface(1080))
	assert.Equal(t, image.Rect(0, 0, 1080, 1080), exp1.Bounds())
	assert.True(t, bytes.Equal(exp1.Pix, exp2.Pix))
}

func TestRender_StretchesTemplate(t *testing.T) {
	comp := meme.NewComposition("T1") // пустые слои — только фон
	red := color.RGBA{255, 0, 0, 255}
	img := render.NewCompositor().Render(solid(8, 6, red), comp, newFaces(t), render.PreviewSurface())

	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(399, 399))
	assert.Equal(t, red, img.RGBAAt(200, 10))
}

func TestRender_PaintsFillAndStroke(t *testing.T) {
	comp := meme.NewEmptyComposition("T1")
	id := comp.AddLayer()
	require.NoError(t, comp.SetContent(id, "hello"))
	require.NoError(t, comp.AdjustSize(id, 20))

	white := color.RGBA{255, 255, 255, 255}
	img := render.NewCompositor().Render(solid(4, 4, white), comp, newFaces(t), render.PreviewSurface())

	scheme := config.ColorSchemes[config.SchemeGreen]
	assert.Greater(t, countColor(img, scheme.Fill), 20, "залитые пиксели")
	assert.Greater(t, countColor(img, scheme.Stroke), 20, "пиксели обводки")
}

func TestRender_SelectionOnlyInPreview(t *testing.T) {
	comp := sampleComposition(t)
	bg := solid(4, 4, color.RGBA{30, 30, 30, 255})
	c := render.NewCompositor()

	plainPreview := c.Render(bg, comp, newFaces(t), render.PreviewSurface())
	plainExport := c.Render(bg, comp, newFaces(t), render.ExportSurface(800))

	require.NoError(t, comp.Select(2))
	selPreview := c.Render(bg, comp, newFaces(t), render.PreviewSurface())
	selExport := c.Render(bg, comp, newFaces(t), render.ExportSurface(800))

	assert.False(t, bytes.Equal(plainPreview.Pix, selPreview.Pix), "рамка видна в превью")
	assert.True(t, bytes.Equal(plainExport.Pix, selExport.Pix), "рамки нет на экспорте")
}

func TestRender_DoesNotMutateComposition(t *testing.T) {
	comp := sampleComposition(t)
	require.NoError(t, comp.Select(1))
	before := comp.Clone()

	render.NewCompositor().Render(solid(4, 4, color.Black), comp, newFaces(t), render.ExportSurface(1080))

	assert.Equal(t, before.Layers(), comp.Layers())
	assert.Equal(t, before.Template, comp.Template)
	sel, _ := comp.Selected()
	assert.Equal(t, 1, sel)
}

func TestLayout_ExportIsScaledPreview(t *testing.T) {
	comp := sampleComposition(t)
	require.NoError(t, comp.SetMaxWidth(1, 0)) // перенос на разных размерах может отличаться на пиксель
	c := render.NewCompositor()
	exportSurface := render.ExportSurface(1080)
	k := exportSurface.Scale

	preview := c.Layout(comp, newFaces(t), 1)
	export := c.Layout(comp, newFaces(t), k)
	require.Len(t, export, len(preview))
	for i := range preview {
		require.Len(t, export[i].Lines, len(preview[i].Lines))
		for j := range preview[i].Lines {
			assert.InDelta(t, preview[i].Lines[j].X*k, export[i].Lines[j].X, 1e-9)
			assert.InDelta(t, preview[i].Lines[j].Y*k, export[i].Lines[j].Y, 1e-9)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := render.ParseHexColor("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, c)

	c, err = render.ParseHexColor("fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c)

	for _, bad := range []string{"", "#12", "#gggggg", "#1234567"} {
		_, err := render.ParseHexColor(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, color.RGBA{50, 100, 0, 255}, render.DarkenColor(color.RGBA{100, 200, 0, 255}))
}

func TestRender_NoSelectionOnExportAtPreviewScale(t *testing.T) {
	comp := sampleComposition(t)
	bg := solid(4, 4, color.RGBA{30, 30, 30, 255})
	c := render.NewCompositor()

	s := render.ExportSurface(400)
	require.Equal(t, render.PreviewSurface().Scale, s.Scale)
	assert.False(t, s.Preview)

	plain := c.Render(bg, comp, newFaces(t), s)
	require.NoError(t, comp.Select(1))
	selected := c.Render(bg, comp, newFaces(t), s)

	assert.True(t, bytes.Equal(plain.Pix, selected.Pix), "рамки нет на экспорте того же размера, что превью")
}

func TestRender_GlyphsCenteredOnLayerY(t *testing.T) {
	comp := meme.NewEmptyComposition("T1")
	id := comp.AddLayer()
	require.NoError(t, comp.SetContent(id, "HEH"))
	l, ok := comp.Layer(id)
	require.True(t, ok)

	// Без шаблона фон прозрачный, текст ищется по альфе
	img := render.NewCompositor().Render(nil, comp, newFaces(t), render.PreviewSurface())

	top, bottom := -1, -1
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				if top < 0 {
					top = y
				}
				bottom = y
				break
			}
		}
	}
	require.GreaterOrEqual(t, top, 0, "текст не нарисован")
	assert.InDelta(t, l.Y, float64(top+bottom)/2, 2.5)
}
