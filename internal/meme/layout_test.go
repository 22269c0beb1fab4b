package meme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutLayer_CenteredBlock(t *testing.T) {
	l := TextLayer{ID: 1, Content: "top\nbottom", X: 200, Y: 100, Size: 20, Alignment: AlignCenter, Style: StyleNormal}
	b := LayoutLayer(monoFaces{}, l, 1)

	require.Len(t, b.Lines, 2)
	assert.Equal(t, "TOP", b.Lines[0].Text)
	assert.Equal(t, "BOTTOM", b.Lines[1].Text)
	assert.InDelta(t, 24.0, b.LineHeight, 1e-9)
	// Центры строк симметричны относительно Y
	assert.InDelta(t, 88.0, b.Lines[0].Y, 1e-9)
	assert.InDelta(t, 112.0, b.Lines[1].Y, 1e-9)

	// Рамка: ширина самой длинной строки плюс отступы
	width := 6 * 20 * 0.6
	assert.InDelta(t, 200-width/2-5, b.Bounds.MinX, 1e-9)
	assert.InDelta(t, 200+width/2+5, b.Bounds.MaxX, 1e-9)
	assert.InDelta(t, 100-24-5, b.Bounds.MinY, 1e-9)
	assert.InDelta(t, 100+24+5, b.Bounds.MaxY, 1e-9)
}

func TestLayoutLayer_AlignmentBounds(t *testing.T) {
	base := TextLayer{ID: 1, Content: "abcd", X: 100, Y: 50, Size: 10}
	width := 4 * 10 * 0.6

	base.Alignment = AlignLeft
	b := LayoutLayer(monoFaces{}, base, 1)
	assert.InDelta(t, 100-5, b.Bounds.MinX, 1e-9)
	assert.InDelta(t, 100+width+5, b.Bounds.MaxX, 1e-9)
	assert.Equal(t, 0.0, b.Anchor)

	base.Alignment = AlignRight
	b = LayoutLayer(monoFaces{}, base, 1)
	assert.InDelta(t, 100-width-5, b.Bounds.MinX, 1e-9)
	assert.InDelta(t, 100+5, b.Bounds.MaxX, 1e-9)
	assert.Equal(t, 1.0, b.Anchor)
}

func TestLayoutLayer_WrapUsesScaledWidth(t *testing.T) {
	m := monoFaces{}.Measurer(StyleNormal, 30)
	l := TextLayer{ID: 1, Content: "hello world", X: 200, Y: 200, Size: 30, MaxWidth: m.Measure("HELLO")}

	for _, scale := range []float64{1, 2.7} {
		b := LayoutLayer(monoFaces{}, l, scale)
		require.Len(t, b.Lines, 2, "scale %v", scale)
		assert.Equal(t, "HELLO", b.Lines[0].Text)
		assert.Equal(t, "WORLD", b.Lines[1].Text)
	}
}

func TestLayoutLayer_ExportGeometryIsScaledPreview(t *testing.T) {
	layers := []TextLayer{
		{ID: 1, Content: "one does not\nsimply", X: 200, Y: 40, Size: 30, Alignment: AlignCenter},
		{ID: 2, Content: "export memes", X: 120.5, Y: 333.25, Size: 14, Alignment: AlignLeft},
		{ID: 3, Content: "", X: 10, Y: 390, Size: 60, Alignment: AlignRight},
	}
	const k = 1080.0 / 400.0

	for _, l := range layers {
		preview := LayoutLayer(monoFaces{}, l, 1)
		export := LayoutLayer(monoFaces{}, l, k)

		require.Len(t, export.Lines, len(preview.Lines))
		assert.InDelta(t, preview.LineHeight*k, export.LineHeight, 1e-9)
		assert.InDelta(t, preview.FontSize*k, export.FontSize, 1e-9)
		for i := range preview.Lines {
			assert.InDelta(t, preview.Lines[i].X*k, export.Lines[i].X, 1e-9)
			assert.InDelta(t, preview.Lines[i].Y*k, export.Lines[i].Y, 1e-9)
		}
		assert.InDelta(t, preview.Bounds.MinX*k, export.Bounds.MinX, 1e-9)
		assert.InDelta(t, preview.Bounds.MaxY*k, export.Bounds.MaxY, 1e-9)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	assert.True(t, r.Contains(5, 2))
	assert.True(t, r.Contains(10, 5))
	assert.False(t, r.Contains(10.01, 2))
	assert.False(t, r.Contains(5, -0.1))
	assert.Equal(t, 10.0, r.Width())
	assert.Equal(t, 5.0, r.Height())
}

func TestLayoutLayer_UnicodeUpperCase(t *testing.T) {
	l := TextLayer{ID: 1, Content: "straße\nпривет", X: 200, Y: 100, Size: 20, Alignment: AlignLeft}
	b := LayoutLayer(monoFaces{}, l, 1)

	require.Len(t, b.Lines, 2)
	assert.Equal(t, "STRASSE", b.Lines[0].Text)
	assert.Equal(t, "ПРИВЕТ", b.Lines[1].Text)
	// Рамка меряет уже преобразованную строку
	assert.InDelta(t, 7*20*0.6, b.Lines[0].Width, 1e-9)
}
