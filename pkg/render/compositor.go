package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"go-meme-generator/internal/config"
	"go-meme-generator/internal/meme"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// FaceSource выдаёт начертания для отрисовки и измерители для разметки.
// Реализация не обязана быть потокобезопасной: один FaceSource на один рендер.
type FaceSource interface {
	meme.Faces
	Face(style meme.Style, size float64) font.Face
}

// Surface — целевая поверхность: размер в пикселях и масштаб template-space.
// Рамка выделения рисуется только при Preview.
type Surface struct {
	Width, Height int
	Scale         float64
	Preview       bool
}

// PreviewSurface — поверхность превью 1:1.
func PreviewSurface() Surface {
	size := int(config.TemplateSize * config.PreviewScale)
	return Surface{Width: size, Height: size, Scale: config.PreviewScale, Preview: true}
}

// ExportSurface — квадратная поверхность экспорта заданного размера.
func ExportSurface(size int) Surface {
	return Surface{Width: size, Height: size, Scale: float64(size) / config.TemplateSize}
}

// Compositor рисует шаблон и слои текста. Render — чистая функция от
// (композиция, поверхность): состояние композиции не меняется.
type Compositor struct {
	SelectionColor color.RGBA
	StrokeWidth    float64 // до масштабирования
}

func NewCompositor() *Compositor {
	return &Compositor{
		SelectionColor: config.SelectionColor,
		StrokeWidth:    config.StrokeWidth,
	}
}

// Layout возвращает разметку всех слоёв в порядке отрисовки.
func (c *Compositor) Layout(comp *meme.Composition, faces FaceSource, scale float64) []meme.Block {
	layers := comp.Layers()
	blocks := make([]meme.Block, len(layers))
	for i, l := range layers {
		blocks[i] = meme.LayoutLayer(faces, l, scale)
	}
	return blocks
}

// Render рисует композицию на новой поверхности.
func (c *Compositor) Render(bg image.Image, comp *meme.Composition, faces FaceSource, s Surface) *image.RGBA {
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(color.Transparent)
	dc.Clear()

	// Шаблон растягивается на всю поверхность
	if bg != nil {
		dc.DrawImage(imaging.Resize(bg, s.Width, s.Height, imaging.Lanczos), 0, 0)
	}

	selected, hasSelection := comp.Selected()
	showSelection := hasSelection && s.Preview

	for _, l := range comp.Layers() {
		block := meme.LayoutLayer(faces, l, s.Scale)
		face := faces.Face(l.Style, block.FontSize)
		dc.SetFontFace(face)
		// Базовая линия опущена на половину высоты заглавных: строка центрируется по line.Y
		drop := capHeight(face) / 2
		fill, stroke := l.Colors()
		offsets := strokeOffsets(c.StrokeWidth * s.Scale / 2)

		for _, line := range block.Lines {
			if line.Text == "" {
				continue
			}
			// Сначала обводка: текст, сдвинутый по кольцу вокруг позиции
			dc.SetColor(stroke)
			for _, o := range offsets {
				dc.DrawStringAnchored(line.Text, line.X+o.X, line.Y+drop+o.Y, block.Anchor, 0)
			}
			// Потом заливка
			dc.SetColor(fill)
			dc.DrawStringAnchored(line.Text, line.X, line.Y+drop, block.Anchor, 0)
		}

		if showSelection && l.ID == selected {
			b := block.Bounds
			dc.SetColor(c.SelectionColor)
			dc.SetLineWidth(config.SelectionWidth)
			dc.DrawRectangle(b.MinX, b.MinY, b.Width(), b.Height())
			dc.Stroke()
		}
	}

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out
}

// capHeight — высота заглавных в пикселях. Если шрифт её не сообщает,
// берётся 0.7 от ascent.
func capHeight(face font.Face) float64 {
	m := face.Metrics()
	if m.CapHeight > 0 {
		return float64(m.CapHeight) / 64
	}
	return 0.7 * float64(m.Ascent) / 64
}

// strokeOffsets раскладывает смещения обводки по кольцу радиуса r.
// Число точек растёт с радиусом, чтобы на экспорте не было просветов.
func strokeOffsets(r float64) []gg.Point {
	if r <= 0 {
		return nil
	}
	n := int(math.Max(8, math.Ceil(2*math.Pi*r)))
	points := make([]gg.Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, gg.Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)})
	}
	return points
}
