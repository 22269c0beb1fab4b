package meme

import (
	"go-meme-generator/internal/config"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Faces выдаёт измеритель для начертания и размера в пикселях поверхности.
type Faces interface {
	Measurer(style Style, size float64) Measurer
}

// Rect — прямоугольник в координатах поверхности.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains — попадание точки, границы включительно.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Line — одна отрисовываемая строка. X — точка привязки по выравниванию,
// Y — вертикальный центр строки.
type Line struct {
	Text  string
	X, Y  float64
	Width float64
}

// Block — разметка слоя на поверхности с заданным масштабом.
type Block struct {
	Lines      []Line
	FontSize   float64
	LineHeight float64
	Anchor     float64
	Bounds     Rect // рамка выделения и зона попадания
}

// LayoutLayer раскладывает слой на строки. Результат используется и при
// отрисовке, и при проверке попадания, поэтому рамка всегда совпадает с текстом.
func LayoutLayer(faces Faces, l TextLayer, scale float64) Block {
	fontSize := l.Size * scale
	m := faces.Measurer(l.Style, fontSize)
	// Caser хранит состояние, поэтому свой на каждый вызов
	lines := SplitLines(m, cases.Upper(language.Und).String(l.Content), l.MaxWidth*scale)

	lineHeight := l.Size * config.LineHeightFactor * scale
	x := l.X * scale
	centerY := l.Y * scale
	y := centerY - float64(len(lines))*lineHeight/2 + lineHeight/2

	b := Block{
		Lines:      make([]Line, 0, len(lines)),
		FontSize:   fontSize,
		LineHeight: lineHeight,
		Anchor:     l.Alignment.Anchor(),
	}

	maxWidth := 0.0
	for _, text := range lines {
		w := m.Measure(text)
		if w > maxWidth {
			maxWidth = w
		}
		b.Lines = append(b.Lines, Line{Text: text, X: x, Y: y, Width: w})
		y += lineHeight
	}

	pad := config.SelectionPadding * scale
	left := x - maxWidth*b.Anchor
	halfHeight := float64(len(lines)) * lineHeight / 2
	b.Bounds = Rect{
		MinX: left - pad,
		MinY: centerY - halfHeight - pad,
		MaxX: left + maxWidth + pad,
		MaxY: centerY + halfHeight + pad,
	}
	return b
}
