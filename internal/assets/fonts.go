package assets

import (
	"fmt"

	"go-meme-generator/internal/meme"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontBook хранит разобранные шрифты. opentype.Font неизменяем, поэтому
// FontBook можно делить между горутинами, font.Face нельзя: для него FaceCache.
type FontBook struct {
	fonts map[meme.Style]*opentype.Font
}

// NewFontBook разбирает встроенные моноширинные шрифты Go Mono.
func NewFontBook() (*FontBook, error) {
	sources := map[meme.Style][]byte{
		meme.StyleNormal: gomono.TTF,
		meme.StyleBold:   gomonobold.TTF,
		meme.StyleItalic: gomonoitalic.TTF,
	}
	b := &FontBook{fonts: make(map[meme.Style]*opentype.Font, len(sources))}
	for style, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s font: %w", style, err)
		}
		b.fonts[style] = f
	}
	return b, nil
}

// NewFaceCache создаёт кэш начертаний для одного потока отрисовки.
func (b *FontBook) NewFaceCache() *FaceCache {
	return &FaceCache{book: b, faces: make(map[faceKey]font.Face)}
}

type faceKey struct {
	style meme.Style
	size  float64
}

// FaceCache — кэш font.Face по (начертание, размер). Не потокобезопасен.
type FaceCache struct {
	book  *FontBook
	faces map[faceKey]font.Face
}

// Face возвращает начертание указанного размера в пикселях.
func (c *FaceCache) Face(style meme.Style, size float64) font.Face {
	key := faceKey{style: style, size: size}
	if face, ok := c.faces[key]; ok {
		return face
	}

	f, ok := c.book.fonts[style]
	if !ok {
		f = c.book.fonts[meme.StyleNormal]
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone, // без хинтинга ширины масштабируются линейно
	})
	if err != nil {
		face = basicfont.Face7x13
	}
	c.faces[key] = face
	return face
}

// Measurer реализует meme.Faces.
func (c *FaceCache) Measurer(style meme.Style, size float64) meme.Measurer {
	return faceMeasurer{face: c.Face(style, size)}
}

// Close освобождает все созданные начертания.
func (c *FaceCache) Close() {
	for key, face := range c.faces {
		_ = face.Close()
		delete(c.faces, key)
	}
}

type faceMeasurer struct {
	face font.Face
}

func (m faceMeasurer) Measure(s string) float64 {
	return fixedToFloat(font.MeasureString(m.face, s))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
