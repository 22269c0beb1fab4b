// Package meme holds the compositor's domain model: text layers, the
// composition that orders them, and the wrap/layout/hit-test logic shared by
// the preview and the export path.
package meme

import (
	"errors"
	"fmt"
	"image/color"

	"go-meme-generator/internal/config"
	"go-meme-generator/internal/utils"
)

var (
	ErrLayerNotFound    = errors.New("layer not found")
	ErrInvalidStyle     = errors.New("invalid font style")
	ErrInvalidAlignment = errors.New("invalid alignment")
	ErrUnknownScheme    = errors.New("unknown color scheme")
)

// Alignment — горизонтальное выравнивание строк относительно X.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Alignments в порядке переключения в UI
var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight}

// Anchor возвращает горизонтальный якорь: 0 — слева, 0.5 — центр, 1 — справа.
func (a Alignment) Anchor() float64 {
	switch a {
	case AlignLeft:
		return 0
	case AlignRight:
		return 1
	default:
		return 0.5
	}
}

func (a Alignment) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// Style — начертание шрифта.
type Style string

const (
	StyleNormal Style = "normal"
	StyleBold   Style = "bold"
	StyleItalic Style = "italic"
)

// Styles в порядке переключения в UI
var Styles = []Style{StyleNormal, StyleBold, StyleItalic}

func (s Style) Valid() bool {
	return s == StyleNormal || s == StyleBold || s == StyleItalic
}

// TextLayer — один блок текста поверх шаблона. Вся геометрия в template-space.
type TextLayer struct {
	ID        int
	Content   string
	X, Y      float64 // центр блока
	Size      float64
	Scheme    string
	Alignment Alignment
	Style     Style
	MaxWidth  float64 // 0 — без мягкого переноса
}

// newLayer создаёт слой с параметрами по умолчанию.
func newLayer(id int, y float64) TextLayer {
	return TextLayer{
		ID:        id,
		X:         config.DefaultLayerX,
		Y:         y,
		Size:      config.DefaultFontSize,
		Scheme:    config.SchemeGreen,
		Alignment: AlignCenter,
		Style:     StyleNormal,
	}
}

// Colors возвращает цвета заливки и обводки схемы слоя.
func (l TextLayer) Colors() (fill, stroke color.RGBA) {
	scheme, ok := config.ColorSchemes[l.Scheme]
	if !ok {
		scheme = config.ColorSchemes[config.SchemeGreen]
	}
	return scheme.Fill, scheme.Stroke
}

// ClampSize приводит размер шрифта к допустимому диапазону.
func ClampSize(size float64) float64 {
	return utils.Clamp(size, config.MinFontSize, config.MaxFontSize)
}

func validateScheme(name string) error {
	if _, ok := config.ColorSchemes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return nil
}
