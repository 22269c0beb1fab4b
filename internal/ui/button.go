// internal/ui/button.go
package ui

import (
	"image"
	"image/color"
	"math"
	"time"

	"go-meme-generator/internal/config"
	"go-meme-generator/internal/utils"
	"go-meme-generator/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button представляет кликабельную кнопку в UI.
type Button struct {
	Rect          image.Rectangle
	Text          string
	BgColor       color.RGBA
	TextColor     color.RGBA
	LastClickTime time.Time
}

// NewButton создает новую кнопку.
func NewButton(rect image.Rectangle, label string) *Button {
	return &Button{
		Rect:      rect,
		Text:      label,
		BgColor:   config.PanelColor,
		TextColor: config.TextLightColor,
	}
}

// Contains проверяет попадание курсора в кнопку.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Press отмечает клик; false, если с прошлого клика не прошёл ClickCooldown.
func (b *Button) Press() bool {
	if time.Since(b.LastClickTime) < time.Duration(config.ClickCooldown)*time.Millisecond {
		return false
	}
	b.LastClickTime = time.Now()
	return true
}

// Draw отрисовывает кнопку. При наведении фон затемняется,
// после клика рамка коротко «вспыхивает».
func (b *Button) Draw(screen *ebiten.Image, face font.Face, hovered bool) {
	bg := b.BgColor
	if hovered {
		bg = render.DarkenColor(bg)
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)

	elapsed := time.Since(b.LastClickTime).Seconds()
	border := float32(utils.Lerp(1, 3, math.Exp(-elapsed*8)))
	vector.StrokeRect(screen, x, y, w, h, border, config.AccentColor, true)

	textBounds := text.BoundString(face, b.Text)
	textX := b.Rect.Min.X + (b.Rect.Dx()-textBounds.Dx())/2
	textY := b.Rect.Min.Y + (b.Rect.Dy()-textBounds.Dy())/2 - textBounds.Min.Y
	text.Draw(screen, b.Text, face, textX, textY, b.TextColor)
}
