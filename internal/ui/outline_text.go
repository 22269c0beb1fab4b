package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// DrawOutlinedText рисует текст с обводкой: сначала смещённые копии цветом
// обводки, затем основной текст. (x, y) — центр первой строки по горизонтали
// и её верх.
func DrawOutlinedText(screen *ebiten.Image, s string, face font.Face, x, y int, fill, outline color.Color, thickness int) {
	bounds := text.BoundString(face, s)
	textX := x - bounds.Dx()/2
	textY := y - bounds.Min.Y

	// Рисуем обводку
	for dy := -thickness; dy <= thickness; dy++ {
		for dx := -thickness; dx <= thickness; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, s, face, textX+dx, textY+dy, outline)
		}
	}

	// Рисуем основной текст
	text.Draw(screen, s, face, textX, textY, fill)
}
