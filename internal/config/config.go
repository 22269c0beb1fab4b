// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

const (
	ScreenWidth  = 900
	ScreenHeight = 520
	MaxDeltaTime = 0.06

	TemplateSize = 400.0 // Логический размер шаблона (template-space)
	PreviewScale = 1.0   // Превью рисуется 1:1 с template-space
	ExportSize   = 1080  // Итоговое разрешение PNG

	MinFontSize      = 10.0
	MaxFontSize      = 60.0
	DefaultFontSize  = 30.0
	FontSizeStep     = 2.0
	MaxWidthStep     = 40.0 // Шаг ширины переноса в template-space
	LineHeightFactor = 1.2
	StrokeWidth      = 2.0 // Толщина обводки текста, до масштабирования
	SelectionPadding = 5.0
	SelectionWidth   = 1.0

	DefaultLayerX       = 200.0
	FirstLayerY         = 40.0
	LayerSpacingY       = 50.0 // Сдвиг по Y для каждого нового слоя
	BottomLayerY        = 360.0
	DefaultOutputFile   = "meme.png"
	DefaultOutputDir    = "."
	DefaultSoundVolume  = 0.9
	DefaultSampleRate   = 44100
	DefaultTemplateTTL  = 30 * time.Minute
	TemplateCleanupTick = time.Hour

	CanvasOffsetX = 470 // Положение превью в окне редактора
	CanvasOffsetY = 60
	PanelX        = 20
	PanelY        = 60
	PanelWidth    = 420
	RowHeight     = 56
	ButtonSize    = 22
	ClickCooldown = 120 // мс

	PanelFontSize  = 12
	NoticeFontSize = 20
	StatusTimeout  = 3 * time.Second
	PanelRows      = (ScreenHeight - PanelY - 40) / RowHeight // Строк слоёв на экране, ниже — прокрутка
)

// ColorScheme — пара цветов заливки и обводки текста.
type ColorScheme struct {
	Fill   color.RGBA
	Stroke color.RGBA
}

// Имена цветовых схем, в порядке переключения
const (
	SchemeGreen      = "green"
	SchemeBlackWhite = "blackWhite"
	SchemeWhiteBlack = "whiteBlack"
)

var (
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	PanelColor      = color.RGBA{0, 20, 0, 200}
	AccentColor     = color.RGBA{0, 255, 0, 255} // Зелёный терминальный
	SelectionColor  = color.RGBA{0, 255, 0, 255}
	TextLightColor  = color.RGBA{0, 230, 0, 255}
	NoticeShade     = color.RGBA{0, 0, 0, 160}

	ColorSchemes = map[string]ColorScheme{
		SchemeGreen:      {Fill: color.RGBA{0, 255, 0, 255}, Stroke: color.RGBA{0, 0, 0, 255}},
		SchemeBlackWhite: {Fill: color.RGBA{0, 0, 0, 255}, Stroke: color.RGBA{255, 255, 255, 255}},
		SchemeWhiteBlack: {Fill: color.RGBA{255, 255, 255, 255}, Stroke: color.RGBA{0, 0, 0, 255}},
	}
	SchemeOrder = []string{SchemeGreen, SchemeBlackWhite, SchemeWhiteBlack}
)
