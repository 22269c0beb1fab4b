// internal/ui/layer_panel.go
package ui

import (
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"go-meme-generator/internal/config"
	"go-meme-generator/internal/meme"
	"go-meme-generator/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Action — что должно произойти после клика по панели.
type Action int

const (
	ActionNone Action = iota
	ActionAddLayer
	ActionNextTemplate
	ActionSaveFile
	ActionCopyClipboard
	ActionSelectLayer
	ActionSmaller
	ActionBigger
	ActionScheme
	ActionStyle
	ActionAlign
	ActionNarrower
	ActionWider
)

// Hit — результат клика: действие и слой, к которому оно относится.
type Hit struct {
	Action  Action
	LayerID int
}

const (
	toolbarY      = 20
	toolbarWidth  = 96
	rowButtonW    = 44
	rowGap        = 6
	labelMaxRunes = 28
)

type panelButton struct {
	*Button
	action Action
}

type layerRow struct {
	layerID int
	index   int // позиция слоя в списке
	rect    image.Rectangle
	buttons []panelButton
}

// LayerPanel — панель слева от превью: панель инструментов и строка на каждый слой.
// Видно не больше config.PanelRows строк, остальные прокручиваются.
type LayerPanel struct {
	face    font.Face
	toolbar []panelButton
	rows    []layerRow

	offset   int
	total    int
	selected int
}

func NewLayerPanel(face font.Face) *LayerPanel {
	p := &LayerPanel{face: face}
	tools := []struct {
		label  string
		action Action
	}{
		{"+ LAYER", ActionAddLayer},
		{"TEMPLATE", ActionNextTemplate},
		{"SAVE", ActionSaveFile},
		{"COPY", ActionCopyClipboard},
	}
	for i, t := range tools {
		x := config.PanelX + i*(toolbarWidth+rowGap)
		rect := image.Rect(x, toolbarY, x+toolbarWidth, toolbarY+config.ButtonSize+4)
		p.toolbar = append(p.toolbar, panelButton{Button: NewButton(rect, t.label), action: t.action})
	}
	return p
}

// Sync перестраивает строки под текущий список слоёв. Если выбор сменился,
// окно прокручивается к выбранному слою.
func (p *LayerPanel) Sync(layers []meme.TextLayer, selected int) {
	if selected != p.selected {
		p.selected = selected
		for i, l := range layers {
			if l.ID == selected {
				p.offset = utils.ScrollToShow(p.offset, i, config.PanelRows)
				break
			}
		}
	}
	p.rebuild(layers)
}

// Scroll сдвигает окно на delta строк.
func (p *LayerPanel) Scroll(delta int, layers []meme.TextLayer) {
	p.offset += delta
	p.rebuild(layers)
}

func (p *LayerPanel) rebuild(layers []meme.TextLayer) {
	start, end := utils.ScrollWindow(len(layers), p.offset, config.PanelRows)
	if start == p.offset && len(layers) == p.total && len(p.rows) == end-start {
		for i := range p.rows {
			p.rows[i].layerID = layers[p.rows[i].index].ID
		}
		return
	}
	p.offset = start
	p.total = len(layers)

	p.rows = p.rows[:0]
	for i := start; i < end; i++ {
		y := config.PanelY + (i-start)*config.RowHeight
		row := layerRow{
			layerID: layers[i].ID,
			index:   i,
			rect:    image.Rect(config.PanelX, y, config.PanelX+config.PanelWidth, y+config.RowHeight-4),
		}
		controls := []struct {
			label  string
			action Action
		}{
			{"A-", ActionSmaller},
			{"A+", ActionBigger},
			{"CLR", ActionScheme},
			{"STY", ActionStyle},
			{"ALN", ActionAlign},
			{"W-", ActionNarrower},
			{"W+", ActionWider},
		}
		bx := config.PanelX + 6
		by := y + config.RowHeight - config.ButtonSize - 8
		for _, c := range controls {
			rect := image.Rect(bx, by, bx+rowButtonW, by+config.ButtonSize)
			row.buttons = append(row.buttons, panelButton{Button: NewButton(rect, c.label), action: c.action})
			bx += rowButtonW + rowGap
		}
		p.rows = append(p.rows, row)
	}
}

// Contains — попадает ли точка в область строк слоёв.
func (p *LayerPanel) Contains(x, y int) bool {
	r := image.Rect(config.PanelX, config.PanelY, config.PanelX+config.PanelWidth, config.PanelY+config.PanelRows*config.RowHeight)
	return image.Pt(x, y).In(r)
}

// HitTest находит кнопку или строку под курсором.
func (p *LayerPanel) HitTest(x, y int) (Hit, bool) {
	for _, b := range p.toolbar {
		if b.Contains(x, y) {
			if !b.Press() {
				return Hit{}, true
			}
			return Hit{Action: b.action}, true
		}
	}
	for _, row := range p.rows {
		for _, b := range row.buttons {
			if b.Contains(x, y) {
				if !b.Press() {
					return Hit{}, true
				}
				return Hit{Action: b.action, LayerID: row.layerID}, true
			}
		}
		if image.Pt(x, y).In(row.rect) {
			return Hit{Action: ActionSelectLayer, LayerID: row.layerID}, true
		}
	}
	return Hit{}, false
}

// Draw рисует панель; cursor нужен для подсветки кнопок.
func (p *LayerPanel) Draw(screen *ebiten.Image, layers []meme.TextLayer, selected int, templateName string, cursor image.Point) {
	for _, b := range p.toolbar {
		b.Draw(screen, p.face, cursor.In(b.Rect))
	}

	for _, row := range p.rows {
		if row.index >= len(layers) {
			break
		}
		l := layers[row.index]
		r := row.rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), config.PanelColor, true)
		if l.ID == selected {
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, config.SelectionColor, true)
		}

		fill, _ := l.Colors()
		text.Draw(screen, rowLabel(l), p.face, r.Min.X+6, r.Min.Y+16, fill)
		info := fmt.Sprintf("%.0fpx %s %s", l.Size, l.Style, l.Alignment)
		if l.MaxWidth > 0 {
			info += fmt.Sprintf(" w%.0f", l.MaxWidth)
		}
		bounds := text.BoundString(p.face, info)
		text.Draw(screen, info, p.face, r.Max.X-bounds.Dx()-6, r.Min.Y+16, config.TextLightColor)

		for _, b := range row.buttons {
			b.Draw(screen, p.face, cursor.In(b.Rect))
		}
	}

	if len(p.rows) > 0 {
		first, last := p.rows[0].index, p.rows[len(p.rows)-1].index
		if first > 0 || last < len(layers)-1 {
			more := fmt.Sprintf("LAYERS %d-%d OF %d (WHEEL TO SCROLL)", first+1, last+1, len(layers))
			text.Draw(screen, more, p.face, config.PanelX, config.PanelY+config.PanelRows*config.RowHeight+12, config.TextLightColor)
		}
	}

	text.Draw(screen, "TEMPLATE: "+templateName, p.face, config.CanvasOffsetX, toolbarY+16, config.TextLightColor)
}

// rowLabel — первая строка содержимого слоя, обрезанная по длине.
func rowLabel(l meme.TextLayer) string {
	label := strings.SplitN(l.Content, "\n", 2)[0]
	if label == "" {
		return fmt.Sprintf("#%d <empty>", l.ID)
	}
	if utf8.RuneCountInString(label) > labelMaxRunes {
		label = string([]rune(label)[:labelMaxRunes]) + "…"
	}
	return fmt.Sprintf("#%d %s", l.ID, label)
}
