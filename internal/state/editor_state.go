// internal/state/editor_state.go
package state

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go-meme-generator/internal/app"
	"go-meme-generator/internal/config"
	"go-meme-generator/internal/export"
	"go-meme-generator/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var _ State = (*EditorState)(nil)

// EditorState — основной экран: панель слоёв слева, превью справа.
type EditorState struct {
	sm     *StateMachine
	editor *app.Editor
	panel  *ui.LayerPanel
	face   font.Face
	notice font.Face

	canvas      *ebiten.Image
	canvasFrame *image.RGBA // кадр, из которого собран canvas

	status      string
	statusUntil time.Time
	runes       []rune
}

// NewEditorState создаёт экран редактора. face — шрифт панели,
// noticeFace — шрифт модальных сообщений.
func NewEditorState(sm *StateMachine, editor *app.Editor, face, noticeFace font.Face) *EditorState {
	return &EditorState{
		sm:     sm,
		editor: editor,
		panel:  ui.NewLayerPanel(face),
		face:   face,
		notice: noticeFace,
	}
}

func (s *EditorState) Enter() {}

func (s *EditorState) Exit() {}

func (s *EditorState) Update(deltaTime float64) {
	for _, res := range s.editor.Update() {
		if s.handleExportResult(res) {
			return
		}
	}

	selected, _ := s.editor.Selected()
	s.panel.Sync(s.editor.Layers(), selected)
	s.handleKeyboard()
	s.handleMouse()
}

// handleExportResult показывает итог экспорта. Возвращает true, если
// открыто модальное сообщение и дальнейший ввод в этом кадре не нужен.
func (s *EditorState) handleExportResult(res app.ExportResult) bool {
	switch {
	case res.Err == nil && res.Kind == app.ExportFile:
		s.setStatus("SAVED " + res.Path)
	case res.Err == nil:
		s.setStatus("COPIED TO CLIPBOARD")
	case export.IsClipboardError(res.Err):
		msg := "CLIPBOARD IS NOT AVAILABLE"
		if errors.Is(res.Err, export.ErrClipboardRejected) {
			msg = "CLIPBOARD REJECTED THE IMAGE"
		}
		s.editor.PointerUp()
		s.sm.SetState(NewNoticeState(s.sm, s, msg, s.notice))
		return true
	default:
		s.setStatus(fmt.Sprintf("EXPORT FAILED: %v", res.Err))
	}
	return false
}

func (s *EditorState) setStatus(msg string) {
	s.status = msg
	s.statusUntil = time.Now().Add(config.StatusTimeout)
}

func (s *EditorState) handleKeyboard() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyN):
			s.editor.AddLayer()
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			s.editor.StartExport(app.ExportFile)
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			s.editor.StartExport(app.ExportClipboard)
		case inpututil.IsKeyJustPressed(ebiten.KeyT):
			s.editor.NextTemplate()
		case inpututil.IsKeyJustPressed(ebiten.KeyM):
			if s.editor.ToggleMute() {
				s.setStatus("SOUND OFF")
			} else {
				s.setStatus("SOUND ON")
			}
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.editor.ReloadTemplates()
		s.setStatus("TEMPLATES RELOADED")
	}

	id, ok := s.editor.Selected()
	if !ok {
		return
	}

	s.runes = ebiten.AppendInputChars(s.runes[:0])
	if len(s.runes) > 0 {
		_ = s.editor.AppendText(id, string(s.runes))
	}
	if repeatingKeyPressed(ebiten.KeyBackspace) {
		_ = s.editor.Backspace(id)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		_ = s.editor.AppendText(id, "\n")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		_ = s.editor.AdjustSize(id, config.FontSizeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		_ = s.editor.AdjustSize(id, -config.FontSizeStep)
	}
}

func (s *EditorState) handleMouse() {
	x, y := ebiten.CursorPosition()
	canvasRect := s.canvasRect()
	inCanvas := image.Pt(x, y).In(canvasRect)
	cx := float64(x - canvasRect.Min.X)
	cy := float64(y - canvasRect.Min.Y)

	if _, dy := ebiten.Wheel(); dy != 0 && s.panel.Contains(x, y) {
		step := 1
		if dy > 0 {
			step = -1
		}
		s.panel.Scroll(step, s.editor.Layers())
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if hit, ok := s.panel.HitTest(x, y); ok {
			s.handlePanelHit(hit)
			return
		}
		if inCanvas {
			s.editor.PointerDown(cx, cy)
		}
		return
	}

	if !s.editor.Dragging() {
		return
	}
	// Отпускание кнопки и уход курсора с превью одинаково завершают перетаскивание
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || !inCanvas {
		s.editor.PointerUp()
		return
	}
	s.editor.PointerMove(cx, cy)
}

func (s *EditorState) handlePanelHit(hit ui.Hit) {
	id := hit.LayerID
	switch hit.Action {
	case ui.ActionAddLayer:
		s.editor.AddLayer()
	case ui.ActionNextTemplate:
		s.editor.NextTemplate()
	case ui.ActionSaveFile:
		s.editor.StartExport(app.ExportFile)
	case ui.ActionCopyClipboard:
		s.editor.StartExport(app.ExportClipboard)
	case ui.ActionSelectLayer:
		_ = s.editor.Select(id)
	case ui.ActionSmaller:
		_ = s.editor.AdjustSize(id, -config.FontSizeStep)
	case ui.ActionBigger:
		_ = s.editor.AdjustSize(id, config.FontSizeStep)
	case ui.ActionScheme:
		_ = s.editor.CycleScheme(id)
	case ui.ActionStyle:
		_ = s.editor.CycleStyle(id)
	case ui.ActionAlign:
		_ = s.editor.CycleAlignment(id)
	case ui.ActionNarrower, ui.ActionWider:
		if l, ok := s.editor.Composition().Layer(id); ok {
			step := config.MaxWidthStep
			if hit.Action == ui.ActionNarrower {
				step = -step
			}
			_ = s.editor.SetMaxWidth(id, l.MaxWidth+step)
		}
	}
}

func (s *EditorState) canvasRect() image.Rectangle {
	size := int(config.TemplateSize * config.PreviewScale)
	return image.Rect(config.CanvasOffsetX, config.CanvasOffsetY, config.CanvasOffsetX+size, config.CanvasOffsetY+size)
}

func (s *EditorState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)

	r := s.canvasRect()
	if frame := s.editor.Frame(); frame != nil {
		if frame != s.canvasFrame {
			if s.canvas != nil {
				s.canvas.Deallocate()
			}
			s.canvas = ebiten.NewImageFromImage(frame)
			s.canvasFrame = frame
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(s.canvas, op)
	}
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, config.AccentColor, false)

	if err := s.editor.PreviewErr(); err != nil {
		text.Draw(screen, "TEMPLATE LOAD FAILED: "+err.Error(), s.face, r.Min.X, r.Max.Y+20, config.SelectionColor)
	}

	selected, _ := s.editor.Selected()
	x, y := ebiten.CursorPosition()
	s.panel.Draw(screen, s.editor.Layers(), selected, s.editor.Template().Name, image.Pt(x, y))

	if s.status != "" && time.Now().Before(s.statusUntil) {
		ebitenutil.DebugPrintAt(screen, s.status, config.PanelX, config.ScreenHeight-20)
	}
}

// repeatingKeyPressed — нажатие с автоповтором, как при удержании клавиши в текстовом поле.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	if d >= delay && (d-delay)%interval == 0 {
		return true
	}
	return false
}
