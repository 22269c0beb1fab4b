// internal/state/notice_state.go
package state

import (
	"strings"

	"go-meme-generator/internal/config"
	"go-meme-generator/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Убеждаемся, что NoticeState соответствует интерфейсу State
var _ State = (*NoticeState)(nil)

// NoticeState — модальное сообщение поверх предыдущего состояния.
// Пока оно открыто, редактор не получает ввода.
type NoticeState struct {
	stateMachine  *StateMachine
	previousState State
	message       string
	face          font.Face
}

func NewNoticeState(sm *StateMachine, prevState State, message string, face font.Face) *NoticeState {
	return &NoticeState{
		stateMachine:  sm,
		previousState: prevState,
		message:       message,
		face:          face,
	}
}

func (s *NoticeState) Enter() {}

func (s *NoticeState) Update(deltaTime float64) {
	dismiss := inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if dismiss {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *NoticeState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}

	vector.DrawFilledRect(screen, 0, 0, float32(config.ScreenWidth), float32(config.ScreenHeight), config.NoticeShade, false)

	lines := strings.Split(s.message+"\n\n[ENTER / ESC / CLICK]", "\n")
	lineHeight := config.NoticeFontSize + 8
	y := config.ScreenHeight/2 - len(lines)*lineHeight/2
	for _, line := range lines {
		ui.DrawOutlinedText(screen, line, s.face, config.ScreenWidth/2, y, config.AccentColor, config.BackgroundColor, 2)
		y += lineHeight
	}
}

func (s *NoticeState) Exit() {}

// Message — текст сообщения.
func (s *NoticeState) Message() string { return s.message }
