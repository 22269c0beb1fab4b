// cmd/meme/edit.go
package main

import (
	"context"
	"time"

	"go-meme-generator/internal/app"
	"go-meme-generator/internal/assets"
	"go-meme-generator/internal/config"
	"go-meme-generator/internal/event"
	"go-meme-generator/internal/meme"
	"go-meme-generator/internal/sound"
	"go-meme-generator/internal/sound/ebitenaudio"
	"go-meme-generator/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the editor window",
	RunE:  runEdit,
}

// AppGame — адаптер StateMachine к ebiten.Game
type AppGame struct {
	ctx            context.Context
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	if a.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newServices(settings, logger)
	if err != nil {
		return err
	}

	// Прогрев кэша шаблонов; ошибки увидит превью при выборе шаблона
	go func() {
		if err := svc.store.Preload(ctx); err != nil {
			logger.Warn("template preload incomplete", zap.Error(err))
		}
	}()

	click := newClickSound()
	if click != nil {
		defer func() {
			plays, failures := click.Stats()
			logger.Debug("click sound stats", zap.Int64("plays", plays), zap.Int64("failures", failures))
		}()
	}

	dispatcher := event.NewDispatcher()
	var clicker app.Clicker
	if click != nil {
		clicker = click
	}
	editor, err := app.NewEditor(app.Options{
		Templates:  svc.catalog,
		Source:     svc.store,
		Fonts:      svc.fonts,
		Compositor: svc.compositor,
		Exporter:   svc.exporter,
		FileSink:   svc.fileSink,
		Clipboard:  svc.clipboard,
		Dispatcher: dispatcher,
		Sound:      clicker,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer editor.Close()

	watcher, err := assets.NewTemplateWatcher(svc.store, editor.MarkTemplatesStale, logger)
	if err != nil {
		logger.Warn("template hot reload disabled", zap.Error(err))
	} else {
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	faces := svc.fonts.NewFaceCache()
	defer faces.Close()

	sm := state.NewStateMachine()
	sm.SetState(state.NewEditorState(sm, editor,
		faces.Face(meme.StyleNormal, config.PanelFontSize),
		faces.Face(meme.StyleBold, config.NoticeFontSize)))

	game := &AppGame{
		ctx:            ctx,
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Meme Generator")

	logger.Info("editor started", zap.Int("templates", len(svc.catalog)))
	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	return nil
}

// newClickSound загружает звук клика. Без файла или при ошибке декодирования
// редактор работает молча.
func newClickSound() *sound.Player {
	if settings.ClickSound == "" {
		return nil
	}
	backend := ebitenaudio.New(config.DefaultSampleRate)
	sample, err := backend.Decode(settings.ClickSound)
	if err != nil {
		logger.Warn("click sound disabled", zap.String("path", settings.ClickSound), zap.Error(err))
		return nil
	}
	return sound.NewPlayer(backend, sample, settings.SoundVolume, logger)
}
