// Package sound provides the click-feedback capability injected into the
// editor. Play is fire-and-forget and safe to call from anywhere, including
// several times in a row while earlier clicks are still playing.
package sound

import (
	"math"
	"sync/atomic"

	"go-meme-generator/internal/utils"

	"go.uber.org/zap"
)

// Backend воспроизводит заранее декодированный сэмпл. Каждый вызов
// должен создавать собственный голос, чтобы клики могли накладываться.
type Backend interface {
	Play(sample []byte, volume float64) error
}

// Player — звук клика. Только атомики, без мьютексов.
type Player struct {
	backend Backend
	sample  []byte
	volume  atomic.Uint64 // math.Float64bits
	muted   atomic.Bool
	plays   atomic.Int64
	fails   atomic.Int64
	logger  *zap.Logger
}

// NewPlayer создаёт плеер. sample не копируется и не должен меняться после вызова.
func NewPlayer(backend Backend, sample []byte, volume float64, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Player{backend: backend, sample: sample, logger: logger}
	p.SetVolume(volume)
	return p
}

// Play запускает звук и сразу возвращается. Nil-плеер молчит.
func (p *Player) Play() {
	if p == nil || p.backend == nil || len(p.sample) == 0 || p.muted.Load() {
		return
	}
	p.plays.Add(1)
	if err := p.backend.Play(p.sample, p.Volume()); err != nil {
		// Сбой звука не должен мешать работе редактора
		if p.fails.Add(1) == 1 {
			p.logger.Warn("click sound failed", zap.Error(err))
		}
	}
}

// SetMuted включает или выключает звук.
func (p *Player) SetMuted(muted bool) { p.muted.Store(muted) }

// SetVolume задаёт громкость в диапазоне [0, 1].
func (p *Player) SetVolume(v float64) {
	p.volume.Store(math.Float64bits(utils.Clamp(v, 0, 1)))
}

func (p *Player) Volume() float64 { return math.Float64frombits(p.volume.Load()) }

// Stats возвращает, сколько раз звук запускался и сколько раз backend вернул ошибку.
func (p *Player) Stats() (plays, failures int64) {
	return p.plays.Load(), p.fails.Load()
}
