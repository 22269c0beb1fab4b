// Package ebitenaudio plays click samples through ebiten's audio context.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Backend реализует sound.Backend. Каждый Play создаёт нового проигрывателя
// из байтов, поэтому одновременные клики не мешают друг другу.
type Backend struct {
	ctx *audio.Context
}

// New создаёт аудиоконтекст. В процессе может быть только один audio.Context.
func New(sampleRate int) *Backend {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Backend{ctx: ctx}
}

// Decode читает mp3 или wav и возвращает PCM, готовый к воспроизведению.
func (b *Backend) Decode(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound file: %w", err)
	}

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(b.ctx.SampleRate(), bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(b.ctx.SampleRate(), bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return pcm, nil
}

func (b *Backend) Play(sample []byte, volume float64) error {
	p := b.ctx.NewPlayerFromBytes(sample)
	p.SetVolume(volume)
	p.Play()
	return nil
}
