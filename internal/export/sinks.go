package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrClipboardUnavailable — платформа не поддерживает изображения в буфере обмена.
	ErrClipboardUnavailable = errors.New("image clipboard is not available")
	// ErrClipboardRejected — запись в буфер обмена отклонена.
	ErrClipboardRejected = errors.New("clipboard write rejected")
)

// FileSink пишет PNG в файл Dir/FileName.
type FileSink struct {
	Dir      string
	FileName string
}

func (s FileSink) Name() string { return "file" }

// Path — итоговый путь файла.
func (s FileSink) Path() string {
	return filepath.Join(s.Dir, s.FileName)
}

func (s FileSink) Write(ctx context.Context, png []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	// Пишем во временный файл и переименовываем, чтобы не оставить обрезанный PNG
	tmp, err := os.CreateTemp(s.Dir, ".meme-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path())
}

// ClipboardWriter пишет PNG в системный буфер обмена.
type ClipboardWriter interface {
	WriteImage(png []byte) error
}

// ClipboardSink отдаёт PNG в буфер обмена.
type ClipboardSink struct {
	Writer ClipboardWriter
}

func (s ClipboardSink) Name() string { return "clipboard" }

func (s ClipboardSink) Write(ctx context.Context, png []byte) error {
	if s.Writer == nil {
		return ErrClipboardUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Writer.WriteImage(png)
}

// IsClipboardError — ошибка относится к буферу обмена и должна быть показана пользователю.
func IsClipboardError(err error) bool {
	return errors.Is(err, ErrClipboardUnavailable) || errors.Is(err, ErrClipboardRejected)
}
