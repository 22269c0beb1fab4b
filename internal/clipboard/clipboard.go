// Package clipboard writes PNG images to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"go-meme-generator/internal/export"

	xclip "golang.design/x/clipboard"
)

// Writer реализует export.ClipboardWriter поверх системного буфера обмена.
// Инициализация выполняется один раз при первой записи.
type Writer struct {
	once    sync.Once
	initErr error
}

func New() *Writer {
	return &Writer{}
}

func (w *Writer) WriteImage(png []byte) error {
	w.once.Do(func() {
		if err := xclip.Init(); err != nil {
			w.initErr = fmt.Errorf("%w: %v", export.ErrClipboardUnavailable, err)
		}
	})
	if w.initErr != nil {
		return w.initErr
	}
	// Write возвращает nil, если платформа отклонила запись
	if changed := xclip.Write(xclip.FmtImage, png); changed == nil {
		return export.ErrClipboardRejected
	}
	return nil
}
