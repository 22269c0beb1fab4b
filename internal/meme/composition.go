package meme

import (
	"fmt"

	"go-meme-generator/internal/config"
)

// Composition — шаблон плюс упорядоченный список слоёв.
// Порядок слоёв задаёт порядок отрисовки и приоритет при попадании курсора:
// слой, добавленный позже, рисуется поверх и выигрывает при перекрытии.
type Composition struct {
	Template string
	layers   []TextLayer
	selected int // 0 — ничего не выбрано
	nextID   int
}

// NewComposition создаёт композицию с двумя пустыми слоями: сверху и снизу.
func NewComposition(template string) *Composition {
	c := &Composition{Template: template, nextID: 1}
	c.addLayerAt(config.FirstLayerY)
	c.addLayerAt(config.BottomLayerY)
	return c
}

// NewEmptyComposition создаёт композицию без слоёв.
func NewEmptyComposition(template string) *Composition {
	return &Composition{Template: template, nextID: 1}
}

func (c *Composition) addLayerAt(y float64) int {
	id := c.nextID
	c.nextID++
	c.layers = append(c.layers, newLayer(id, y))
	return id
}

// AddLayer добавляет слой с размещением по умолчанию и возвращает его ID.
// Каждый новый слой смещается вниз на LayerSpacingY.
func (c *Composition) AddLayer() int {
	return c.addLayerAt(config.FirstLayerY + float64(len(c.layers))*config.LayerSpacingY)
}

// Layers возвращает копию слоёв в порядке отрисовки.
func (c *Composition) Layers() []TextLayer {
	out := make([]TextLayer, len(c.layers))
	copy(out, c.layers)
	return out
}

// Len — количество слоёв.
func (c *Composition) Len() int { return len(c.layers) }

// Layer возвращает слой по ID.
func (c *Composition) Layer(id int) (TextLayer, bool) {
	if i := c.index(id); i >= 0 {
		return c.layers[i], true
	}
	return TextLayer{}, false
}

func (c *Composition) index(id int) int {
	for i := range c.layers {
		if c.layers[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Composition) update(id int, fn func(l *TextLayer) error) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrLayerNotFound, id)
	}
	return fn(&c.layers[i])
}

// SetContent заменяет текст слоя.
func (c *Composition) SetContent(id int, content string) error {
	return c.update(id, func(l *TextLayer) error {
		l.Content = content
		return nil
	})
}

// SetScheme меняет цветовую схему слоя.
func (c *Composition) SetScheme(id int, scheme string) error {
	if err := validateScheme(scheme); err != nil {
		return err
	}
	return c.update(id, func(l *TextLayer) error {
		l.Scheme = scheme
		return nil
	})
}

// SetStyle меняет начертание.
func (c *Composition) SetStyle(id int, style Style) error {
	if !style.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStyle, style)
	}
	return c.update(id, func(l *TextLayer) error {
		l.Style = style
		return nil
	})
}

// SetAlignment меняет выравнивание.
func (c *Composition) SetAlignment(id int, a Alignment) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAlignment, a)
	}
	return c.update(id, func(l *TextLayer) error {
		l.Alignment = a
		return nil
	})
}

// SetMaxWidth задаёт ширину переноса; значение <= 0 выключает перенос.
func (c *Composition) SetMaxWidth(id int, w float64) error {
	if w < 0 {
		w = 0
	}
	return c.update(id, func(l *TextLayer) error {
		l.MaxWidth = w
		return nil
	})
}

// AdjustSize меняет размер шрифта на delta с ограничением [MinFontSize, MaxFontSize].
func (c *Composition) AdjustSize(id int, delta float64) error {
	return c.update(id, func(l *TextLayer) error {
		l.Size = ClampSize(l.Size + delta)
		return nil
	})
}

// MoveBy сдвигает слой на (dx, dy) в template-space.
func (c *Composition) MoveBy(id int, dx, dy float64) error {
	return c.update(id, func(l *TextLayer) error {
		l.X += dx
		l.Y += dy
		return nil
	})
}

// Select делает слой выбранным.
func (c *Composition) Select(id int) error {
	if c.index(id) < 0 {
		return fmt.Errorf("%w: %d", ErrLayerNotFound, id)
	}
	c.selected = id
	return nil
}

// ClearSelection снимает выбор.
func (c *Composition) ClearSelection() { c.selected = 0 }

// Selected возвращает ID выбранного слоя.
func (c *Composition) Selected() (int, bool) {
	return c.selected, c.selected != 0
}

// Clone — независимый снимок для асинхронной загрузки и экспорта.
func (c *Composition) Clone() *Composition {
	cp := *c
	cp.layers = c.Layers()
	return &cp
}
