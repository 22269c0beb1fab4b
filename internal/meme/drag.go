package meme

// HitTest возвращает ID слоя под точкой (x, y) на поверхности с масштабом scale.
// Проходит все слои по порядку; при перекрытии выигрывает последний.
func HitTest(faces Faces, layers []TextLayer, x, y, scale float64) (int, bool) {
	hit := 0
	for _, l := range layers {
		if LayoutLayer(faces, l, scale).Bounds.Contains(x, y) {
			hit = l.ID
		}
	}
	return hit, hit != 0
}

// Dragger переводит события указателя в выбор и перемещение слоёв.
// Координаты указателя — пиксели превью; в слой пишутся дельты в template-space.
type Dragger struct {
	comp     *Composition
	faces    Faces
	scale    float64
	dragging bool
	lastX    float64
	lastY    float64
}

// NewDragger создаёт контроллер перетаскивания для превью с масштабом scale.
func NewDragger(comp *Composition, faces Faces, scale float64) *Dragger {
	if scale <= 0 {
		scale = 1
	}
	return &Dragger{comp: comp, faces: faces, scale: scale}
}

// PointerDown выбирает слой под курсором и начинает перетаскивание.
// Промах снимает выделение.
func (d *Dragger) PointerDown(x, y float64) bool {
	id, ok := HitTest(d.faces, d.comp.layers, x, y, d.scale)
	if !ok {
		d.comp.ClearSelection()
		d.dragging = false
		return false
	}
	d.comp.selected = id
	d.dragging = true
	d.lastX, d.lastY = x, y
	return true
}

// PointerMove сдвигает выбранный слой на дельту от последней позиции
// и переносит якорь на текущую позицию.
func (d *Dragger) PointerMove(x, y float64) bool {
	if !d.dragging {
		return false
	}
	id, ok := d.comp.Selected()
	if !ok {
		return false
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	if dx == 0 && dy == 0 {
		return false
	}
	return d.comp.MoveBy(id, dx/d.scale, dy/d.scale) == nil
}

// PointerUp завершает перетаскивание. Уход курсора с холста обрабатывается так же.
func (d *Dragger) PointerUp() { d.dragging = false }

// Dragging — идёт ли перетаскивание.
func (d *Dragger) Dragging() bool { return d.dragging }
