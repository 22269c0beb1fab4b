// internal/utils/math.go
package utils

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to float64, t float64) float64 {
	return from + (to-from)*t
}

// Clamp ограничивает v диапазоном [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScrollWindow возвращает видимый диапазон [start, end) списка из total
// элементов при смещении offset и вместимости capacity. Смещение
// прижимается к границам списка.
func ScrollWindow(total, offset, capacity int) (start, end int) {
	if capacity <= 0 || total <= 0 {
		return 0, 0
	}
	start = min(max(offset, 0), max(total-capacity, 0))
	end = min(start+capacity, total)
	return start, end
}

// ScrollToShow сдвигает offset так, чтобы элемент index попал в окно.
func ScrollToShow(offset, index, capacity int) int {
	switch {
	case index < offset:
		return index
	case index >= offset+capacity:
		return index - capacity + 1
	}
	return offset
}
