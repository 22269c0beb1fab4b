package meme

import "strings"

// Measurer измеряет ширину строки в пикселях целевой поверхности.
type Measurer interface {
	Measure(s string) float64
}

// WrapText greedily fills lines word by word. A word is appended to the
// current line only while the tentative line stays narrower than maxWidth;
// a single word wider than maxWidth is left on its own line unsplit.
func WrapText(m Measurer, text string, maxWidth float64) []string {
	words := strings.Split(text, " ")
	lines := make([]string, 0, len(words))
	current := words[0]

	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Measure(candidate) < maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// SplitLines разбивает текст по явным переводам строк и, если maxWidth > 0,
// переносит каждую строку по словам.
func SplitLines(m Measurer, text string, maxWidth float64) []string {
	lines := strings.Split(text, "\n")
	if maxWidth <= 0 {
		return lines
	}
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, WrapText(m, line, maxWidth)...)
	}
	return wrapped
}
