// internal/defs/types.go
package defs

import "errors"

// BuiltinPrefix помечает шаблон, который генерируется в памяти: "builtin:#rrggbb".
const BuiltinPrefix = "builtin:"

// ErrUnknownTemplate возвращается, когда ID шаблона нет в каталоге.
var ErrUnknownTemplate = errors.New("unknown template")

// TemplateDefinition describes one selectable background image.
type TemplateDefinition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}
