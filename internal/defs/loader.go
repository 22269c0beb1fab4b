// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultTemplates — каталог на случай, если файл каталога не задан.
// Последний шаблон встроенный, чтобы редактор запускался без файлов ассетов.
func DefaultTemplates() []TemplateDefinition {
	return []TemplateDefinition{
		{ID: "T1", Name: "Template 1", Path: "assets/templates/1.png"},
		{ID: "T2", Name: "Template 2", Path: "assets/templates/2.png"},
		{ID: "T3", Name: "Template 3", Path: "assets/templates/3.png"},
		{ID: "matrix", Name: "Matrix", Path: BuiltinPrefix + "#001a00"},
	}
}

// LoadTemplateDefinitions reads the template catalog file.
func LoadTemplateDefinitions(path string) ([]TemplateDefinition, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template definitions file: %w", err)
	}

	var templateDefs []TemplateDefinition
	if err := json.Unmarshal(file, &templateDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template definitions: %w", err)
	}
	if err := ValidateTemplates(templateDefs); err != nil {
		return nil, err
	}
	return templateDefs, nil
}

// ValidateTemplates проверяет, что каталог не пуст и ID уникальны.
func ValidateTemplates(templateDefs []TemplateDefinition) error {
	if len(templateDefs) == 0 {
		return fmt.Errorf("template catalog is empty")
	}
	seen := make(map[string]struct{}, len(templateDefs))
	for i, def := range templateDefs {
		if def.ID == "" || def.Path == "" {
			return fmt.Errorf("template #%d: id and path are required", i)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("template %q is defined twice", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
	return nil
}

// Find ищет шаблон по ID.
func Find(templateDefs []TemplateDefinition, id string) (TemplateDefinition, error) {
	for _, def := range templateDefs {
		if def.ID == id {
			return def, nil
		}
	}
	return TemplateDefinition{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
}
