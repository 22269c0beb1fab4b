// internal/event/types.go
package event

const (
	LayerAdded      EventType = "LayerAdded"      // Data: ID слоя
	LayerSelected   EventType = "LayerSelected"   // Data: ID слоя, 0 — выделение снято
	LayerChanged    EventType = "LayerChanged"    // Data: ID слоя
	TemplateChanged EventType = "TemplateChanged" // Data: ID шаблона
	ExportFinished  EventType = "ExportFinished"  // Data: ExportResult
	ExportFailed    EventType = "ExportFailed"    // Data: ExportResult
)
