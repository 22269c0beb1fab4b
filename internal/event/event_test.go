package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e) }

func TestDispatcher_SubscribeDispatch(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(LayerAdded, a)
	d.SubscribeAll(b, LayerAdded, TemplateChanged)

	d.Dispatch(Event{Type: LayerAdded, Data: 3})
	d.Dispatch(Event{Type: TemplateChanged, Data: "T2"})
	d.Dispatch(Event{Type: ExportFailed})

	assert.Equal(t, []Event{{Type: LayerAdded, Data: 3}}, a.got)
	assert.Len(t, b.got, 2)
	assert.Equal(t, "T2", b.got[1].Data)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(LayerChanged, a)
	d.Subscribe(LayerChanged, b)

	d.Unsubscribe(LayerChanged, a)
	d.Unsubscribe(LayerSelected, a) // нет подписки — ничего не происходит
	d.Dispatch(Event{Type: LayerChanged, Data: 1})

	assert.Empty(t, a.got)
	assert.Len(t, b.got, 1)
}

func TestListenerFunc(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Subscribe(ExportFinished, ListenerFunc(func(e Event) { calls++ }))
	d.Dispatch(Event{Type: ExportFinished})
	d.Dispatch(Event{Type: ExportFinished})
	assert.Equal(t, 2, calls)
}

func TestDispatcher_UnsubscribeFuncIsNoop(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	fn := ListenerFunc(func(e Event) { calls++ })
	d.Subscribe(LayerAdded, fn)

	assert.NotPanics(t, func() { d.Unsubscribe(LayerAdded, fn) })
	d.Dispatch(Event{Type: LayerAdded})
	assert.Equal(t, 1, calls, "функцию нельзя сравнить, подписка остаётся")
}
