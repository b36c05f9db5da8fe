package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetDispatchOrderAndRemoval(t *testing.T) {
	target := NewTarget()
	var calls []string

	removeA := target.AddEventListener(EventWheel, func(*Event) { calls = append(calls, "a") })
	target.AddEventListener(EventWheel, func(*Event) { calls = append(calls, "b") })
	target.AddEventListener(EventKeyDown, func(*Event) { calls = append(calls, "key") })
	assert.Equal(t, 3, target.ListenerCount())

	target.Dispatch(&Event{Type: EventWheel})
	assert.Equal(t, []string{"a", "b"}, calls)

	removeA()
	removeA()
	assert.Equal(t, 2, target.ListenerCount())

	calls = nil
	target.Dispatch(&Event{Type: EventWheel})
	assert.Equal(t, []string{"b"}, calls)
}

func TestTargetRemoveDuringDispatch(t *testing.T) {
	target := NewTarget()
	hits := 0
	var remove func()
	remove = target.AddEventListener(EventPointerUp, func(*Event) {
		hits++
		remove()
	})

	target.Dispatch(&Event{Type: EventPointerUp})
	target.Dispatch(&Event{Type: EventPointerUp})
	assert.Equal(t, 1, hits)
	assert.Equal(t, 0, target.ListenerCount())
}

func TestPreventDefault(t *testing.T) {
	target := NewTarget()
	target.AddEventListener(EventWheel, func(e *Event) { e.PreventDefault() })

	e := &Event{Type: EventWheel, DeltaY: 10}
	target.Dispatch(e)
	assert.True(t, e.DefaultPrevented())
}

func TestNilListenerIsIgnored(t *testing.T) {
	target := NewTarget()
	remove := target.AddEventListener(EventBlur, nil)
	remove()
	assert.Equal(t, 0, target.ListenerCount())
}
