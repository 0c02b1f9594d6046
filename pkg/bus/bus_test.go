package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/digiteria/pkg/bus"
)

func TestNotifyRunsInRegistrationOrder(t *testing.T) {
	b := bus.New()

	var got []string
	b.Subscribe(func() { got = append(got, "first") })
	b.Subscribe(func() { got = append(got, "second") })
	b.Subscribe(func() { got = append(got, "third") })

	b.Notify()

	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestUnsubscribeRemovesExactlyOne(t *testing.T) {
	b := bus.New()

	count := 0
	fn := func() { count++ }

	// Same function registered twice — two independent registrations.
	unsub := b.Subscribe(fn)
	b.Subscribe(fn)

	unsub()
	b.Notify()

	assert.Equal(t, 1, count)
	assert.Equal(t, 1, b.Len())

	// Unsubscribing twice is a no-op.
	unsub()
	assert.Equal(t, 1, b.Len())
}

func TestPanickingListenerDoesNotBlockLater(t *testing.T) {
	b := bus.New()

	ran := false
	b.Subscribe(func() { panic("boom") })
	b.Subscribe(func() { ran = true })

	assert.NotPanics(t, func() { b.Notify() })
	assert.True(t, ran)
}

func TestNotifyEmptyBus(t *testing.T) {
	assert.NotPanics(t, func() { bus.New().Notify() })
}
