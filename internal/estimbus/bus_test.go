package estimbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribePublishUnsubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()

	b.Publish(Event{Price: 100, Conf: 1.5})

	select {
	case evt := <-sub:
		assert.Equal(t, Event{Price: 100, Conf: 1.5}, evt)
	default:
		t.Fatal("expected a buffered event")
	}

	b.Unsubscribe(sub)
	_, ok := <-sub
	assert.False(t, ok, "unsubscribe must close the channel")
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	for i := 0; i < 64; i++ {
		b.Publish(Event{Price: int64(i)})
	}

	count := 0
	for {
		select {
		case <-sub:
			count++
		default:
			require.LessOrEqual(t, count, 32, "publish must never block on a full subscriber")
			return
		}
	}
}

func TestPublishReachesMultipleSubscribers(t *testing.T) {
	b := New()
	a := b.Subscribe()
	c := b.Subscribe()
	defer b.Unsubscribe(a)
	defer b.Unsubscribe(c)

	b.Publish(Event{Price: 7})

	evtA := <-a
	evtC := <-c
	assert.Equal(t, int64(7), evtA.Price)
	assert.Equal(t, int64(7), evtC.Price)
}
