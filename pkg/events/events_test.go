package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker(t *testing.T) *Broker {
	t.Helper()
	broker := NewBroker()
	broker.Start()
	t.Cleanup(broker.Stop)
	return broker
}

func receive(t *testing.T, sub Subscriber) *Event {
	t.Helper()
	select {
	case event := <-sub:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	broker := newTestBroker(t)

	first := broker.Subscribe()
	second := broker.Subscribe()
	assert.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(&Event{
		Type:           EventBookingConfirmed,
		BookingID:      7,
		ConversationID: "Mike_Sarah_7",
		UserName:       "Mike",
	})

	for _, sub := range []Subscriber{first, second} {
		event := receive(t, sub)
		assert.Equal(t, EventBookingConfirmed, event.Type)
		assert.Equal(t, uint64(7), event.BookingID)
		assert.Equal(t, "Mike_Sarah_7", event.ConversationID)
		assert.False(t, event.Timestamp.IsZero())
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	broker := newTestBroker(t)

	kept := broker.Subscribe()
	dropped := broker.Subscribe()
	broker.Unsubscribe(dropped)
	assert.Equal(t, 1, broker.SubscriberCount())

	broker.Publish(&Event{Type: EventMessageSent})

	event := receive(t, kept)
	require.Equal(t, EventMessageSent, event.Type)

	// The dropped channel is closed and drained
	_, open := <-dropped
	assert.False(t, open)
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	broker := newTestBroker(t)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			broker.Publish(&Event{Type: EventFileUploaded})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked with no subscribers")
	}
}

func TestFullSubscriberBufferIsSkipped(t *testing.T) {
	broker := newTestBroker(t)

	// Overfill an unread subscriber's buffer; extra events are dropped,
	// not queued, so delivery never wedges the broker.
	broker.Subscribe()
	for i := 0; i < 100; i++ {
		broker.Publish(&Event{Type: EventBookingRequested, BookingID: uint64(i)})
	}

	responsive := broker.Subscribe()
	broker.Publish(&Event{Type: EventSessionScheduled})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-responsive:
			if event.Type == EventSessionScheduled {
				return
			}
		case <-deadline:
			t.Fatal("broker stopped delivering after a slow subscriber filled up")
		}
	}
}
