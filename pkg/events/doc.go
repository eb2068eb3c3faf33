/*
Package events provides an in-process publish/subscribe broker for
workflow change events.

The workflow core is a library with no network surface; an embedding UI
still needs to know when state it renders has changed. Each mutating
operation publishes an event after its write has committed, and any number
of subscribers (dashboards, chat views, watchers) receive it on a buffered
channel.

# Event Types

  - booking.requested: a new booking request was created
  - booking.confirmed: a booking was confirmed and the fan-out completed
  - booking.declined:  a booking was declined
  - session.scheduled: a session record was created during confirmation
  - message.sent:      a message was appended to a conversation
  - file.uploaded:     a file record was stored

Events carry correlation IDs (booking ID, conversation ID, user name) rather
than full records; subscribers re-read through the workflow getters, which
keeps the store the single source of truth.

# Delivery Semantics

Delivery is best-effort: a subscriber whose buffer is full misses the event.
Subscribers must treat events as refresh hints, never as the data itself.
Publishing after commit means an event is never observed before its state.

# Usage

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	go func() {
		for event := range sub {
			fmt.Printf("[%s] %s\n", event.Type, event.Message)
		}
	}()

# See Also

  - pkg/booking and pkg/message for the publish sites
*/
package events
