/*
Package booking implements the booking ledger and the confirmation
fan-out that drives the rest of the workflow.

# Lifecycle

A booking is created pending and moves exactly once:

	pending --confirm--> confirmed   (terminal, full fan-out)
	pending --decline--> declined    (terminal, notification only)

Transitions on a terminal booking are ignored and return the record
unchanged, so the fan-out, and with it the rollup increments and session
creation, runs at most once per booking. Conversation creation is
additionally idempotent by its derived ID.

# Confirmation Fan-Out

Confirm fans out synchronously, in fixed order:

 1. Conversation derived from the booking (student side starts with one
    unread for the welcome message)
 2. Session record with generated meeting link
 3. System welcome message from the tutor
 4. Tutor's "my students" aggregate created or incremented
 5. Student's "my sessions" record appended
 6. booking_confirmed notification to the student

The whole pass runs to completion without suspension; there are no
concurrent writers, so callers never observe a partially fanned-out
confirmation.

# Construction

The Ledger is the composition root: it builds the conversation manager,
session ledger, message store, rollup engine, and notification sink over
one injected store, and exposes them through accessors.

	store, _ := storage.NewBoltStore(dataDir)
	broker := events.NewBroker()
	broker.Start()
	ledger := booking.NewLedger(store, broker)

	b, _ := ledger.CreateRequest(booking.CreateRequestInput{
		TutorName: "Mike", StudentName: "Sarah",
		HourlyRate: 800, DurationMinutes: 90,
	})
	confirmed, _ := ledger.UpdateStatus(b.ID, types.BookingStatusConfirmed)

# See Also

  - pkg/conversation, pkg/session, pkg/message, pkg/rollup,
    pkg/notification for the fanned-out components
  - pkg/storage for persistence
*/
package booking
