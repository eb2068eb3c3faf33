/*
Package storage provides BoltDB-backed persistence for TutorConnect's
workflow state.

The storage package implements the Store interface using BoltDB (bbolt) as
the underlying database, providing ACID transactions for bookings,
conversations, sessions, messages, notifications, files, and the rollup
views. All data is serialized as JSON and stored in separate buckets for
isolation.

# Architecture

One database file per client profile, one bucket per collection:

	bookings        (sequence ID)    booking requests and their status
	conversations   (derived ID)     message threads, keyed by the
	                                 deterministic conversation ID
	sessions        (sequence ID)    tutor-facing scheduled sessions
	messages        (sequence ID)    append-only message log
	notifications   (sequence ID)    append-only notification log
	files           (sequence ID)    uploaded file records
	my_students     (sequence ID)    tutor-facing student aggregates
	my_sessions     (sequence ID)    student-facing session records
	profile         (fixed key)      the single live tutor profile

Transaction model:
  - Read: db.View() - concurrent, consistent snapshots
  - Write: db.Update() - serialized, atomic commits with fsync
  - Each mutating workflow call performs per-record upserts, never a
    full-state rewrite

# ID Assignment

Numeric IDs come from the bucket sequence (NextSequence) inside the write
transaction, so they are monotonic and collision-free by construction. Keys
are 8-byte big-endian encodings of the sequence, which makes cursor order
equal insertion order; the message and notification logs rely on this.
Conversation IDs are derived strings assigned by pkg/conversation.

# Design Patterns

Upsert Pattern:
  - Update methods overwrite the existing key (b.Put)
  - No separate "exists" check needed

Filter Pattern:
  - List all, filter by field in memory (ListMessagesByConversation,
    GetStudentRollupByPair)
  - Appropriate for single-profile data volumes

Not Found:
  - Absent records return an error wrapping ErrNotFound
  - Workflow packages translate this into the null-result semantics their
    callers expect

# Usage

	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	booking := &types.Booking{TutorName: "Mike", StudentName: "Sarah"}
	err = store.CreateBooking(booking) // booking.ID assigned here

	got, err := store.GetBooking(booking.ID)

# See Also

  - pkg/types for all entity definitions
  - pkg/booking for the orchestration that drives writes
  - BoltDB documentation: https://github.com/etcd-io/bbolt
*/
package storage
