/*
Package conversation manages message threads derived from confirmed
bookings.

A conversation's identity is deterministic: tutor name, student name, and
booking ID joined with underscores, whitespace collapsed. Confirming the
same booking twice therefore resolves to the same thread instead of
creating a duplicate.

# Invariants

  - Every conversation's booking ID refers to a confirmed booking; the
    booking ledger is the only caller of CreateFromBooking.
  - Unread counters are non-negative and reset only by MarkMessagesAsRead
    for the matching role.
  - New conversations start with unread_count_student = 1, anticipating
    the system welcome message appended during the same confirmation pass.

# Read Tracking

MarkMessagesAsRead does two things in one call: zeroes the reader's
role-matching unread counter on the conversation, and flips read=true on
every stored message in that conversation addressed to the reader by name.

# See Also

  - pkg/booking for the confirmation fan-out that creates conversations
  - pkg/message for preview and unread maintenance on send
*/
package conversation
