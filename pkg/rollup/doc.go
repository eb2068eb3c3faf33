/*
Package rollup maintains the denormalized per-user views updated on each
booking confirmation.

Two views with deliberately different shapes:

  - My Students (tutor-facing): one row per (tutor name, student email)
    pair. Repeat confirmations increment sessions_count, accumulate
    total_earnings, and overwrite last_session. The row's sessions_count
    equals the number of confirmed bookings for that exact pair.
  - My Sessions (student-facing): one row per confirmed booking, never
    deduplicated: repeat bookings with the same tutor are distinct
    sessions from the student's perspective.

Both are incrementally maintained by the confirmation fan-out; getters are
plain equality filters in insertion order.
*/
package rollup
