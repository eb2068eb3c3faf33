/*
Package notification appends user-addressed records for booking
lifecycle events.

Notifications are addressed by display name: the tutor receives a
booking_request when a student files one; the student receives
booking_confirmed or booking_declined when the tutor decides. The log is
append-only; the only mutation is flagging a record read.
*/
package notification
