/*
Package session maintains tutor-facing session records.

One session is created per booking confirmation, carrying the schedule,
cost, and a generated meeting link. The booking ledger's transition guard
ensures a booking is confirmed at most once, so sessions cannot be
duplicated through repeat confirmation calls.

Meeting links are composed from a short random token on the jitsi meet
domain; the video call itself is an external collaborator.

Notes, materials, and ratings are post-session bookkeeping on the same
record.
*/
package session
