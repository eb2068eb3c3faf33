/*
Package types defines the core data structures used throughout TutorConnect.

This package contains all fundamental types that represent the tutoring
workflow domain model, including bookings, conversations, sessions, messages,
notifications, rollup views, and uploaded files. These types are used by all
other packages for state management and workflow orchestration.

# Architecture

The types package is the foundation of the workflow data model. It defines:

  - Booking lifecycle (pending, confirmed, declined)
  - Conversation threads with unread and typing state
  - Scheduled sessions with meeting links
  - Append-only message and notification logs
  - Denormalized rollup views (my students, my sessions)
  - The locally stored live tutor profile

All types are designed to be:
  - Serializable (JSON, for bbolt storage and UI consumption)
  - Immutable where possible (bookings change only status and timestamps)
  - Self-documenting (clear field names and comments)
  - Validated by construction (constants for enums)

# Core Types

Booking Lifecycle:
  - Booking: A student's request for a tutor's time
  - BookingStatus: Pending, confirmed, declined
  - Role: Tutor or student, the acting side of an operation

Messaging:
  - Conversation: Thread derived from a confirmed booking
  - Message: Text, file, or welcome entry in a thread
  - MessageType: Text, file, welcome
  - FileRecord: Uploaded bytes as a base64 data URL

Derived Views:
  - Session: Tutor-facing scheduled slot with meeting link
  - StudentSessionRecord: Student-facing per-booking session entry
  - StudentRollup: Tutor-facing per-student aggregate

Notifications:
  - Notification: User-addressed lifecycle event
  - NotificationType: Request, confirmed, declined

Identity:
  - TutorProfile: The live profile this client acts as

# Identity Model

Records are addressed by display name (tutor side) and email (student side),
mirroring the consumer-facing views they feed. The identity resolver in
pkg/identity centralizes name-to-role resolution so a stable identifier can
replace the display name in one place later.

# See Also

  - pkg/storage for persistence of these types
  - pkg/booking for the lifecycle orchestration
  - pkg/rollup for the derived views
*/
package types
