/*
Package metrics provides Prometheus metrics for TutorConnect workflow
activity.

Collectors are package-level and registered once at init, so any component
can record without wiring. The embedding process decides whether to expose
them over HTTP; the library itself never opens a listener.

# Metrics

Booking:
  - tutorconnect_bookings_created_total: booking requests created
  - tutorconnect_bookings_transitioned_total{status}: confirmations and
    declines

Messaging:
  - tutorconnect_messages_sent_total{type}: text, file, welcome messages
  - tutorconnect_files_uploaded_total: completed uploads
  - tutorconnect_file_upload_bytes_total: bytes read from uploads

Views:
  - tutorconnect_conversations_active: conversations currently in the store
  - tutorconnect_notifications_emitted_total{type}: notifications by type

# Usage

Recording:

	metrics.BookingsCreated.Inc()
	metrics.MessagesSent.WithLabelValues(string(msg.Type)).Inc()

Serving (optional, from the embedding process):

	go metrics.StartMetricsServer(":9090")

# See Also

  - pkg/booking and pkg/message for the recording sites
*/
package metrics
