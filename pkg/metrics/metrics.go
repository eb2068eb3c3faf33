package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Booking metrics
	BookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorconnect_bookings_created_total",
			Help: "Total number of booking requests created",
		},
	)

	BookingsTransitioned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorconnect_bookings_transitioned_total",
			Help: "Total number of booking status transitions by outcome",
		},
		[]string{"status"},
	)

	// Messaging metrics
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorconnect_messages_sent_total",
			Help: "Total number of messages appended by type",
		},
		[]string{"type"},
	)

	FilesUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorconnect_files_uploaded_total",
			Help: "Total number of files uploaded",
		},
	)

	FileUploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorconnect_file_upload_bytes_total",
			Help: "Total bytes read from uploaded files",
		},
	)

	// View metrics
	ConversationsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tutorconnect_conversations_active",
			Help: "Number of active conversations in the store",
		},
	)

	NotificationsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorconnect_notifications_emitted_total",
			Help: "Total number of notifications emitted by type",
		},
		[]string{"type"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(BookingsCreated)
	prometheus.MustRegister(BookingsTransitioned)
	prometheus.MustRegister(MessagesSent)
	prometheus.MustRegister(FilesUploaded)
	prometheus.MustRegister(FileUploadBytes)
	prometheus.MustRegister(ConversationsActive)
	prometheus.MustRegister(NotificationsEmitted)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer starts the metrics HTTP server on the given address
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
