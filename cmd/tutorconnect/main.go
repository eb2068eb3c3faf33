package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tutorconnect/tutorconnect/pkg/booking"
	"github.com/tutorconnect/tutorconnect/pkg/identity"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/metrics"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	dataDir     string
	logLevel    string
	jsonLog     bool
	metricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tutorconnect",
	Short: "TutorConnect - booking and messaging workflow for tutoring sessions",
	Long: `TutorConnect drives the booking-to-session workflow against a local
data directory: booking requests, confirmation fan-out (conversation,
session, welcome message, rollups, notifications), and the message
threads between tutors and students.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Config{
			Level:      log.Level(logLevel),
			JSONOutput: jsonLog,
			Output:     os.Stderr,
		})
		if metricsAddr != "" {
			go func() {
				if err := metrics.StartMetricsServer(metricsAddr); err != nil {
					log.Errorf("metrics server stopped", err)
				}
			}()
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"TutorConnect version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	home, _ := os.UserHomeDir()
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", filepath.Join(home, ".tutorconnect"), "Data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Emit JSON logs")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (optional)")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(declineCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(notificationsCmd)
}

// openLedger opens the store and builds the workflow ledger over it.
// The returned cleanup closes the store.
func openLedger() (*booking.Ledger, storage.Store, func(), error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		return nil, nil, nil, err
	}
	ledger := booking.NewLedger(store, nil)
	return ledger, store, func() { store.Close() }, nil
}

// Profile commands

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the live tutor profile",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the tutor identity this client acts as",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		subject, _ := cmd.Flags().GetString("subject")
		email, _ := cmd.Flags().GetString("email")

		_, store, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		resolver := identity.NewResolver(store)
		if err := resolver.SetLiveProfile(&types.TutorProfile{
			Name:    name,
			Subject: subject,
			Email:   email,
		}); err != nil {
			return err
		}
		fmt.Printf("Live profile set: %s\n", name)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the live tutor profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		profile, err := identity.NewResolver(store).LiveProfile()
		if err != nil {
			return err
		}
		if profile == nil {
			fmt.Println("No live profile set")
			return nil
		}
		fmt.Printf("Name:    %s\nSubject: %s\nEmail:   %s\n", profile.Name, profile.Subject, profile.Email)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().String("name", "", "Tutor display name (required)")
	profileSetCmd.Flags().String("subject", "", "Primary subject")
	profileSetCmd.Flags().String("email", "", "Tutor email")
	_ = profileSetCmd.MarkFlagRequired("name")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
}

// Booking lifecycle commands

var confirmCmd = &cobra.Command{
	Use:   "confirm <booking-id>",
	Short: "Confirm a pending booking and run the fan-out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transition(args[0], types.BookingStatusConfirmed)
	},
}

var declineCmd = &cobra.Command{
	Use:   "decline <booking-id>",
	Short: "Decline a pending booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transition(args[0], types.BookingStatusDeclined)
	},
}

func transition(rawID string, status types.BookingStatus) error {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", rawID)
	}

	ledger, _, cleanup, err := openLedger()
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := ledger.UpdateStatus(id, status)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("booking %d not found", id)
	}
	fmt.Printf("Booking %d: %s\n", b.ID, b.Status)
	return nil
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List bookings for a tutor or student",
	RunE: func(cmd *cobra.Command, args []string) error {
		tutor, _ := cmd.Flags().GetString("tutor")
		studentEmail, _ := cmd.Flags().GetString("student-email")
		if (tutor == "") == (studentEmail == "") {
			return fmt.Errorf("exactly one of --tutor or --student-email is required")
		}

		ledger, _, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		var bookings []*types.Booking
		if tutor != "" {
			bookings, err = ledger.TutorBookings(tutor)
		} else {
			bookings, err = ledger.StudentBookings(studentEmail)
		}
		if err != nil {
			return err
		}

		for _, b := range bookings {
			fmt.Printf("%-4d %-10s %-20s %-20s %s %s (%d min, ₹%.0f)\n",
				b.ID, b.Status, b.TutorName, b.StudentName, b.RequestedDate, b.RequestedTime,
				b.DurationMinutes, b.TotalCost)
		}
		return nil
	},
}

func init() {
	bookingsCmd.Flags().String("tutor", "", "Tutor name")
	bookingsCmd.Flags().String("student-email", "", "Student email")
}

// Messaging commands

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "List a user's conversations, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		roleFlag, _ := cmd.Flags().GetString("role")

		ledger, store, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		role, err := identity.NewResolver(store).ResolveWithOverride(user, types.Role(roleFlag))
		if err != nil {
			return err
		}
		conversations, err := ledger.Conversations().UserConversations(user, role)
		if err != nil {
			return err
		}

		for _, c := range conversations {
			unread := c.UnreadCountStudent
			partner := c.TutorName
			if role == types.RoleTutor {
				unread = c.UnreadCountTutor
				partner = c.StudentName
			}
			fmt.Printf("%-40s %-20s unread=%d  %s\n", c.ID, partner, unread, c.LastMessage)
		}
		return nil
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages <conversation-id>",
	Short: "Show a conversation's messages in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, _, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		messages, err := ledger.Messages().ConversationMessages(args[0])
		if err != nil {
			return err
		}
		for _, m := range messages {
			body := m.Message
			if m.Type == types.MessageTypeFile {
				body = "📎 " + m.FileName
			}
			fmt.Printf("[%s] %s: %s\n", m.Timestamp.Format("2006-01-02 15:04"), m.SenderName, body)
		}
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read <conversation-id>",
	Short: "Mark a conversation's messages as read for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		roleFlag, _ := cmd.Flags().GetString("role")

		ledger, store, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		role, err := identity.NewResolver(store).ResolveWithOverride(user, types.Role(roleFlag))
		if err != nil {
			return err
		}
		return ledger.Conversations().MarkMessagesAsRead(args[0], user, role)
	},
}

func init() {
	conversationsCmd.Flags().String("user", "", "Display name (required)")
	conversationsCmd.Flags().String("role", "", "Acting role (tutor or student; resolved from the live profile when omitted)")
	_ = conversationsCmd.MarkFlagRequired("user")

	readCmd.Flags().String("user", "", "Display name (required)")
	readCmd.Flags().String("role", "", "Acting role (resolved from the live profile when omitted)")
	_ = readCmd.MarkFlagRequired("user")
}

// Rollup and notification commands

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Show a tutor's aggregated student list",
	RunE: func(cmd *cobra.Command, args []string) error {
		tutor, _ := cmd.Flags().GetString("tutor")

		ledger, _, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		rollups, err := ledger.Rollups().MyStudents(tutor)
		if err != nil {
			return err
		}
		for _, r := range rollups {
			fmt.Printf("%-20s %-30s sessions=%d earnings=₹%.0f last=%s\n",
				r.StudentName, r.StudentEmail, r.SessionsCount, r.TotalEarnings, r.LastSession)
		}
		return nil
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show a student's booked sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentEmail, _ := cmd.Flags().GetString("student-email")

		ledger, _, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := ledger.Rollups().MySessions(studentEmail)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Printf("%-4d %-20s %-15s %s %s (%d min, ₹%.0f)\n",
				r.ID, r.TutorName, r.Subject, r.SessionDate, r.SessionTime,
				r.DurationMinutes, r.Cost)
		}
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show a user's notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		ledger, _, cleanup, err := openLedger()
		if err != nil {
			return err
		}
		defer cleanup()

		notifications, err := ledger.Notifications().UserNotifications(user)
		if err != nil {
			return err
		}
		for _, n := range notifications {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			fmt.Printf("%s %-4d %-20s %s: %s\n", marker, n.ID, n.Type, n.Title, n.Message)
		}
		return nil
	},
}

func init() {
	studentsCmd.Flags().String("tutor", "", "Tutor name (required)")
	_ = studentsCmd.MarkFlagRequired("tutor")

	sessionsCmd.Flags().String("student-email", "", "Student email (required)")
	_ = sessionsCmd.MarkFlagRequired("student-email")

	notificationsCmd.Flags().String("user", "", "Display name (required)")
	_ = notificationsCmd.MarkFlagRequired("user")
}
