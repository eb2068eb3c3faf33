package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tutorconnect/tutorconnect/pkg/booking"
	"gopkg.in/yaml.v3"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "File a booking request from a YAML manifest",
	Long: `File a booking request described by a YAML manifest.

Example manifest:

  tutor_name: Mike Chen
  student_name: Sarah Johnson
  student_email: sarah@example.com
  subject: Mathematics
  requested_date: "2026-09-14"
  requested_time: "16:00"
  duration: 90
  hourly_rate: 800
  message: Quadratic equations and word problems

Usage:

  tutorconnect book -f booking.yaml`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().StringP("file", "f", "", "YAML manifest to file (required)")
	_ = bookCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(bookCmd)
}

func runBook(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var input booking.CreateRequestInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	ledger, _, cleanup, err := openLedger()
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := ledger.CreateRequest(input)
	if err != nil {
		return err
	}

	fmt.Printf("Booking %d filed: %s with %s on %s %s (₹%.0f)\n",
		b.ID, b.Subject, b.TutorName, b.RequestedDate, b.RequestedTime, b.TotalCost)
	return nil
}
