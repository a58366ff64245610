package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfctrack/attendctl/internal/model"
)

func newAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance recording and history commands",
	}

	cmd.AddCommand(newAttendanceRecordCmd())
	cmd.AddCommand(newAttendanceRecordNfcCmd())
	cmd.AddCommand(newAttendanceHistoryCmd())
	cmd.AddCommand(newAttendanceGetCmd())

	return cmd
}

func newAttendanceRecordCmd() *cobra.Command {
	var studentID, nfcID, status string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an attendance event",
		Long: `Record an attendance event for a student identified either by
--student-id or by --nfc-id. Whether the event is an entry or an exit is
decided by the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := model.RecordAttendanceInput{
				StudentID: model.StudentID(studentID),
				NfcID:     model.NfcID(nfcID),
				Status:    model.Status(status),
			}

			record, err := app.Attendance.Record(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*record)
			return nil
		},
	}

	cmd.Flags().StringVar(&studentID, "student-id", "", "Student id")
	cmd.Flags().StringVar(&nfcID, "nfc-id", "", "NFC tag id")
	cmd.Flags().StringVar(&status, "status", "", "Status hint: Presente, Ausente, Tardanza, Justificado")

	return cmd
}

func newAttendanceRecordNfcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record-nfc <nfc-id>",
		Short: "Record attendance from a scanned NFC tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.Attendance.RecordByNfcID(cmd.Context(), model.NfcID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*record)
			return nil
		},
	}
}

func newAttendanceHistoryCmd() *cobra.Command {
	var studentID, startDate, endDate, status string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query attendance history",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := model.AttendanceFilters{
				StudentID: model.StudentID(studentID),
				StartDate: startDate,
				EndDate:   endDate,
				Status:    model.Status(status),
			}

			records, err := app.Attendance.History(cmd.Context(), filters)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(records)
			return nil
		},
	}

	cmd.Flags().StringVar(&studentID, "student-id", "", "Filter by student id")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Filter from date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Filter to date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")

	return cmd
}

func newAttendanceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single attendance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, found, err := app.Attendance.GetRecord(cmd.Context(), model.RecordID(args[0]))
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no attendance record with id %q", args[0])
			}

			out := NewOutput(cfg.Output)
			out.Print(*record)
			return nil
		},
	}
}
