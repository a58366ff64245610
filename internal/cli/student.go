package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfctrack/attendctl/internal/model"
)

func newStudentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Student record management commands",
	}

	cmd.AddCommand(newStudentListCmd())
	cmd.AddCommand(newStudentGetCmd())
	cmd.AddCommand(newStudentCreateCmd())
	cmd.AddCommand(newStudentUpdateCmd())
	cmd.AddCommand(newStudentDeleteCmd())
	cmd.AddCommand(newStudentFindNfcCmd())

	return cmd
}

func newStudentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all students",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.Students.List(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(students)
			return nil
		},
	}
}

func newStudentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a student by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, found, err := app.Students.Get(cmd.Context(), model.StudentID(args[0]))
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no student with id %q", args[0])
			}

			out := NewOutput(cfg.Output)
			out.Print(*student)
			return nil
		},
	}
}

func newStudentCreateCmd() *cobra.Command {
	var name, lastName, nfcID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Enroll a new student",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.CreateStudentRequest{
				Name:     name,
				LastName: lastName,
				NfcID:    model.NfcID(nfcID),
			}

			student, err := app.Students.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*student)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "First name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&nfcID, "nfc-id", "", "NFC tag id (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("nfc-id")

	return cmd
}

func newStudentUpdateCmd() *cobra.Command {
	var name, lastName, nfcID string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a student (only the given flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the operator actually set go into the patch
			var req model.UpdateStudentRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("last-name") {
				req.LastName = &lastName
			}
			if cmd.Flags().Changed("nfc-id") {
				id := model.NfcID(nfcID)
				req.NfcID = &id
			}
			if req.Name == nil && req.LastName == nil && req.NfcID == nil {
				return fmt.Errorf("at least one of --name, --last-name, --nfc-id is required")
			}

			student, err := app.Students.Update(cmd.Context(), model.StudentID(args[0]), req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*student)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&nfcID, "nfc-id", "", "NFC tag id")

	return cmd
}

func newStudentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Students.Delete(cmd.Context(), model.StudentID(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Student deleted")
			return nil
		},
	}
}

func newStudentFindNfcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-nfc <nfc-id>",
		Short: "Look up the student assigned to an NFC tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, found, err := app.Students.FindByNfcID(cmd.Context(), model.NfcID(args[0]))
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no student with nfcId %q", args[0])
			}

			out := NewOutput(cfg.Output)
			out.Print(*student)
			return nil
		},
	}
}
