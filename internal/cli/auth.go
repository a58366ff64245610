package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfctrack/attendctl/internal/model"
)

func newLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the attendance service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || pass == "" {
				return fmt.Errorf("--user and --pass are required")
			}

			creds := model.Credentials{Username: user, Password: pass}
			if err := app.Session.Login(cmd.Context(), creds); err != nil {
				return err
			}

			authed, _ := app.Session.CurrentUser()

			out := NewOutput(cfg.Output)
			out.Print(*authed)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Bootstrap(cmd.Context())

			out := NewOutput(cfg.Output)
			user, ok := app.Session.CurrentUser()
			if !ok {
				out.PrintMessage("Not authenticated")
				return nil
			}
			out.Print(*user)
			return nil
		},
	}
}
