package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfctrack/attendctl/internal/httprepo"
	"github.com/nfctrack/attendctl/internal/session"
	"github.com/nfctrack/attendctl/internal/token"
	"github.com/nfctrack/attendctl/internal/usecase"
)

var (
	cfg *Config
	app *appContext
)

// appContext wires the ports, use-cases and session manager for the
// command handlers
type appContext struct {
	Tokens     *token.Store
	Students   *usecase.StudentService
	Attendance *usecase.AttendanceService
	Auth       *usecase.AuthService
	Session    *session.Manager
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "attendctl",
		Short: "CLI for the NFC attendance service",
		Long: `attendctl is a CLI for operating an NFC-based attendance service.

It manages student records, records attendance events directly or via a
scanned NFC tag id, queries attendance history, and handles operator
sessions against the remote API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			tokens := token.NewStore(cfg.TokenFile)
			client := httprepo.NewClient(cfg.ServerURL, tokens)

			students := httprepo.NewStudentRepository(client)
			attendance := httprepo.NewAttendanceRepository(client)
			auth := httprepo.NewAuthRepository(client)

			authService := usecase.NewAuthService(auth, tokens, logger)

			app = &appContext{
				Tokens:     tokens,
				Students:   usecase.NewStudentService(students),
				Attendance: usecase.NewAttendanceService(attendance, students),
				Auth:       authService,
				Session:    session.NewManager(authService, logger),
			}
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "API base URL (env: ATTENDCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: ATTENDCTL_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newStudentCmd())
	rootCmd.AddCommand(newAttendanceCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
