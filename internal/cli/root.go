// Package cli implements the conduit-testenv command: start a disposable conduit
// environment for manual testing and check the health of a running server.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/conduit-demo/app/internal/logger"
	"github.com/conduit-demo/app/internal/version"
)

var (
	logLevel  string
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "conduit-testenv",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Disposable conduit environments",
	Long: `conduit-testenv starts the conduit server against a fresh postgres container,
the same way the end-to-end tests do, and checks the health of running servers.

Docker is required for the up command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appLogger = logger.InitLogger(logger.ParseLogLevel(logLevel), "dev")
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, error or none")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(statusCmd)
}
