package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-demo/app/internal/testenv"
)

var upCmd = &cobra.Command{
	Use:   "up [name]",
	Short: "Start a disposable environment and keep it running until interrupted",
	Long: `Start a postgres container and an in-process conduit server on a free port.

The database is named after the argument (default: conduit_dev).
Everything is removed on Ctrl-C.

Settings are read from the environment (TESTENV_POSTGRES_IMAGE, TESTENV_SETUP_TIMEOUT,
TESTENV_STATIC_DIR, TESTENV_DOCS_UI_PATH, ENABLE_SERVER_LOGS).

Example:
  conduit-testenv up login_test`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUp,
}

func runUp(cmd *cobra.Command, args []string) error {
	name := "conduit_dev"
	if len(args) == 1 {
		name = args[0]
	}

	controller, err := testenv.NewDefaultController()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	appLogger.Info("starting test environment", slog.String("name", name))

	return controller.Run(ctx, name, testenv.Features{}, func(ctx context.Context, rc *testenv.RunContext) error {
		green.Fprintln(out, "✓ environment ready")
		fmt.Fprintf(out, "  %s %s\n", bold.Sprint("url:     "), rc.URL)
		fmt.Fprintf(out, "  %s %s\n", bold.Sprint("database:"), rc.DatabaseURL)
		fmt.Fprintf(out, "  %s %s\n", bold.Sprint("run id:  "), rc.RunID)
		fmt.Fprintln(out, "press Ctrl-C to tear down")

		<-ctx.Done()

		fmt.Fprintln(out, "tearing down...")
		return nil
	})
}
