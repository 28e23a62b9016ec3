package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusTimeout time.Duration

var statusCmd = &cobra.Command{
	Use:   "status <url>",
	Short: "Check the health of a running conduit server",
	Long: `Call /healthz, /ready and /version on the server and print the results.

Example:
  conduit-testenv status http://localhost:8080`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: statusTimeout}
		return checkStatus(cmd.Context(), cmd.OutOrStdout(), client, args[0])
	},
}

func init() {
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 5*time.Second, "timeout for each request")
}

var errUnhealthy = errors.New("server is not healthy")

// checkStatus prints one line per endpoint and returns errUnhealthy if any of them failed.
func checkStatus(ctx context.Context, out io.Writer, client *http.Client, baseURL string) error {
	baseURL = strings.TrimRight(baseURL, "/")

	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	healthy := true
	for _, path := range []string{"/healthz", "/ready", "/version"} {
		body, status, err := get(ctx, client, baseURL+path)
		switch {
		case err != nil:
			healthy = false
			fmt.Fprintf(out, "%s %-9s %v\n", fail("FAIL"), path, err)
		case status != http.StatusOK:
			healthy = false
			fmt.Fprintf(out, "%s %-9s %d %s\n", fail("FAIL"), path, status, body)
		default:
			fmt.Fprintf(out, "%s   %-9s %s\n", ok("OK"), path, body)
		}
	}

	if !healthy {
		return errUnhealthy
	}
	return nil
}

func get(ctx context.Context, client *http.Client, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", resp.StatusCode, err
	}
	return strings.TrimSpace(string(body)), resp.StatusCode, nil
}
