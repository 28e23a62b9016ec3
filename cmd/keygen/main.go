// keygen generates the SECRET_KEY used by conduit-server to sign access tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conduit-demo/app/internal/crypto"
	"github.com/conduit-demo/app/internal/version"
)

var (
	outputDir string
	fileName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "keygen",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "SECRET_KEY generator for conduit-server",
		Long:              "Generate a random 32 byte signing key, base64 encoded, for the SECRET_KEY environment variable",
	}

	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new secret key",
		Long: `Generate a new secret key and print it, or save it to a file with --outputdir.

Example:
  export SECRET_KEY=$(keygen generate)
  keygen generate --outputdir ./secrets --file secret_key`,
		RunE: runGenerate,
	}

	generateCmd.Flags().StringVarP(&outputDir, "outputdir", "o", "", "Output directory (default: print to stdout)")
	generateCmd.Flags().StringVarP(&fileName, "file", "f", "secret_key", "File name used with --outputdir")

	rootCmd.AddCommand(generateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	secret, err := crypto.GenerateSecretKey()
	if err != nil {
		return fmt.Errorf("failed to generate secret key: %w", err)
	}

	if outputDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), secret)
		return nil
	}

	// make the directory if it doesn't exist
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := crypto.SaveSecretKeyToFile(secret, outputDir, fileName); err != nil {
		return fmt.Errorf("failed to save secret key: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Secret key: %s/%s\n", outputDir, fileName)
	return nil
}
