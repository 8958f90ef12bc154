package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abordage/schemas/internal/config"
	"github.com/abordage/schemas/internal/logging"
)

var (
	verbose     bool
	jsonOutput  bool
	configPath  string
	schemaDir   string
	examplesDir string
)

var rootCmd = &cobra.Command{
	Use:   "schemacheck",
	Short: "Strict conformance checks for a JSON Schema corpus",
	Long: `schemacheck is a regression gate for a corpus of JSON Schemas.

For every schema under the schema root it:
  - compiles the schema in strict mode (unknown keywords, unknown formats,
    ambiguous types, open tuples and undefined required properties fail)
  - checks every positive fixture in examples/<schema-dir>/ validates
  - checks every negative fixture ("invalid" or "negative" in its name) fails

Running schemacheck without a command is the same as "schemacheck check".
The exit status is 0 when everything passed and 1 otherwise.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the run.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// assigned here rather than in the literal: runCheck refers back to rootCmd
	rootCmd.RunE = runCheck
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "Configuration file (optional)")
	rootCmd.PersistentFlags().StringVar(&schemaDir, "schemas", "", "Schema root directory (overrides schema_dir)")
	rootCmd.PersistentFlags().StringVar(&examplesDir, "examples", "", "Examples root directory (overrides examples_dir)")
	addCheckFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
