package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile every schema and check its fixtures",
	Long: `Compiles every schema under the schema root in strict mode, then checks
each schema's positive and negative fixtures.

Every schema and every fixture is checked, even after a failure; the report
lists all of them. Use --only to re-check selected schemas by path or by
directory name (glob patterns allowed).`,
	Example: `  schemacheck check
  schemacheck check --only widget --only 'schemas/gadget/*'
  schemacheck check --format json --jobs 8`,
	RunE: runCheck,
}

var (
	checkFormat string
	checkOnly   []string
	checkJobs   int
	noStrict    bool
)

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&checkFormat, "format", "text", "Report format: text, json or yaml")
	addFilterFlag(cmd)
	addRunFlags(cmd)
}

// addFilterFlag registers --only on commands that walk the schema root.
func addFilterFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&checkOnly, "only", nil, "Only schemas matching this path or name pattern (repeatable)")
}

// addRunFlags registers the flags that shape a pipeline run.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkJobs, "jobs", "j", 0, "Schemas checked in parallel (0 uses the configured value)")
	cmd.Flags().BoolVar(&noStrict, "no-strict", false, "Skip the strict-mode pass; schemas are only checked against their meta-schema")
}

func init() {
	addCheckFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch checkFormat {
	case "text", "json", "yaml":
	default:
		return errors.ValidationError(fmt.Sprintf("invalid format %q (must be text, json or yaml)", checkFormat))
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	res, err := a.Check(cmd.Context(), checkOnly)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch checkFormat {
	case "json":
		err = report.JSON(out, res)
	case "yaml":
		err = report.YAML(out, res)
	default:
		err = report.Text(out, res, report.TextOptions{RerunCommand: rerunCommand()})
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return res.Err()
}
