package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abordage/schemas/internal/discovery"
	"github.com/abordage/schemas/internal/errors"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered schemas and their fixtures",
	Long: `Lists every schema under the schema root with the number of positive and
negative fixtures found for it. Nothing is compiled or validated.`,
	RunE: runList,
}

var listFixtures bool

func init() {
	listCmd.Flags().BoolVarP(&listFixtures, "fixtures", "f", false, "List each fixture with its polarity")
	addFilterFlag(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	cfg := a.Config

	schemas, err := discovery.FindSchemas(cfg.SchemaDir, cfg.SchemaSuffixes)
	if err != nil {
		return errors.RootError("scanning schema root", err)
	}
	if schemas, err = discovery.Filter(schemas, checkOnly); err != nil {
		return errors.ValidationError(err.Error())
	}

	if len(schemas) == 0 {
		logInfo("No schemas found under %s", cfg.SchemaDir)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if listFixtures {
		fmt.Fprintln(w, "SCHEMA\tFIXTURE\tPOLARITY")
		fmt.Fprintln(w, "------\t-------\t--------")
	} else {
		fmt.Fprintln(w, "NAME\tSCHEMA\tPOSITIVE\tNEGATIVE\tEXAMPLES")
		fmt.Fprintln(w, "----\t------\t--------\t--------\t--------")
	}

	for _, path := range schemas {
		name := discovery.SchemaName(path)
		examples, err := a.Locator.FindExamples(path)
		if err != nil {
			logWarning("%s: %v", path, err)
			continue
		}

		if listFixtures {
			for _, f := range examples.Fixtures() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, filepath.Base(f.Path), f.Polarity)
			}
			continue
		}

		dir, err := a.Locator.FixtureDir(path)
		if err != nil {
			logWarning("%s: %v", path, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			name, path, len(examples.Positive), len(examples.Negative), dir)
	}

	return w.Flush()
}
