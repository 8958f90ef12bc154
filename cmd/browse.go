package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abordage/schemas/internal/logging"
	"github.com/abordage/schemas/internal/report"
	"github.com/abordage/schemas/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Run the checks and browse the results interactively",
	Long: `Runs the same checks as "check" and opens an interactive browser over the
results, grouped by schema.

Use arrow keys or j/k to navigate, / to filter, Enter for details.

Keys:
  Enter  - Show violations for the selected fixture
  f      - Toggle between failures only and everything
  q/Esc  - Quit

When stdout is not a terminal the text report is printed instead.`,
	RunE: runBrowse,
}

func init() {
	addFilterFlag(browseCmd)
	addRunFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	res, err := a.Check(cmd.Context(), checkOnly)
	if err != nil {
		return err
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) || cmd.OutOrStdout() != os.Stdout {
		logging.Debug("stdout is not a terminal, printing text report")
		if err := report.Text(cmd.OutOrStdout(), res, report.TextOptions{RerunCommand: rerunCommand()}); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return res.Err()
	}

	if err := tui.RunBrowser(res); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return res.Err()
}
