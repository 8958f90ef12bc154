package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs",
	Long: `Shows the run history recorded in the file named by history_file in
schemacheck.toml. Every check and browse run appends one entry.`,
	RunE: runHistory,
}

var (
	historyLimit int
	historyJSON  bool
	historyClear bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Show at most this many recent runs (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "raw", false, "Output entries as JSON lines")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the history file")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.HistoryFile == "" {
		return errors.ConfigError("history_file is not set in "+configPath, nil)
	}
	log := history.NewLog(cfg.HistoryFile)

	if historyClear {
		if err := log.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logSuccess("History cleared")
		return nil
	}

	entries, err := log.Last(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		logInfo("No runs recorded in %s", cfg.HistoryFile)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		if historyJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal entry: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		fmt.Fprintln(out, formatEntry(e))
	}

	return nil
}

func formatEntry(e history.Entry) string {
	ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
	if e.Status == history.StatusError {
		return fmt.Sprintf("[%s] %-6s %s", ts, e.Status, e.Details)
	}

	line := fmt.Sprintf("[%s] %-6s %d schemas, %d fixtures, %d failed (%dms)",
		ts, e.Status, e.Schemas, e.Fixtures, e.CompileFailures+e.FixturesFailed, e.DurationMS)
	if len(e.Failing) > 0 {
		line += " - " + strings.Join(e.Failing, ", ")
	}
	return line
}
