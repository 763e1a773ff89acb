// =============================================================================
// Warehouse Ops Labels - Ops Log Commands
// =============================================================================
//
// COMMAND USAGE:
//   opslabels log --dept DEPT --person NAME --qty N [flags]
//   opslabels entries [--limit N]
//   opslabels export [--day YYYY-MM-DD] [--out FILE]
//   opslabels departments
//
// Every entry goes to the database configured under 'database'
// (sqlite by default, postgres optional). One insert per submission.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/ops-labels/internal/opslog"
	"github.com/ginjaninja78/ops-labels/internal/validation"
)

var logForm opslog.Submission

var (
	entriesLimit int
	exportDay    string
	exportOut    string
)

// =============================================================================
// LOG
// =============================================================================

var logCmd = &cobra.Command{
	Use:     "log",
	Short:   "Append a department entry to the ops log",
	Example: `  opslabels log --dept receiving --person Ana --item 607529 --qty 24 --location A-10-1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := validation.NewValidator(appConfig.Label.Areas)
		entry, err := opslog.NewEntry(logForm, v, time.Now())
		if err != nil {
			return err
		}

		store, err := opslog.Open(appConfig.Database)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Append(cmd.Context(), &entry); err != nil {
			return err
		}

		logger.Info("entry logged",
			zap.Uint("id", entry.ID),
			zap.String("department", entry.Department),
			zap.String("item_no", entry.ItemNo),
			zap.Int("qty", entry.Qty))
		fmt.Fprintf(cmd.OutOrStdout(), "logged entry %d\n", entry.ID)
		return nil
	},
}

// =============================================================================
// ENTRIES
// =============================================================================

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Show the most recent ops log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := opslog.Open(appConfig.Database)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(cmd.Context(), entriesLimit)
		if err != nil {
			return err
		}
		return printEntries(cmd.OutOrStdout(), entries)
	},
}

func printEntries(w io.Writer, entries []opslog.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME (UTC)\tDEPT\tPERSON\tITEM\tQTY\tLOC\tRECEIVED\tCHECKED\tNOTES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.Timestamp.UTC().Format("2006-01-02 15:04:05"), e.Department, e.Person,
			e.ItemNo, e.Qty, e.Location, e.DateReceived, e.CheckedBy, e.Notes)
	}
	return tw.Flush()
}

// =============================================================================
// EXPORT
// =============================================================================

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one day (UTC) of the ops log as CSV",
	Long: `Export every entry logged on one UTC day. Without --out the CSV is
written to ops_<day>.csv in the output directory; use --out - for stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now().UTC()
		if exportDay != "" {
			parsed, err := time.Parse("2006-01-02", exportDay)
			if err != nil {
				return fmt.Errorf("invalid --day %q: %w", exportDay, err)
			}
			day = parsed
		}
		dayStr := day.Format("2006-01-02")

		store, err := opslog.Open(appConfig.Database)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Day(cmd.Context(), day)
		if err != nil {
			return err
		}

		if exportOut == "-" {
			return opslog.WriteCSV(cmd.OutOrStdout(), entries)
		}

		path := exportOut
		if path == "" {
			path = filepath.Join(appConfig.OutputDir, opslog.ExportFileName(dayStr))
		}
		if err := writeExport(path, entries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries -> %s\n", len(entries), path)
		return nil
	},
}

func writeExport(path string, entries []opslog.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := opslog.WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// =============================================================================
// DEPARTMENTS
// =============================================================================

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List the departments accepted by 'log'",
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range opslog.Departments {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", d.Key, d.Name)
		}
	},
}

func init() {
	f := logCmd.Flags()
	f.StringVar(&logForm.Department, "dept", "", "Department key (see 'opslabels departments')")
	f.StringVar(&logForm.Person, "person", "", "Person submitting the entry")
	f.StringVar(&logForm.ItemNo, "item", "", "Item # (6 digits, optional)")
	f.StringVar(&logForm.Quantity, "qty", "", "Quantity")
	f.StringVar(&logForm.Location, "location", "", "Location, e.g. A-10-1 (optional)")
	f.StringVar(&logForm.DateReceived, "date", "", "Date received")
	f.StringVar(&logForm.CheckedBy, "checked-by", "", "Checker name")
	f.StringVar(&logForm.Notes, "notes", "", "Free-form notes")

	entriesCmd.Flags().IntVar(&entriesLimit, "limit", opslog.DefaultRecentLimit, "Maximum entries to show")

	exportCmd.Flags().StringVar(&exportDay, "day", "", "Day to export, YYYY-MM-DD (default today, UTC)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file, or - for stdout")

	rootCmd.AddCommand(logCmd, entriesCmd, exportCmd, departmentsCmd)
}
