package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ops-labels/internal/pdfwriter"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE.pdf",
	Short: "Print the fields printed on each page of a label PDF",
	Long: `Read a PDF written by 'labels' or 'label' and print, for every page, the
fields found at the fixed label positions. Useful to check a batch before
sending it to the printer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read PDF: %w", err)
		}

		pages, err := pdfwriter.ReadPages(data)
		if err != nil {
			return err
		}

		layout := pdfwriter.NewLayout(appConfig.Label)
		out := cmd.OutOrStdout()
		for i, p := range pages {
			f, err := layout.Read(p)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			fmt.Fprintf(out, "page %d: item=%s qty=%s loc=%s received=%s checked_by=%s\n",
				i+1, f.ItemNo, f.Quantity, f.Location, f.DateReceived, f.CheckedBy)
		}
		fmt.Fprintf(out, "%d pages\n", len(pages))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
