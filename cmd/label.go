package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ops-labels/internal/converter"
	"github.com/ginjaninja78/ops-labels/internal/types"
	"github.com/ginjaninja78/ops-labels/pkg/utils"
)

// labelForm mirrors the single-label form.
var labelForm struct {
	item, qty, location, date, checkedBy, mode string
}

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Render labels for a single item",
	Long: `Render one label (bulk) or one label per unit (nonbulk) for a single item.
Quantity is required and mode defaults to bulk; every nonbulk copy shows the
full quantity.`,
	Example: `  opslabels label --item 607529 --qty 24 --location A-10-1 --mode bulk
  opslabels label --item 123456 --qty 3 --mode nonbulk --checked-by Ana`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := converter.New(appConfig, logger).GenerateSingle(map[string]string{
			types.ColumnItemNo:       labelForm.item,
			types.ColumnQuantity:     labelForm.qty,
			types.ColumnLocation:     labelForm.location,
			types.ColumnDateReceived: labelForm.date,
			types.ColumnCheckedBy:    labelForm.checkedBy,
			types.ColumnMode:         labelForm.mode,
		})
		if err != nil {
			return err
		}

		name := utils.GenerateOutputFileName(appConfig.OutputNameFormat, map[string]string{
			"item":     res.ItemNo,
			"original": res.ItemNo,
		})
		fm := newFileManager()
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
		out, err := fm.WriteOutput(name, res.PDF)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d labels -> %s\n", res.Stats.LabelsRendered, out)
		return nil
	},
}

func init() {
	f := labelCmd.Flags()
	f.StringVar(&labelForm.item, "item", "", "Item # (6 digits)")
	f.StringVar(&labelForm.qty, "qty", "", "Quantity")
	f.StringVar(&labelForm.location, "location", "", "Location, e.g. A-10-1")
	f.StringVar(&labelForm.date, "date", "", "Date received (default today)")
	f.StringVar(&labelForm.checkedBy, "checked-by", "", "Checker name (default blank line)")
	f.StringVar(&labelForm.mode, "mode", string(types.ModeBulk), "bulk or nonbulk")
	f.StringVar(&labelsOutputDir, "output-dir", "", "Output directory (overrides config)")

	rootCmd.AddCommand(labelCmd)
}
