// =============================================================================
// Warehouse Ops Labels - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (opslabels)
//   ├── labelsCmd      (opslabels labels)
//   ├── labelCmd       (opslabels label)
//   ├── logCmd         (opslabels log)
//   ├── entriesCmd     (opslabels entries)
//   ├── exportCmd      (opslabels export)
//   ├── inspectCmd     (opslabels inspect)
//   ├── departmentsCmd (opslabels departments)
//   └── versionCmd     (opslabels version)
//
// Before any subcommand runs, the root command loads the configuration and
// builds the logger. Both are shared through package variables.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/logging"
	"github.com/ginjaninja78/ops-labels/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// appConfig and logger are set by the root command's PersistentPreRunE.
var (
	appConfig *config.MainConfig
	logger    = zap.NewNop()
)

// defaultConfigFile is read when present; its absence is not an error.
const defaultConfigFile = "config.yaml"

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "opslabels",
	Short: "Warehouse ops log and 4x6 label generator",
	Long: `opslabels records department activity (receiving, putaway, picking,
packing, shipping, inventory, returns/OSD) and renders fixed-layout 4x6 PDF
labels showing item number, quantity and location. Labels come from a single
form submission or a bulk CSV/XLSX upload. No barcodes are printed.

Example Usage:
  opslabels labels --input uploads/            # Every CSV/XLSX in a directory
  opslabels label --item 607529 --qty 24 --location A-10-1 --mode bulk
  opslabels log --dept receiving --person Ana --item 607529 --qty 24
  opslabels export --day 2026-10-18 --out ops.csv`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if !cmd.Flags().Changed("config") && !utils.FileExists(path) {
			path = ""
		}

		cfg, err := config.LoadMainConfig(path)
		if err != nil {
			return err
		}

		l, err := logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}

		appConfig = cfg
		logger = l
		if path != "" {
			logger.Debug("configuration loaded", zap.String("path", path))
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		defaultConfigFile,
		"Path to the configuration file (.yaml or .toml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
