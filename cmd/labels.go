// =============================================================================
// Warehouse Ops Labels - Labels Command
// =============================================================================
//
// This file defines the 'labels' command, which renders bulk uploads.
//
// COMMAND USAGE:
//   opslabels labels --input FILE|DIR [flags]
//
// FLAGS:
//   --input        : A CSV/XLSX upload, or a directory of them
//   --output-dir   : Override the configured output directory
//   --name-format  : Override the configured output file name format
//   --dry-run      : Validate and render, but write nothing
//
// PROCESSING PIPELINE (per upload):
//   1. Read the header and every row
//   2. Validate each row; the first bad row rejects the whole upload
//   3. Write one PDF holding every label of the upload
//   4. Archive the upload (when archive_on_success is set)
//
// Uploads are independent: a rejected upload, or one whose PDF cannot be
// written, is recorded in the error log and the next one is still processed.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/ops-labels/internal/converter"
	"github.com/ginjaninja78/ops-labels/pkg/utils"
)

var (
	labelsInput      string
	labelsOutputDir  string
	labelsNameFormat string
	labelsDryRun     bool
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Render label PDFs from CSV or XLSX uploads",
	Long: `Render one PDF per upload. Columns are matched by header name:

  item_no        required, exactly 6 digits
  quantity       defaults to 1
  location       optional, AREA-ROW-BIN with AREA in A-L, XA or XG
  date_received  defaults to today
  checked_by     defaults to a blank line
  mode           bulk (one label) or nonbulk (one label per unit), default bulk

Any invalid row rejects the whole upload; no partial PDF is written.`,
	RunE: runLabels,
}

func runLabels(cmd *cobra.Command, args []string) error {
	if labelsInput == "" {
		return fmt.Errorf("--input is required")
	}

	files, err := resolveUploads(labelsInput)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("no uploads found", zap.String("input", labelsInput))
		return nil
	}

	fm := newFileManager()
	if !labelsDryRun {
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
	}
	nameFormat := appConfig.OutputNameFormat
	if labelsNameFormat != "" {
		nameFormat = labelsNameFormat
	}

	conv := converter.New(appConfig, logger)
	var failures []utils.ErrorLogEntry

	for _, file := range files {
		log := logger.With(zap.String("file", file))

		res, err := convertUpload(conv, file)
		if err != nil {
			log.Error("upload rejected", zap.Error(err))
			failures = append(failures, utils.NewErrorLogEntry(file, err, time.Now()))
			continue
		}

		if labelsDryRun {
			log.Info("dry run: upload is valid",
				zap.Int("rows", res.Stats.RowsProcessed),
				zap.Int("labels", res.Stats.LabelsRendered))
			continue
		}

		name := utils.GenerateOutputFileName(nameFormat, map[string]string{
			"item":     "bulk",
			"original": strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		})
		out, err := fm.WriteOutput(name, res.PDF)
		if err != nil {
			log.Error("failed to write labels", zap.Error(err))
			failures = append(failures, utils.NewErrorLogEntry(file, err, time.Now()))
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d labels -> %s\n", file, res.Stats.LabelsRendered, out)

		if _, err := fm.ArchiveInputFile(file); err != nil {
			log.Warn("failed to archive upload", zap.Error(err))
		}
	}

	if len(failures) > 0 {
		logPath, err := fm.WriteErrorLog(failures)
		if err != nil {
			return err
		}
		return fmt.Errorf("%d of %d uploads failed, see %s", len(failures), len(files), logPath)
	}
	return nil
}

func convertUpload(conv *converter.Converter, path string) (*converter.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	if utils.IsXLSX(path) {
		return conv.GenerateFromXLSX(f)
	}
	return conv.GenerateFromCSV(f)
}

func resolveUploads(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if info.IsDir() {
		return utils.DiscoverUploads(input)
	}
	return []string{input}, nil
}

func newFileManager() *utils.FileManager {
	outputDir := appConfig.OutputDir
	if labelsOutputDir != "" {
		outputDir = labelsOutputDir
	}
	fm := utils.NewFileManager(outputDir, appConfig.InputArchiveDir, appConfig.ArchiveOnSuccess)
	fm.UseTimestampSubdirs = appConfig.ArchiveDateSubdirs
	return fm
}

func init() {
	labelsCmd.Flags().StringVarP(&labelsInput, "input", "i", "", "CSV/XLSX upload or directory of uploads")
	labelsCmd.Flags().StringVar(&labelsOutputDir, "output-dir", "", "Output directory (overrides config)")
	labelsCmd.Flags().StringVar(&labelsNameFormat, "name-format", "", "Output file name format (overrides config)")
	labelsCmd.Flags().BoolVar(&labelsDryRun, "dry-run", false, "Validate uploads without writing PDFs")

	rootCmd.AddCommand(labelsCmd)
}
