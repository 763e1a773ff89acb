// =============================================================================
// Warehouse Ops Labels - Converter Module
// =============================================================================
//
// This module turns label requests into a finished PDF. It drives the ingest
// pipeline for one upload (or one form submission) from start to finish:
//
//   Start -> ReadHeader -> { ReadRow -> ValidateRow -> (EmitLabels | Fail) }* -> Done
//
// CONVERSION PIPELINE:
//   1. Open a row source (CSV or the first XLSX sheet) and read its header
//   2. For each data row, rename aliased columns
//   3. Build and validate a LabelRecord
//   4. Expand it into copies and render one page per copy
//   5. After the last row, encode the document
//
// FAILURE:
//   The first invalid row stops the run. The partially rendered document is
//   dropped and the caller receives a *validation.RowValidationError naming
//   the row. Output bytes only exist when every row succeeded.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/csvparser"
	"github.com/ginjaninja78/ops-labels/internal/pdfwriter"
	"github.com/ginjaninja78/ops-labels/internal/record"
	"github.com/ginjaninja78/ops-labels/internal/types"
	"github.com/ginjaninja78/ops-labels/internal/validation"
	"github.com/ginjaninja78/ops-labels/internal/xlsxparser"
)

// ErrNoLabels is returned when an upload has a header but no data rows.
var ErrNoLabels = errors.New("upload contains no label rows")

// RowSource yields data rows in input order.
type RowSource interface {
	Next() bool
	Row() types.Row
	Err() error
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a successful run.
type Result struct {
	// PDF holds the encoded document, one page per label.
	PDF []byte

	// ItemNo is the item of the first record, used for file naming.
	ItemNo string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of data rows turned into records.
	RowsProcessed int

	// LabelsRendered is the number of pages in the document.
	LabelsRendered int

	// ProcessingTime is the time taken to process the input.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter renders label requests into PDFs. A Converter holds only
// immutable settings and may be reused across runs.
type Converter struct {
	label   config.LabelSettings
	csv     config.CSVSettings
	builder *record.Builder
	columns *ColumnMapper
	docOpts pdfwriter.DocumentOptions
	logger  *zap.Logger
}

// New creates a Converter from the application configuration.
//
// PARAMETERS:
//   - cfg: The loaded configuration. Label and CSV settings are copied.
//   - logger: Structured logger; zap.NewNop() is fine.
func New(cfg *config.MainConfig, logger *zap.Logger) *Converter {
	docOpts := pdfwriter.DefaultDocumentOptions()
	docOpts.Compress = !cfg.UncompressedPDF

	return &Converter{
		label:   cfg.Label,
		csv:     cfg.CSVSettings,
		builder: record.NewBuilder(cfg.Label, validation.NewValidator(cfg.Label.Areas)),
		columns: NewColumnMapper(cfg.CSVSettings.ColumnAliases),
		docOpts: docOpts,
		logger:  logger.Named("converter"),
	}
}

// WithClock returns a copy of c whose default "date received" comes from now.
func (c *Converter) WithClock(now func() time.Time) *Converter {
	cp := *c
	cp.builder = c.builder.WithClock(now)
	return &cp
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// GenerateFromCSV renders every row of a CSV upload.
func (c *Converter) GenerateFromCSV(r io.Reader) (*Result, error) {
	src, err := csvparser.NewStreamingParser(r, c.csv)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	return c.Generate(src)
}

// GenerateFromXLSX renders every row of the first sheet of a workbook.
func (c *Converter) GenerateFromXLSX(r io.Reader) (*Result, error) {
	src, err := xlsxparser.NewSheetParser(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook header: %w", err)
	}
	c.logger.Debug("reading workbook", zap.String("sheet", src.SheetName()))
	return c.Generate(src)
}

// GenerateSingle renders one form submission. Quantity and mode are
// required; there are no row numbers, so validation failures come back as a
// plain *validation.ValidationError.
func (c *Converter) GenerateSingle(fields map[string]string) (*Result, error) {
	start := time.Now()

	rec, err := c.builder.Build(fields, record.FormPolicy)
	if err != nil {
		return nil, err
	}

	doc := pdfwriter.NewDocument(c.label, c.docOpts)
	if _, err := doc.AddRecord(rec); err != nil {
		return nil, err
	}

	return c.finish(doc, rec.ItemNo, 1, start)
}

// Generate drains src and renders every row, in order.
//
// RETURNS:
//   - The finished Result when every row is valid.
//   - A *validation.RowValidationError for the first invalid row.
//   - ErrNoLabels when src holds no rows.
//   - A wrapped error for read or encode failures.
func (c *Converter) Generate(src RowSource) (*Result, error) {
	start := time.Now()
	doc := pdfwriter.NewDocument(c.label, c.docOpts)

	var (
		rows      int
		firstItem string
	)

	for src.Next() {
		row := c.columns.Map(src.Row())

		rec, err := c.builder.Build(row.Fields, record.UploadPolicy)
		if err != nil {
			rowErr := rowError(row, err)
			c.logger.Warn("row rejected",
				zap.Int("row", row.Index),
				zap.Int("line", row.Line),
				zap.String("kind", string(rowErr.Kind())),
				zap.Error(rowErr.Err),
			)
			return nil, rowErr
		}

		copies, err := doc.AddRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to render row %d: %w", row.Index, err)
		}
		c.logger.Debug("row rendered",
			zap.Int("row", row.Index),
			zap.String("item_no", rec.ItemNo),
			zap.String("mode", string(rec.Mode)),
			zap.Int("copies", copies),
		)

		if rows == 0 {
			firstItem = rec.ItemNo
		}
		rows++
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if rows == 0 {
		return nil, ErrNoLabels
	}

	return c.finish(doc, firstItem, rows, start)
}

func (c *Converter) finish(doc *pdfwriter.Document, itemNo string, rows int, start time.Time) (*Result, error) {
	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	result := &Result{
		PDF:    data,
		ItemNo: itemNo,
		Stats: ProcessingStats{
			RowsProcessed:  rows,
			LabelsRendered: doc.PageCount(),
			ProcessingTime: time.Since(start),
		},
	}

	c.logger.Info("labels generated",
		zap.Int("rows", result.Stats.RowsProcessed),
		zap.Int("labels", result.Stats.LabelsRendered),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", result.Stats.ProcessingTime),
	)
	return result, nil
}

// rowError attaches the row position to a record validation error.
func rowError(row types.Row, err error) *validation.RowValidationError {
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		ve = &validation.ValidationError{Message: err.Error()}
	}
	return &validation.RowValidationError{Row: row.Index, Line: row.Line, Err: ve}
}
