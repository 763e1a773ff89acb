// =============================================================================
// Warehouse Ops Labels - XLSX Upload Parser
// =============================================================================
//
// This module reads bulk label uploads saved as Excel workbooks. Only the
// first sheet is read, and it follows the same rules as a CSV upload:
//
//   | Column A | Column B | Column C | ...
//   |----------|----------|----------|
//   | item_no  | quantity | location |        <- header row (row 1)
//   | 607529   | 24       | A-10-1   |        <- data rows
//
// Header names are normalized the same way as CSV headers, columns may come
// in any order, and blank rows are skipped. Each row's Line is its sheet row
// number.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ops-labels/internal/csvparser"
	"github.com/ginjaninja78/ops-labels/internal/types"
)

// ErrNoSheets is returned for a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrNoHeader is returned when the first sheet has no header row.
var ErrNoHeader = errors.New("sheet has no header row")

// SheetParser yields the data rows of a workbook's first sheet. It offers the
// same Next/Row/Err iteration as csvparser.StreamingParser.
type SheetParser struct {
	sheet   string
	headers []string
	rows    [][]string
	pos     int
	index   int
	current types.Row
}

// NewSheetParser reads the workbook from r and locates the header row.
//
// PARAMETERS:
//   - r: The XLSX input. It is read fully and not closed.
//
// RETURNS:
//   - The parser positioned before the first data row.
//   - ErrNoSheets or ErrNoHeader, or a wrapped excelize error.
func NewSheetParser(r io.Reader) (*SheetParser, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}

	p := &SheetParser{sheet: sheetName, rows: rows}
	for p.pos < len(rows) {
		row := rows[p.pos]
		p.pos++
		if !isRowEmpty(row) {
			p.headers = csvparser.NormalizeHeaders(row)
			return p, nil
		}
	}
	return nil, ErrNoHeader
}

// Next advances to the next non-blank data row.
func (p *SheetParser) Next() bool {
	for p.pos < len(p.rows) {
		row := p.rows[p.pos]
		p.pos++
		if isRowEmpty(row) {
			continue
		}

		p.index++
		p.current = types.Row{
			Index:  p.index,
			Line:   p.pos, // sheet rows are 1-based
			Fields: csvparser.ZipRow(p.headers, row),
		}
		return true
	}
	return false
}

// Row returns the current row.
func (p *SheetParser) Row() types.Row {
	return p.current
}

// Headers returns the normalized header names.
func (p *SheetParser) Headers() []string {
	return p.headers
}

// SheetName returns the name of the sheet being read.
func (p *SheetParser) SheetName() string {
	return p.sheet
}

// Err always returns nil: the sheet is fully read by NewSheetParser.
func (p *SheetParser) Err() error {
	return nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
